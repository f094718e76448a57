package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/qwikfold/ident"
	"github.com/viant/qwikfold/inventory"
)

func TestImportExportLookup(t *testing.T) {
	inv := inventory.New()
	useStore := ident.New("useStore", ident.ModuleTag)
	inv.AddImport(inventory.Import{Source: "@builder.io/qwik", Kind: inventory.Named, Local: useStore, Specifier: "useStore"})

	imp, ok := inv.Import(useStore)
	assert.True(t, ok)
	assert.Equal(t, "@builder.io/qwik", imp.Source)

	app := ident.New("App", ident.ModuleTag)
	alias := "Main"
	inv.AddExport(inventory.Export{Local: app, Alias: &alias})

	exp, ok := inv.Export(app)
	assert.True(t, ok)
	assert.Equal(t, "Main", *exp.Alias)

	assert.True(t, inv.IsRoot(useStore))
	assert.True(t, inv.IsRoot(app))
	assert.False(t, inv.IsRoot(ident.New("nope", ident.ModuleTag)))
}

func TestFindImportBySpecifier(t *testing.T) {
	inv := inventory.New()
	local := ident.New("componentQrl", ident.ModuleTag)
	inv.AddImport(inventory.Import{Source: "@builder.io/qwik", Kind: inventory.Named, Local: local, Specifier: "componentQrl"})

	found, ok := inv.FindImportBySpecifier("@builder.io/qwik", "componentQrl")
	assert.True(t, ok)
	assert.Equal(t, local, found)

	_, ok = inv.FindImportBySpecifier("@builder.io/qwik", "missing")
	assert.False(t, ok)
}

func TestFindExportBySpecifier(t *testing.T) {
	inv := inventory.New()
	local := ident.New("componentQrl", ident.ModuleTag)
	alias := "componentQrl"
	inv.AddExport(inventory.Export{Local: local, Alias: &alias})

	found, ok := inv.FindExportBySpecifier("componentQrl")
	assert.True(t, ok)
	assert.Equal(t, local, found)

	unaliased := ident.New("useStore", ident.ModuleTag)
	inv.AddExport(inventory.Export{Local: unaliased})
	found, ok = inv.FindExportBySpecifier("useStore")
	assert.True(t, ok)
	assert.Equal(t, unaliased, found)
}

// TestMarkRootIsKeyedBySymbolNotFullIdentity exercises the exact mismatch
// fold.Folder relies on Inventory resolving correctly: a forward reference
// scanned before its top-level declaration is walked falls back to
// ident.ModuleTag, while the declaration itself (once walked) lives in the
// module's single top-level scope frame and so is keyed with a different
// ScopeTag. Root tracking must treat both as the same plain-root binding.
func TestMarkRootIsKeyedBySymbolNotFullIdentity(t *testing.T) {
	inv := inventory.New()

	const rootFrameTag ident.ScopeTag = 7
	forwardRefIdentity := ident.New("helper", ident.ModuleTag)
	declaredIdentity := ident.New("helper", rootFrameTag)

	inv.MarkRoot(declaredIdentity)

	assert.True(t, inv.IsPlainRoot(forwardRefIdentity))
	assert.True(t, inv.IsPlainRoot(declaredIdentity))
	assert.True(t, inv.IsRoot(forwardRefIdentity))
}

func TestImportsExportsIteration(t *testing.T) {
	inv := inventory.New()
	a := ident.New("a", ident.ModuleTag)
	b := ident.New("b", ident.ModuleTag)
	inv.AddImport(inventory.Import{Source: "mod", Kind: inventory.Named, Local: a, Specifier: "a"})
	inv.AddExport(inventory.Export{Local: b})

	assert.Len(t, inv.Imports(), 1)
	assert.Len(t, inv.Exports(), 1)
}
