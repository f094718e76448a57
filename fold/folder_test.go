package fold_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/qwikfold/fold"
	"github.com/viant/qwikfold/hook"
	"github.com/viant/qwikfold/ident"
	"github.com/viant/qwikfold/inventory"
	"github.com/viant/qwikfold/scope"
	"github.com/viant/qwikfold/tsnode"
)

// capturingDiagnostics is a fold.Diagnostics double that records every
// message reported during a Run, for tests asserting on diagnostic text
// rather than on the folded source.
type capturingDiagnostics struct {
	messages []string
}

func (d *capturingDiagnostics) Errorf(_ fold.Span, format string, args ...interface{}) {
	d.messages = append(d.messages, fmt.Sprintf(format, args...))
}

func TestFoldComponentMarker(t *testing.T) {
	src := []byte(`import { component$ } from "@builder.io/qwik";
export const App = component$(() => {
  return null;
});
`)
	mod, err := tsnode.Parse("src/components.tsx", src)
	require.NoError(t, err)

	inv := inventory.New()
	componentDollar := ident.New("component$", ident.ModuleTag)
	inv.AddImport(inventory.Import{
		Source:    "@builder.io/qwik",
		Kind:      inventory.Named,
		Local:     componentDollar,
		Specifier: "component$",
	})
	app := ident.New("App", scope.RootTag)
	inv.AddExport(inventory.Export{Local: app})

	opts := fold.DefaultOptions()
	opts.Origin = "src/components.tsx"

	folder := fold.New(mod, inv, opts)
	result, err := folder.Run()
	require.NoError(t, err)

	assert.Contains(t, result.Source, "componentQrl(")
	assert.Contains(t, result.Source, "import * as _Q from \"@builder.io/qwik\"")
	assert.Contains(t, result.Source, "import { componentQrl as componentQrl } from \"@builder.io/qwik\"")
	assert.NotContains(t, result.Source, "component$(")

	require.Len(t, result.Hooks, 1)
	h := result.Hooks[0]
	assert.Equal(t, "App_component", h.Data.DisplayName)
	assert.Equal(t, "component$", h.Data.CtxName)
	assert.Equal(t, "src/components.tsx", h.Data.Origin)
	assert.True(t, strings.HasPrefix(h.Name, h.Data.DisplayName+"_") || strings.HasPrefix(h.Name, "s_"))
	assert.Contains(t, result.Source, h.Name)
}

func TestFoldCapturesEnclosingVar(t *testing.T) {
	src := []byte(`import { component$ } from "@builder.io/qwik";
export const App = component$(() => {
  const count = 0;
  return component$(() => {
    return count;
  });
});
`)
	mod, err := tsnode.Parse("src/nested.tsx", src)
	require.NoError(t, err)

	inv := inventory.New()
	componentDollar := ident.New("component$", ident.ModuleTag)
	inv.AddImport(inventory.Import{
		Source:    "@builder.io/qwik",
		Kind:      inventory.Named,
		Local:     componentDollar,
		Specifier: "component$",
	})
	inv.AddExport(inventory.Export{Local: ident.New("App", scope.RootTag)})

	opts := fold.DefaultOptions()
	opts.Origin = "src/nested.tsx"

	folder := fold.New(mod, inv, opts)
	result, err := folder.Run()
	require.NoError(t, err)

	require.Len(t, result.Hooks, 2)
	// the nested component$ closure finishes folding (and so is appended)
	// before the outer one that encloses it.
	inner := result.Hooks[0]
	outer := result.Hooks[1]
	require.Len(t, inner.Data.ScopedIdents, 1)
	assert.Equal(t, "count", inner.Data.ScopedIdents[0].Sym)
	assert.Equal(t, outer.Name, inner.Data.ParentHook)
}

// TestFoldJSXEventAttribute covers spec.md §8 scenario #2: a JSX event
// attribute whose value closes over an enclosing Var binding is extracted
// as an Event-kind hook, and the attribute name itself is rewritten to its
// companion suffix in the emitted JSX.
func TestFoldJSXEventAttribute(t *testing.T) {
	src := []byte(`import { component$ } from "@builder.io/qwik";
export const App = component$(() => {
  let count = 0;
  return <button onClick$={() => count++}>Click</button>;
});
`)
	mod, err := tsnode.Parse("src/events.tsx", src)
	require.NoError(t, err)

	inv := inventory.New()
	componentDollar := ident.New("component$", ident.ModuleTag)
	inv.AddImport(inventory.Import{
		Source:    "@builder.io/qwik",
		Kind:      inventory.Named,
		Local:     componentDollar,
		Specifier: "component$",
	})
	inv.AddExport(inventory.Export{Local: ident.New("App", scope.RootTag)})

	opts := fold.DefaultOptions()
	opts.Origin = "src/events.tsx"

	folder := fold.New(mod, inv, opts)
	result, err := folder.Run()
	require.NoError(t, err)

	assert.Contains(t, result.Source, "onClickQrl={")
	assert.NotContains(t, result.Source, "onClick$=")

	require.Len(t, result.Hooks, 2)
	event := result.Hooks[0]
	assert.Equal(t, hook.Event, event.Data.CtxKind)
	require.Len(t, event.Data.ScopedIdents, 1)
	assert.Equal(t, "count", event.Data.ScopedIdents[0].Sym)
}

// TestFoldIllegalCaptureDiagnostic covers spec.md §8 scenario #4: a nested
// hook closure referencing an enclosing Fn-kind binding (not a Var) is
// diagnosed rather than silently added to scoped_idents.
func TestFoldIllegalCaptureDiagnostic(t *testing.T) {
	src := []byte(`import { component$ } from "@builder.io/qwik";
export const App = component$(() => {
  function helper() {
    return 1;
  }
  return component$(() => {
    return helper();
  });
});
`)
	mod, err := tsnode.Parse("src/illegal.tsx", src)
	require.NoError(t, err)

	inv := inventory.New()
	componentDollar := ident.New("component$", ident.ModuleTag)
	inv.AddImport(inventory.Import{
		Source:    "@builder.io/qwik",
		Kind:      inventory.Named,
		Local:     componentDollar,
		Specifier: "component$",
	})
	inv.AddExport(inventory.Export{Local: ident.New("App", scope.RootTag)})

	diags := &capturingDiagnostics{}
	opts := fold.DefaultOptions()
	opts.Origin = "src/illegal.tsx"
	opts.Diagnostics = diags

	folder := fold.New(mod, inv, opts)
	_, err = folder.Run()
	require.NoError(t, err)

	found := false
	for _, m := range diags.messages {
		if strings.Contains(m, `"helper"`) && strings.Contains(m, "cannot be restored across a module boundary") {
			found = true
		}
	}
	assert.True(t, found, "expected an illegal-capture diagnostic for helper, got: %v", diags.messages)
}

// TestFoldNamingCollisionAppendsSuffix covers spec.md §8 scenario #6: two
// hooks whose naming-stack fragments join to the same display base get
// "_1" appended to the second one's, exercised end to end through Folder
// rather than against naming.Context directly.
func TestFoldNamingCollisionAppendsSuffix(t *testing.T) {
	// Both elements are folded while the naming stack sits at the same
	// ["App", "component$"] prefix (neither is routed through its own named
	// var binding), so their "Foo"/"onBar$" fragments collide on the same
	// display base.
	src := []byte(`import { component$ } from "@builder.io/qwik";
export const App = component$(() => {
  return [<Foo onBar$={() => 1} />, <Foo onBar$={() => 2} />];
});
`)
	mod, err := tsnode.Parse("src/collide.tsx", src)
	require.NoError(t, err)

	inv := inventory.New()
	componentDollar := ident.New("component$", ident.ModuleTag)
	inv.AddImport(inventory.Import{
		Source:    "@builder.io/qwik",
		Kind:      inventory.Named,
		Local:     componentDollar,
		Specifier: "component$",
	})
	inv.AddExport(inventory.Export{Local: ident.New("App", scope.RootTag)})

	opts := fold.DefaultOptions()
	opts.Origin = "src/collide.tsx"

	folder := fold.New(mod, inv, opts)
	result, err := folder.Run()
	require.NoError(t, err)

	require.Len(t, result.Hooks, 3)
	var displayNames []string
	for _, h := range result.Hooks {
		if h.Data.CtxKind == hook.Event {
			displayNames = append(displayNames, h.Data.DisplayName)
		}
	}
	require.Len(t, displayNames, 2)
	assert.Equal(t, displayNames[0]+"_1", displayNames[1])
	assert.True(t, strings.HasSuffix(displayNames[0], "Foo_onBar"))
}
