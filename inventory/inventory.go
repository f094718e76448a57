// Package inventory is a lookup over a module's top-level imports and
// exports, populated by an earlier pass. The fold.Folder does not change or
// remove the records it is given, but it does add to the inventory: its
// prescan marks plain root declarations, and during the walk it adds each
// synthetic companion import it creates (Synthetic set), so Code-Move can
// later re-import that companion into a hook module. The host module's own
// prelude imports are staged separately by the Folder and spliced in once
// the walk completes.
package inventory

import "github.com/viant/qwikfold/ident"

// ImportKind classifies how a local identity was bound to its source module.
type ImportKind int

const (
	// Named is `import { specifier as local } from "source"`.
	Named ImportKind = iota
	// Default is `import local from "source"`.
	Default
	// All is `import * as local from "source"`.
	All
)

// Import records one top-level import binding.
type Import struct {
	Source     string
	Kind       ImportKind
	Local      ident.Identity
	Specifier  string
	Synthetic  bool
}

// Export records one top-level export binding, with an optional external
// alias (`export { local as alias }`); when Alias is nil the external name
// equals the local identity's symbol.
type Export struct {
	Local ident.Identity
	Alias *string
}

// Inventory is the index of a module's imports and exports.
type Inventory struct {
	imports map[ident.Identity]Import
	exports map[ident.Identity]Export
	// root records plain top-level declarations by symbol, not full
	// Identity: the Folder's prescan pass runs before the real fold walk
	// declares anything in scope.Tracker, so it cannot know the ScopeTag a
	// later in-order reference will resolve to (a forward reference falls
	// back to ident.ModuleTag; a reference after the declaration resolves
	// to the single top-level frame's own tag, scope.RootTag). Keying by
	// symbol alone makes MarkRoot/IsPlainRoot agree regardless of which
	// tag the caller's Identity happens to carry.
	root map[string]bool
}

// New creates an empty Inventory.
func New() *Inventory {
	return &Inventory{
		imports: make(map[ident.Identity]Import),
		exports: make(map[ident.Identity]Export),
		root:    make(map[string]bool),
	}
}

// AddImport registers an import record. Re-adding the same Local identity
// overwrites the previous record. The Folder also calls it to record each
// synthetic companion import it creates (the `*Qrl` import sharing the
// marker's source).
func (i *Inventory) AddImport(imp Import) {
	i.imports[imp.Local] = imp
}

// AddExport registers an export record.
func (i *Inventory) AddExport(exp Export) {
	i.exports[exp.Local] = exp
}

// MarkRoot records that an identity is a module-root declaration (function,
// class, or top-level var), independent of whether it is exported.
func (i *Inventory) MarkRoot(id ident.Identity) {
	i.root[id.Sym] = true
}

// Import looks up an import record by local identity.
func (i *Inventory) Import(id ident.Identity) (Import, bool) {
	imp, ok := i.imports[id]
	return imp, ok
}

// Export looks up an export record by local identity.
func (i *Inventory) Export(id ident.Identity) (Export, bool) {
	exp, ok := i.exports[id]
	return exp, ok
}

// IsPlainRoot reports whether id was recorded via MarkRoot: a top-level
// declaration that is neither an import nor an export. The Folder uses this
// to diagnose a closure capturing a root binding that Code-Move has no way
// to re-import.
func (i *Inventory) IsPlainRoot(id ident.Identity) bool {
	return i.root[id.Sym]
}

// IsRoot reports whether id is a module-root binding (imported, exported,
// or otherwise declared at the top level).
func (i *Inventory) IsRoot(id ident.Identity) bool {
	if _, ok := i.imports[id]; ok {
		return true
	}
	if _, ok := i.exports[id]; ok {
		return true
	}
	return i.root[id.Sym]
}

// FindImportBySpecifier returns the local identity of the first named
// import whose external specifier matches, used to resolve a marker's
// de-sigilled companion when it was itself imported.
func (i *Inventory) FindImportBySpecifier(source, specifier string) (ident.Identity, bool) {
	for local, imp := range i.imports {
		if imp.Source == source && imp.Specifier == specifier {
			return local, true
		}
	}
	return ident.Identity{}, false
}

// FindExportBySpecifier returns the local identity of the export whose
// external name (alias, or symbol when unaliased) matches specifier.
func (i *Inventory) FindExportBySpecifier(specifier string) (ident.Identity, bool) {
	for local, exp := range i.exports {
		name := local.Sym
		if exp.Alias != nil {
			name = *exp.Alias
		}
		if name == specifier {
			return local, true
		}
	}
	return ident.Identity{}, false
}

// Imports returns every registered import, for iteration (the Folder builds
// its detection tables and picks its prelude identifier from it).
func (i *Inventory) Imports() map[ident.Identity]Import {
	return i.imports
}

// Exports returns every registered export, for iteration (used the same
// way as Imports).
func (i *Inventory) Exports() map[ident.Identity]Export {
	return i.exports
}
