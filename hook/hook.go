// Package hook defines the HookData/Hook data model described in spec.md
// §3: the metadata and payload the fold.Folder produces for every extracted
// closure, consumed by codemove to materialize a standalone module.
//
// Field tagging follows analyzer/linage/identity.go's yaml-tagged style so
// hook descriptors can be dumped as readable fixtures in tests, the same
// way the teacher's linage.Identity/DataPoint types are tagged for
// inspection.
package hook

import "github.com/viant/qwikfold/ident"

// Kind distinguishes a hook extracted from a marker-function call versus
// one extracted from a JSX event attribute/property.
type Kind string

const (
	// Function hooks come from a marker call's first argument, e.g.
	// component$(() => ...) or useTask$(() => ...).
	Function Kind = "function"
	// Event hooks come from a JSX attribute or property ending in the
	// sigil, e.g. onClick$={() => ...}.
	Event Kind = "event"
)

// Data is the metadata describing one extracted closure (spec.md §3).
type Data struct {
	Extension    string          `yaml:"extension"`
	LocalIdents  []ident.Identity `yaml:"localIdents,omitempty"`
	ScopedIdents []ident.Identity `yaml:"scopedIdents,omitempty"`
	ParentHook   string          `yaml:"parentHook,omitempty"`
	CtxKind      Kind            `yaml:"ctxKind"`
	CtxName      string          `yaml:"ctxName"`
	Origin       string          `yaml:"origin"`
	DisplayName  string          `yaml:"displayName"`
	Hash         string          `yaml:"hash"`
}

// Hook is a fully extracted closure: its metadata plus the folded source
// text of its body and the bookkeeping Code-Move needs to place it.
type Hook struct {
	Entry             *string `yaml:"entry,omitempty"`
	CanonicalFilename string  `yaml:"canonicalFilename"`
	Name              string  `yaml:"name"`
	Data              Data    `yaml:"data"`
	// Expr is the folded closure's source text (an arrow function or
	// function expression), already rewritten for any nested hooks it
	// itself contains.
	Expr string `yaml:"-"`
	// Hash is the raw 64-bit value backing Data.Hash, kept for
	// deterministic ordering and tests.
	Hash uint64 `yaml:"-"`
}
