// Package transform is the public entry point wiring fold.Folder over a
// parsed module and its Inventory, returning the rewritten host text and
// every Hook extracted from it. It corresponds to no single file in
// original_source/ (the Rust crate never separates a public façade from
// transform.rs's `transform` free function), but the seam mirrors the
// teacher's own inspector.InspectFile / inspector.InspectSource pair of a
// thin public wrapper over the real traversal type
// (inspector/jsx/inspector.go).
package transform

import (
	"github.com/viant/qwikfold/fold"
	"github.com/viant/qwikfold/hook"
	"github.com/viant/qwikfold/inventory"
	"github.com/viant/qwikfold/tsnode"
)

// Options re-exports fold.Options so callers of this package never need to
// import fold directly for the common case.
type Options = fold.Options

// EntryPolicy re-exports fold.EntryPolicy.
type EntryPolicy = fold.EntryPolicy

// Diagnostics re-exports fold.Diagnostics.
type Diagnostics = fold.Diagnostics

// DefaultOptions re-exports fold.DefaultOptions.
func DefaultOptions() Options {
	return fold.DefaultOptions()
}

// Result is the outcome of one Transform call.
type Result struct {
	// Source is the rewritten host module's full source text.
	Source string
	// Hooks is every closure extracted from the host module, in the order
	// their extraction completed (innermost-first for nested hooks).
	Hooks []*hook.Hook
}

// Transform parses source as path, folds it against inv (the module's
// existing top-level imports/exports, built by an earlier pass — see
// SPEC_FULL.md §4.2 for why this package does not build that pass itself;
// the fold adds the synthetic companion imports it creates to inv), and
// returns the rewritten module plus its extracted hooks.
func Transform(path string, source []byte, inv *inventory.Inventory, opts Options) (*Result, error) {
	mod, err := tsnode.Parse(path, source)
	if err != nil {
		return nil, err
	}
	folder := fold.New(mod, inv, opts)
	out, err := folder.Run()
	if err != nil {
		return nil, err
	}
	return &Result{Source: out.Source, Hooks: out.Hooks}, nil
}
