// Package scope maintains the stack of declaration frames the fold.Folder
// pushes and pops as it descends through the AST, grounded on the
// push-a-frame-per-lexical-region discipline in analyzer/node.go's walk
// (which pushes a *linage.Scope on every "block" before recursing).
package scope

import "github.com/viant/qwikfold/ident"

// RootTag is the ScopeTag a freshly constructed Tracker assigns to the
// first frame it opens. fold.Folder opens exactly one frame for an entire
// module, so a module's top-level declarations (as opposed to imports,
// which carry ident.ModuleTag) always carry RootTag — a
// caller populating an Inventory ahead of a fold run needs this constant to
// build Export records whose Local identity will actually match what the
// Folder declares.
const RootTag ident.ScopeTag = ident.ModuleTag + 1

// Binding pairs an Identity with the declaration kind that introduced it.
type Binding struct {
	Identity ident.Identity
	Kind     ident.Kind
}

// frame is one lexical region's declarations.
type frame struct {
	nonce    ident.ScopeTag
	bindings []Binding
}

// Tracker is a stack of declaration frames. The zero value is not usable;
// construct with New.
type Tracker struct {
	frames []*frame
	nonce  ident.ScopeTag
}

// New creates a Tracker with no open frames. Callers push a frame before
// declaring any binding.
func New() *Tracker {
	return &Tracker{nonce: ident.ModuleTag + 1}
}

// Push opens a new lexical frame, returning the ScopeTag new declarations
// in it will carry.
func (t *Tracker) Push() ident.ScopeTag {
	tag := t.nonce
	t.nonce++
	t.frames = append(t.frames, &frame{nonce: tag})
	return tag
}

// Pop closes the most recently opened frame.
func (t *Tracker) Pop() {
	if len(t.frames) == 0 {
		panic("scope: Pop called with no open frame")
	}
	t.frames = t.frames[:len(t.frames)-1]
}

// Declare records sym as bound in the current (innermost) frame with the
// given kind, and returns its freshly minted Identity. Declare panics if no
// frame is open; every caller in fold.Folder pushes the prelude module
// frame first.
func (t *Tracker) Declare(sym string, kind ident.Kind) ident.Identity {
	if len(t.frames) == 0 {
		panic("scope: Declare called with no open frame")
	}
	f := t.frames[len(t.frames)-1]
	id := ident.New(sym, f.nonce)
	f.bindings = append(f.bindings, Binding{Identity: id, Kind: kind})
	return id
}

// Resolve searches the open frames innermost-first for a binding with the
// given symbol, honoring shadowing.
func (t *Tracker) Resolve(sym string) (Binding, bool) {
	for i := len(t.frames) - 1; i >= 0; i-- {
		f := t.frames[i]
		for j := len(f.bindings) - 1; j >= 0; j-- {
			if f.bindings[j].Identity.Sym == sym {
				return f.bindings[j], true
			}
		}
	}
	return Binding{}, false
}

// Live returns the union of every binding in every currently open frame,
// partitioned into capturable (Var) and non-capturable (Fn/Class) sets, as
// required by the capture-analysis step of synthetic extraction.
func (t *Tracker) Live() (capturable, invalid map[ident.Identity]bool) {
	capturable = make(map[ident.Identity]bool)
	invalid = make(map[ident.Identity]bool)
	for _, f := range t.frames {
		for _, b := range f.bindings {
			if b.Kind == ident.Var {
				capturable[b.Identity] = true
			} else {
				invalid[b.Identity] = true
			}
		}
	}
	return capturable, invalid
}

// Depth reports how many frames are currently open.
func (t *Tracker) Depth() int {
	return len(t.frames)
}
