package fold

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/qwikfold/hook"
	"github.com/viant/qwikfold/ident"
	"github.com/viant/qwikfold/inventory"
	"github.com/viant/qwikfold/naming"
	"github.com/viant/qwikfold/scope"
	"github.com/viant/qwikfold/tsnode"
)

// stagedImport is a synthetic import the Folder decided to add to the host
// module's own prelude (as opposed to one a generated hook module re-issues
// for itself).
type stagedImport struct {
	id   ident.Identity
	text string
}

// Folder walks one host module's tree-sitter tree and produces its rewritten
// text plus the Hooks extracted from it. A Folder is single-use: construct
// one per module via New, call Run once.
//
// Grounded on inspector/jsx/inspector.go's tree-sitter traversal style
// (Type()/ChildByFieldName()/NamedChild() dispatch) generalized from a
// read-only inspection walk into the rewrite-as-you-go walk
// original_source/.../transform.rs's QwikTransform performs via SWC's
// Fold trait; our substitute for Fold's "return a replacement node" is
// "return replacement text for this node's byte span", since no mutable JS
// AST implementation exists anywhere in the example pack (see SPEC_FULL.md
// §3).
type Folder struct {
	mod  *tsnode.Module
	opts Options
	inv  *inventory.Inventory

	scope  *scope.Tracker
	naming *naming.Context

	hookStack []string
	// jsxPosition counts currently-open JSX factory call argument lists
	// (spec.md §4.4 rule (b)'s "JSXFunction marker" on the Position Context).
	// foldPair only extracts a sigil-suffixed key as an Event hook while this
	// is > 0, so an unrelated object literal elsewhere in the module is left
	// alone even if some key happens to end in the sigil.
	jsxPosition int
	// companionRefStack holds, per currently-open synthetic extraction, the
	// companion identities resolved by marker calls folded while that
	// extraction's body was being folded. The top frame receives every
	// resolution made at the current nesting depth; see fold/extract.go.
	companionRefStack [][]ident.Identity

	staged []stagedImport
	hooks  []*hook.Hook

	qwikIdent string

	detectionBuilt bool
	markers        map[ident.Identity]string
	jsxFactories   map[ident.Identity]bool
	hookBuilderID  *ident.Identity
}

// Result is everything Run produces.
type Result struct {
	Source string
	Hooks  []*hook.Hook
}

// New constructs a Folder over a parsed module, an Inventory describing its
// top-level imports/exports (populated by an earlier pass; see
// SPEC_FULL.md §4.2), and Options.
func New(mod *tsnode.Module, inv *inventory.Inventory, opts Options) *Folder {
	return &Folder{
		mod:    mod,
		opts:   opts,
		inv:    inv,
		scope:  scope.New(),
		naming: naming.New(),
	}
}

// Run performs the fold and returns the rewritten module text and the
// extracted hooks, in extraction order.
func (f *Folder) Run() (*Result, error) {
	f.qwikIdent = f.freshQwikIdent()

	f.scope.Push()
	f.prescanRoots(f.mod.Root)
	body := f.foldChildren(f.mod.Root)
	f.scope.Pop()

	staged := make([]stagedImport, len(f.staged))
	copy(staged, f.staged)
	sort.Slice(staged, func(i, j int) bool { return staged[i].id.Less(staged[j].id) })

	var b strings.Builder
	b.WriteString("import * as ")
	b.WriteString(f.qwikIdent)
	b.WriteString(" from \"")
	b.WriteString(f.opts.FrameworkModule)
	b.WriteString("\";\n")
	for _, s := range staged {
		b.WriteString(s.text)
		b.WriteString("\n")
	}
	b.WriteString(body)

	return &Result{Source: b.String(), Hooks: f.hooks}, nil
}

// freshQwikIdent picks a prelude identifier for the framework namespace
// import that cannot collide with anything already bound at the module's
// top level.
func (f *Folder) freshQwikIdent() string {
	base := f.opts.QwikIdentBase
	if base == "" {
		base = "_Q"
	}
	name := base
	n := 0
	for f.nameTaken(name) {
		n++
		name = base + itoaFold(n)
	}
	return name
}

func (f *Folder) nameTaken(name string) bool {
	for local := range f.inv.Imports() {
		if local.Sym == name {
			return true
		}
	}
	for local := range f.inv.Exports() {
		if local.Sym == name {
			return true
		}
	}
	return false
}

func itoaFold(n int) string {
	if n == 0 {
		return "0"
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}

// content is shorthand for the source text spanned by n.
func (f *Folder) content(n *sitter.Node) string {
	return f.mod.Content(n)
}

func (f *Folder) span(n *sitter.Node) Span {
	s := f.mod.SpanOf(n)
	return Span{Start: s.Start, End: s.End}
}

func (f *Folder) diagf(n *sitter.Node, format string, args ...interface{}) {
	if f.opts.Diagnostics == nil {
		return
	}
	f.opts.Diagnostics.Errorf(f.span(n), format, args...)
}

// fold dispatches on node type: scope/naming-relevant constructs are
// intercepted so their declarations and name fragments are tracked, call
// expressions are checked against the three detection rules, and everything
// else falls through to generic structural reconstruction.
func (f *Folder) fold(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "call_expression":
		return f.foldCallExpression(n)
	case "jsx_attribute":
		return f.foldJSXAttribute(n)
	case "pair":
		return f.foldPair(n)
	case "variable_declarator":
		return f.foldVariableDeclarator(n)
	case "function_declaration", "function", "generator_function_declaration", "method_definition":
		return f.foldFunctionLike(n)
	case "class_declaration", "class":
		return f.foldClassLike(n)
	case "arrow_function", "function_expression":
		return f.foldArrowOrFnExpr(n)
	case "jsx_element":
		return f.foldJSXElement(n)
	case "jsx_self_closing_element":
		return f.foldJSXSelfClosing(n)
	case "statement_block", "if_statement", "for_statement", "for_in_statement",
		"while_statement", "do_statement", "switch_statement", "class_body", "catch_clause":
		return f.foldScopeBlock(n)
	default:
		return f.foldChildren(n)
	}
}

// foldChildren generically reconstructs n's span: every child is recursively
// folded, and the literal source between children (whitespace, punctuation,
// comments) is copied verbatim. A leaf node's folded text is simply its
// source text, so an untouched subtree round-trips byte for byte.
func (f *Folder) foldChildren(n *sitter.Node) string {
	cc := int(n.ChildCount())
	if cc == 0 {
		return f.content(n)
	}
	var b strings.Builder
	last := n.StartByte()
	for i := 0; i < cc; i++ {
		ch := n.Child(i)
		if ch.StartByte() > last {
			b.Write(f.mod.Source[last:ch.StartByte()])
		}
		b.WriteString(f.fold(ch))
		last = ch.EndByte()
	}
	if last < n.EndByte() {
		b.Write(f.mod.Source[last:n.EndByte()])
	}
	return b.String()
}

func (f *Folder) foldScopeBlock(n *sitter.Node) string {
	f.scope.Push()
	result := f.foldChildren(n)
	f.scope.Pop()
	return result
}

// prescanRoots marks every top-level function/class/variable declaration as
// a plain root identity (spec.md §4.2's "root" set), unless its symbol
// under ident.ModuleTag is already an import or export (see
// markRootIfFree). This runs before the real fold so that a
// forward reference from an earlier closure to a later top-level
// declaration is still recognized as a root binding (JS hoisting), matching
// global_collect's single up-front pass in original_source/.../collect
// rather than our otherwise single top-down walk.
func (f *Folder) prescanRoots(root *sitter.Node) {
	cc := int(root.NamedChildCount())
	for i := 0; i < cc; i++ {
		f.prescanTopLevelItem(root.NamedChild(i))
	}
}

func (f *Folder) prescanTopLevelItem(n *sitter.Node) {
	switch n.Type() {
	case "export_statement":
		if decl := n.ChildByFieldName("declaration"); decl != nil {
			f.prescanTopLevelItem(decl)
		}
	case "function_declaration", "generator_function_declaration", "class_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			f.markRootIfFree(f.content(name))
		}
	case "lexical_declaration", "variable_declaration":
		cc := int(n.NamedChildCount())
		for i := 0; i < cc; i++ {
			child := n.NamedChild(i)
			if child.Type() != "variable_declarator" {
				continue
			}
			if name := child.ChildByFieldName("name"); name != nil {
				for _, sym := range f.collectPatternSymbols(name) {
					f.markRootIfFree(sym)
				}
			}
		}
	}
}

func (f *Folder) markRootIfFree(sym string) {
	id := ident.New(sym, ident.ModuleTag)
	if _, ok := f.inv.Import(id); ok {
		return
	}
	if _, ok := f.inv.Export(id); ok {
		return
	}
	f.inv.MarkRoot(id)
}

// sortedIdentities returns ids deduplicated and ordered by ident.Identity's
// deterministic Less, matching scoped_idents/local_idents ordering
// invariants (spec.md §8).
func sortedIdentities(ids map[ident.Identity]bool) []ident.Identity {
	out := make([]ident.Identity, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
