package fold

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/qwikfold/hook"
	"github.com/viant/qwikfold/ident"
)

// syntheticExtraction implements the 12-step extraction algorithm of
// spec.md §4.4 against argNode (the closure being pulled out): collect its
// free identifier references against the currently-open scope, partition
// the enclosing live bindings into capturable/invalid, recursively fold the
// closure body (so nested hooks extract first, innermost first), compute
// scoped_idents/local_idents, append the resulting Hook, and return the
// `Q.qrl(...)` call that replaces the original closure text at its call
// site.
func (f *Folder) syntheticExtraction(argNode *sitter.Node, kind hook.Kind, ctxName string) string {
	descendents := f.scanIdents(argNode)
	capturable, invalid := f.scope.Live()

	symbolName, displayName, hashStr, hashU64 := f.naming.Register(f.opts.Origin, f.opts.Dev, f.opts.Sigil)
	canonicalFilename := strings.ToLower(symbolName)

	var parentHook string
	if len(f.hookStack) > 0 {
		parentHook = f.hookStack[len(f.hookStack)-1]
	}

	f.hookStack = append(f.hookStack, symbolName)
	f.companionRefStack = append(f.companionRefStack, nil)
	foldedExpr := f.fold(argNode)
	nestedRefs := f.companionRefStack[len(f.companionRefStack)-1]
	f.companionRefStack = f.companionRefStack[:len(f.companionRefStack)-1]
	f.hookStack = f.hookStack[:len(f.hookStack)-1]

	scopedSet := make(map[ident.Identity]bool)
	for id := range descendents {
		if capturable[id] {
			scopedSet[id] = true
		}
		if invalid[id] {
			f.diagf(argNode, "closure captures %q from an enclosing function or class scope, which cannot be restored across a module boundary", id.Sym)
		}
	}
	scopedIdents := sortedIdentities(scopedSet)

	localSet := make(map[ident.Identity]bool)
	consider := func(id ident.Identity) {
		if scopedSet[id] {
			return
		}
		if _, ok := f.inv.Import(id); ok {
			localSet[id] = true
			return
		}
		if _, ok := f.inv.Export(id); ok {
			localSet[id] = true
			return
		}
		if f.inv.IsPlainRoot(id) {
			f.diagf(argNode, "reference to root-level identifier %q needs to be exported from its module", id.Sym)
		}
	}
	for id := range descendents {
		consider(id)
	}
	for _, id := range nestedRefs {
		consider(id)
	}
	// descendents already includes any reference to the element/fragment
	// factory (spec.md's use_h/use_fragment): since both are ordinary
	// imports from JSXRuntimeModule, the consider() loop above already
	// routes them into localIdents like any other free import reference.
	localIdents := sortedIdentities(localSet)

	h := &hook.Hook{
		CanonicalFilename: canonicalFilename,
		Name:              symbolName,
		Data: hook.Data{
			Extension:    f.opts.Extension,
			LocalIdents:  localIdents,
			ScopedIdents: scopedIdents,
			ParentHook:   parentHook,
			CtxKind:      kind,
			CtxName:      ctxName,
			Origin:       f.opts.Origin,
			DisplayName:  displayName,
			Hash:         hashStr,
		},
		Expr: foldedExpr,
		Hash: hashU64,
	}
	if f.opts.EntryPolicy != nil {
		if entry, ok := f.opts.EntryPolicy.GetEntryForSym(symbolName, f.opts.Origin, f.naming.Snapshot(), h.Data); ok {
			h.Entry = &entry
		}
	}
	f.hooks = append(f.hooks, h)

	importPath := f.importPathFor(h)
	return fmt.Sprintf("%s.%s(() => import(%q), %q%s)",
		f.qwikIdent, f.opts.QrlBuilderName, importPath, symbolName, captureArrayLiteral(scopedIdents))
}

// captureArrayLiteral renders the trailing `, [a, b]` capture array of a
// Q.qrl(...) call; an empty scoped_idents set omits the argument entirely.
func captureArrayLiteral(ids []ident.Identity) string {
	if len(ids) == 0 {
		return ""
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Sym
	}
	return ", [" + strings.Join(names, ", ") + "]"
}

// importPathFor computes the call site's `import(...)` specifier for a
// freshly extracted hook: relative to the host module's own directory,
// grouped under its EntryPolicy-assigned entry file when one was assigned.
func (f *Folder) importPathFor(h *hook.Hook) string {
	name := h.CanonicalFilename
	if h.Entry != nil {
		name = *h.Entry
	}
	path := "./" + name
	if f.opts.ExplicitExtensions {
		path += "." + f.opts.Extension
	}
	return path
}

// scanIdents collects every free identifier reference within n, resolved
// against the scope frames open at the moment of the call (the ancestors
// of the closure being extracted) plus frames scanIdents itself opens while
// descending into n — a read-only simulation of the same push/declare/pop
// discipline fold() performs, needed because tree-sitter's CST carries no
// resolved binding information the way an already-resolved AST would.
func (f *Folder) scanIdents(n *sitter.Node) map[ident.Identity]bool {
	out := make(map[ident.Identity]bool)
	f.scanWalk(n, out)
	return out
}

func (f *Folder) scanWalk(n *sitter.Node, out map[ident.Identity]bool) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier":
		out[f.referenceIdentity(f.content(n))] = true
	case "property_identifier":
		// an object key or member-access property name, never a reference.
	case "variable_declarator":
		nameNode := n.ChildByFieldName("name")
		if nameNode != nil {
			for _, sym := range f.collectPatternSymbols(nameNode) {
				f.scope.Declare(sym, ident.Var)
			}
		}
		if v := n.ChildByFieldName("value"); v != nil {
			f.scanWalk(v, out)
		}
	case "function_declaration", "function", "generator_function_declaration", "method_definition":
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			f.scope.Declare(f.content(nameNode), ident.Fn)
		}
		f.scope.Push()
		f.declareParams(n.ChildByFieldName("parameters"))
		if b := n.ChildByFieldName("body"); b != nil {
			f.scanWalk(b, out)
		}
		f.scope.Pop()
	case "arrow_function", "function_expression":
		f.scope.Push()
		if n.Type() == "function_expression" {
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				f.scope.Declare(f.content(nameNode), ident.Fn)
			}
		}
		f.declareParams(n.ChildByFieldName("parameters"))
		if b := n.ChildByFieldName("body"); b != nil {
			f.scanWalk(b, out)
		} else if v := n.ChildByFieldName("value"); v != nil {
			// an arrow function with a concise (non-block) body exposes it
			// through the "body" field in tree-sitter-javascript; this
			// branch is defensive for grammar variants that don't.
			f.scanWalk(v, out)
		}
		f.scope.Pop()
	case "class_declaration", "class":
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			f.scope.Declare(f.content(nameNode), ident.Class)
		}
		if b := n.ChildByFieldName("body"); b != nil {
			f.scanWalk(b, out)
		}
	case "statement_block", "if_statement", "for_statement", "for_in_statement",
		"while_statement", "do_statement", "switch_statement", "class_body", "catch_clause":
		f.scope.Push()
		f.scanWalkChildren(n, out)
		f.scope.Pop()
	default:
		f.scanWalkChildren(n, out)
	}
}

func (f *Folder) scanWalkChildren(n *sitter.Node, out map[ident.Identity]bool) {
	cc := int(n.NamedChildCount())
	for i := 0; i < cc; i++ {
		f.scanWalk(n.NamedChild(i), out)
	}
}
