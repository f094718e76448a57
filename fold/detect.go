package fold

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/qwikfold/hook"
	"github.com/viant/qwikfold/ident"
	"github.com/viant/qwikfold/inventory"
)

// referenceIdentity resolves a bare identifier reference: an open scope
// frame wins (shadowing), otherwise the name is assumed to be a module-root
// reference (an import, export, or plain top-level declaration), matching
// how descendent reference resolution works once the declare side has
// already populated scope.Tracker and inventory's root set.
func (f *Folder) referenceIdentity(name string) ident.Identity {
	if b, ok := f.scope.Resolve(name); ok {
		return b.Identity
	}
	return ident.New(name, ident.ModuleTag)
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	cc := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, cc)
	for i := 0; i < cc; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

func isClosureLike(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "arrow_function", "function_expression", "function":
		return true
	default:
		return false
	}
}

// markerSpecifiers, hookBuilderIdentity, and jsxFactoryIdentities are built
// once, lazily, from the Inventory, classifying identities against the three
// call-expression detection rules (spec.md §4.4). Synthetic companion
// imports that resolveCompanion adds later are not classified.
func (f *Folder) ensureDetectionTables() {
	if f.detectionBuilt {
		return
	}
	f.detectionBuilt = true
	f.markers = make(map[ident.Identity]string)
	f.jsxFactories = make(map[ident.Identity]bool)

	sigil := string(f.opts.Sigil)
	for local, imp := range f.inv.Imports() {
		if imp.Kind == inventory.Named {
			if strings.HasSuffix(imp.Specifier, sigil) {
				f.markers[local] = imp.Specifier
			}
			if imp.Source == f.opts.JSXRuntimeModule {
				f.jsxFactories[local] = true
			}
		}
		if imp.Source == f.opts.FrameworkModule && imp.Specifier == f.opts.HookBuilderSpecifier {
			id := local
			f.hookBuilderID = &id
		}
	}
	for local, exp := range f.inv.Exports() {
		name := local.Sym
		if exp.Alias != nil {
			name = *exp.Alias
		}
		if strings.HasSuffix(name, sigil) {
			f.markers[local] = name
		}
	}
}

// foldCallExpression implements the three detection rules at a call site:
// (a) a direct hook-builder call ($(...)), (b) a JSX-factory call
// (h(...)/Fragment(...)), (c) a marker call (anything$(...)). Anything else
// falls back to generic reconstruction.
func (f *Folder) foldCallExpression(n *sitter.Node) string {
	f.ensureDetectionTables()

	calleeNode := n.ChildByFieldName("function")
	if calleeNode != nil && calleeNode.Type() == "identifier" {
		name := f.content(calleeNode)
		id := f.referenceIdentity(name)

		if f.hookBuilderID != nil && id == *f.hookBuilderID {
			return f.handleDirectHookBuilder(n)
		}
		if f.jsxFactories[id] {
			return f.handleJSXCall(n)
		}
		if specifier, ok := f.markers[id]; ok {
			return f.handleMarkerCall(n, calleeNode, id, specifier)
		}
	}
	return f.foldChildren(n)
}

// handleDirectHookBuilder extracts the bare hook-builder call's first
// argument wholesale: the call itself disappears, replaced entirely by the
// synthetic extraction's replacement expression.
func (f *Folder) handleDirectHookBuilder(n *sitter.Node) string {
	args := namedChildren(n.ChildByFieldName("arguments"))
	if len(args) == 0 || !isClosureLike(args[0]) {
		f.diagf(n, "%c(...) expects a function or arrow expression as its first argument", f.opts.Sigil)
		return f.foldChildren(n)
	}
	return f.syntheticExtraction(args[0], hook.Function, f.opts.HookBuilderSpecifier)
}

// handleMarkerCall rewrites a marker call (e.g. component$(fn)) to call its
// de-sigilled companion (componentQrl) with fn's synthetic extraction in
// place of the original closure argument; any further arguments are folded
// normally.
func (f *Folder) handleMarkerCall(n, calleeNode *sitter.Node, id ident.Identity, specifier string) string {
	f.naming.Push(f.content(calleeNode))
	defer f.naming.Pop()

	companionLocal, ok := f.resolveCompanion(id, specifier)
	if !ok {
		f.diagf(calleeNode, "version of %q without trailing %c is not exported", specifier, f.opts.Sigil)
		return f.foldChildren(n)
	}
	f.noteCompanionRef(ident.New(companionLocal, ident.ModuleTag))

	args := namedChildren(n.ChildByFieldName("arguments"))

	var b strings.Builder
	if specifier == f.opts.ComponentMarkerSpecifier {
		b.WriteString("/*#__PURE__*/ ")
	}
	b.WriteString(companionLocal)
	b.WriteString("(")
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		if i == 0 && isClosureLike(a) {
			b.WriteString(f.syntheticExtraction(a, hook.Function, specifier))
		} else {
			b.WriteString(f.fold(a))
		}
	}
	b.WriteString(")")
	return b.String()
}

// handleJSXCall pushes the element's tag name onto the naming stack (when
// statically known) before folding generically, and pushes a JSXFunction
// marker on the Position Context for the duration of that fold (spec.md
// §4.4 rule (b)): this is what lets foldPair tell a props object passed
// directly to a JSX factory call apart from an unrelated object literal
// elsewhere in the module.
func (f *Folder) handleJSXCall(n *sitter.Node) string {
	args := namedChildren(n.ChildByFieldName("arguments"))
	pushed := false
	if len(args) > 0 {
		if tag := f.jsxTagName(args[0]); tag != "" {
			f.naming.Push(tag)
			pushed = true
		}
	}
	f.jsxPosition++
	result := f.foldChildren(n)
	f.jsxPosition--
	if pushed {
		f.naming.Pop()
	}
	return result
}

func (f *Folder) jsxTagName(n *sitter.Node) string {
	switch n.Type() {
	case "string":
		return strings.Trim(f.content(n), "\"'`")
	case "identifier":
		return f.content(n)
	default:
		return ""
	}
}

// resolveCompanion resolves a marker's de-sigilled companion identity per
// original_source/.../transform.rs's handle_call_expr import/export
// branches: an imported marker's companion is imported from the same
// source (creating a fresh synthetic import the first time, and staging it
// into the host prelude once, the first time it is resolved outside any
// open extraction), while an exported marker's companion must already
// exist as another export of the host module.
func (f *Folder) resolveCompanion(id ident.Identity, specifier string) (string, bool) {
	newSpecifier := companionName(specifier, f.opts.Sigil, f.opts.LongSuffix)

	if imp, ok := f.inv.Import(id); ok {
		stage := func(sid ident.Identity) {
			if len(f.hookStack) > 0 {
				return
			}
			for _, s := range f.staged {
				if s.id == sid {
					return
				}
			}
			f.staged = append(f.staged, stagedImport{
				id:   sid,
				text: fmt.Sprintf("import { %s as %s } from %q;", newSpecifier, sid.Sym, imp.Source),
			})
		}
		if existing, found := f.inv.FindImportBySpecifier(imp.Source, newSpecifier); found {
			if prior, _ := f.inv.Import(existing); prior.Synthetic {
				stage(existing)
			}
			return existing.Sym, true
		}
		newID := ident.New(newSpecifier, ident.ModuleTag)
		f.inv.AddImport(inventory.Import{
			Source:    imp.Source,
			Kind:      inventory.Named,
			Local:     newID,
			Specifier: newSpecifier,
			Synthetic: true,
		})
		stage(newID)
		return newSpecifier, true
	}

	if _, ok := f.inv.Export(id); ok {
		if newLocal, found := f.inv.FindExportBySpecifier(newSpecifier); found {
			return newLocal.Sym, true
		}
		return "", false
	}

	return "", false
}

// noteCompanionRef records a resolved companion identity against the
// innermost currently-open synthetic extraction, if any: its folded text
// will literally reference this identity, so it belongs in that
// extraction's local_idents (see fold/extract.go).
func (f *Folder) noteCompanionRef(id ident.Identity) {
	if len(f.companionRefStack) == 0 {
		return
	}
	top := len(f.companionRefStack) - 1
	f.companionRefStack[top] = append(f.companionRefStack[top], id)
}
