package fold

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/qwikfold/ident"
)

// foldVariableDeclarator declares every identifier bound by the
// declarator's pattern into the current (enclosing) frame before folding
// its children, mirroring fold_var_declarator in
// original_source/.../transform.rs: a var binding does not open its own
// scope frame, and a simple identifier name is pushed onto the naming stack
// for the duration of folding the initializer.
func (f *Folder) foldVariableDeclarator(n *sitter.Node) string {
	nameNode := n.ChildByFieldName("name")

	pushedName := false
	if nameNode != nil && nameNode.Type() == "identifier" {
		f.naming.Push(f.content(nameNode))
		pushedName = true
	}
	if nameNode != nil {
		for _, sym := range f.collectPatternSymbols(nameNode) {
			f.scope.Declare(sym, ident.Var)
		}
	}

	result := f.foldChildren(n)

	if pushedName {
		f.naming.Pop()
	}
	return result
}

// foldFunctionLike handles function declarations, plain function
// expressions used as methods, and generator declarations: the function's
// own name (if any) is declared in the ENCLOSING frame (so it can recurse
// and so sibling code can reference it), then a fresh frame is opened for
// its parameters and body.
func (f *Folder) foldFunctionLike(n *sitter.Node) string {
	nameNode := n.ChildByFieldName("name")
	pushedName := false
	if nameNode != nil && nameNode.Type() == "identifier" {
		f.scope.Declare(f.content(nameNode), ident.Fn)
		f.naming.Push(f.content(nameNode))
		pushedName = true
	}

	f.scope.Push()
	f.declareParams(n.ChildByFieldName("parameters"))
	result := f.foldChildren(n)
	f.scope.Pop()

	if pushedName {
		f.naming.Pop()
	}
	return result
}

// foldArrowOrFnExpr handles arrow functions and anonymous function
// expressions: no enclosing declaration (they have no name to hoist), just
// a fresh frame for parameters and body.
func (f *Folder) foldArrowOrFnExpr(n *sitter.Node) string {
	if n.Type() == "function_expression" {
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			// A named function expression's own name is visible only to
			// itself (for recursion), so it lives in the fresh frame, not
			// the enclosing one.
			f.scope.Push()
			f.scope.Declare(f.content(nameNode), ident.Fn)
			f.declareParams(n.ChildByFieldName("parameters"))
			result := f.foldChildren(n)
			f.scope.Pop()
			return result
		}
	}
	f.scope.Push()
	f.declareParams(n.ChildByFieldName("parameters"))
	result := f.foldChildren(n)
	f.scope.Pop()
	return result
}

// foldClassLike declares the class's own name in the enclosing frame (class
// declarations, like function declarations, are visible to sibling code),
// then opens a fresh frame for the class body.
func (f *Folder) foldClassLike(n *sitter.Node) string {
	nameNode := n.ChildByFieldName("name")
	pushedName := false
	if nameNode != nil && nameNode.Type() == "identifier" {
		f.scope.Declare(f.content(nameNode), ident.Class)
		f.naming.Push(f.content(nameNode))
		pushedName = true
	}
	result := f.foldChildren(n)
	if pushedName {
		f.naming.Pop()
	}
	return result
}

// declareParams declares every identifier appearing in a formal_parameters
// node as Var in the current (already pushed) frame.
func (f *Folder) declareParams(params *sitter.Node) {
	if params == nil {
		return
	}
	cc := int(params.NamedChildCount())
	for i := 0; i < cc; i++ {
		for _, sym := range f.collectPatternSymbols(params.NamedChild(i)) {
			f.scope.Declare(sym, ident.Var)
		}
	}
}

// collectPatternSymbols recursively collects every bound identifier name
// within a binding pattern (destructuring, defaults, rest, single
// identifier), skipping the key side of an object pattern's {key: value}
// shorthand since only the value side binds a name.
func (f *Folder) collectPatternSymbols(n *sitter.Node) []string {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		return []string{f.content(n)}
	case "pair_pattern":
		return f.collectPatternSymbols(n.ChildByFieldName("value"))
	case "assignment_pattern", "object_assignment_pattern":
		return f.collectPatternSymbols(n.ChildByFieldName("left"))
	case "required_parameter", "optional_parameter":
		// TypeScript grammars wrap each formal parameter in one of these.
		return f.collectPatternSymbols(n.ChildByFieldName("pattern"))
	case "rest_pattern":
		if n.NamedChildCount() > 0 {
			return f.collectPatternSymbols(n.NamedChild(0))
		}
		return nil
	case "object_pattern", "array_pattern":
		var out []string
		cc := int(n.NamedChildCount())
		for i := 0; i < cc; i++ {
			out = append(out, f.collectPatternSymbols(n.NamedChild(i))...)
		}
		return out
	default:
		return nil
	}
}
