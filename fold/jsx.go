package fold

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/qwikfold/hook"
)

// foldJSXElement pushes the element's opening tag name onto the naming
// stack before descending generically; event-attribute rewriting happens
// independently in foldJSXAttribute since jsx_attribute nodes are visited
// regardless of which ancestor introduced them.
func (f *Folder) foldJSXElement(n *sitter.Node) string {
	tag := f.jsxElementTag(n)
	pushed := tag != ""
	if pushed {
		f.naming.Push(tag)
	}
	result := f.foldChildren(n)
	if pushed {
		f.naming.Pop()
	}
	return result
}

func (f *Folder) jsxElementTag(n *sitter.Node) string {
	cc := int(n.NamedChildCount())
	for i := 0; i < cc; i++ {
		child := n.NamedChild(i)
		if child.Type() == "jsx_opening_element" {
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				return f.content(nameNode)
			}
		}
	}
	return ""
}

// foldJSXSelfClosing handles `<Tag attr={...} />`, which carries its own
// name field directly rather than through a separate opening-element node.
func (f *Folder) foldJSXSelfClosing(n *sitter.Node) string {
	var tag string
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		tag = f.content(nameNode)
	}
	pushed := tag != ""
	if pushed {
		f.naming.Push(tag)
	}
	result := f.foldChildren(n)
	if pushed {
		f.naming.Pop()
	}
	return result
}

// foldJSXAttribute extracts a sigil-suffixed attribute's value as an
// Event-kind hook and rewrites the attribute name itself to its companion
// suffix (spec.md §4.4: "JSX attribute names ending with the sigil
// character are rewritten to their companion suffix"), the same
// de-sigil-and-append-LongSuffix rule handle_call's companion resolution
// uses for a marker's callee — except an attribute name is never bound to
// anything in Inventory, so no import/export lookup applies here, only the
// syntactic rename. The literal "children" key is never treated as an
// event attribute even if some unrelated reason made it end in the sigil.
func (f *Folder) foldJSXAttribute(n *sitter.Node) string {
	nameNode := namedChildAt(n, 0)
	valueNode := namedChildAt(n, 1)
	if nameNode == nil {
		return f.foldChildren(n)
	}
	name := f.content(nameNode)
	if name == "children" || !strings.HasSuffix(name, string(f.opts.Sigil)) {
		return f.foldChildren(n)
	}
	if valueNode == nil {
		return f.foldChildren(n)
	}
	inner := unwrapJSXExpression(valueNode)
	if inner == nil || !isClosureLike(inner) {
		return f.foldChildren(n)
	}

	f.naming.Push(name)
	extracted := f.syntheticExtraction(inner, hook.Event, name)
	f.naming.Pop()

	var b strings.Builder
	b.WriteString(companionName(name, f.opts.Sigil, f.opts.LongSuffix))
	b.WriteString("={")
	b.WriteString(extracted)
	b.WriteString("}")
	return b.String()
}

// companionName strips name's trailing sigil and appends suffix, the
// syntactic half of companion-name resolution shared by marker calls
// (detect.go's resolveCompanion, which additionally resolves the result
// against Inventory) and JSX event attributes (which don't).
func companionName(name string, sigil byte, suffix string) string {
	return strings.TrimSuffix(name, string(sigil)) + suffix
}

// foldPair extracts a sigil-suffixed object-property value the same way
// foldJSXAttribute does for literal JSX, but only when the pair sits inside
// a JSX factory call's arguments (spec.md §4.4 rule (b): "Object property
// keys whose parent is in JSXFunction position and end with the sigil
// behave symmetrically") — tracked by handleJSXCall's jsxPosition marker.
// An object literal anywhere else in the module is left untouched even if
// one of its keys happens to end in the sigil.
func (f *Folder) foldPair(n *sitter.Node) string {
	if f.jsxPosition == 0 {
		return f.foldChildren(n)
	}
	keyNode := n.ChildByFieldName("key")
	valueNode := n.ChildByFieldName("value")
	if keyNode == nil || valueNode == nil {
		return f.foldChildren(n)
	}
	keyName := f.pairKeyText(keyNode)
	if keyName == "" || keyName == "children" || !strings.HasSuffix(keyName, string(f.opts.Sigil)) {
		return f.foldChildren(n)
	}
	if !isClosureLike(valueNode) {
		return f.foldChildren(n)
	}

	f.naming.Push(keyName)
	extracted := f.syntheticExtraction(valueNode, hook.Event, keyName)
	f.naming.Pop()

	return companionName(keyName, f.opts.Sigil, f.opts.LongSuffix) + ": " + extracted
}

func (f *Folder) pairKeyText(keyNode *sitter.Node) string {
	switch keyNode.Type() {
	case "property_identifier", "identifier":
		return f.content(keyNode)
	case "string":
		return strings.Trim(f.content(keyNode), "\"'`")
	default:
		return ""
	}
}

func namedChildAt(n *sitter.Node, i int) *sitter.Node {
	if n == nil || int(n.NamedChildCount()) <= i {
		return nil
	}
	return n.NamedChild(i)
}

// unwrapJSXExpression pulls the wrapped expression out of a `{ expr }` JSX
// expression container; a plain string attribute value has no such
// wrapper and is returned as-is (callers reject it via isClosureLike).
func unwrapJSXExpression(n *sitter.Node) *sitter.Node {
	if n.Type() == "jsx_expression" {
		if n.NamedChildCount() > 0 {
			return n.NamedChild(0)
		}
		return nil
	}
	return n
}
