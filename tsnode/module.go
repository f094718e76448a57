// Package tsnode parses a host module's source into a tree-sitter concrete
// syntax tree and exposes the byte-span primitives fold.Folder needs.
//
// Grounded directly on inspector/jsx/inspector.go, which already parses
// .jsx/.tsx source with github.com/smacker/go-tree-sitter/javascript.
// TypeScript/TSX grammars are supplemented from gnana997-uispec (which
// depends on tree-sitter-typescript) because the plain JavaScript grammar
// mis-parses .ts/.tsx type annotations.
package tsnode

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Span is a byte range in a Module's Source, used for diagnostics.
type Span struct {
	Start uint32
	End   uint32
}

// Module is a parsed host module: its path, source bytes, and tree-sitter
// tree/root.
type Module struct {
	Path   string
	Source []byte
	Tree   *sitter.Tree
	Root   *sitter.Node
}

// languageFor selects a tree-sitter grammar by file extension, the same
// dispatch gnana997-uispec's pkg/parser/language.go performs for .ts/.tsx
// versus .js/.jsx.
func languageFor(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts":
		return typescript.GetLanguage()
	case ".tsx":
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// Parse parses source as a host module located at path (used only to pick
// a grammar by extension; path normalization happens in codemove).
func Parse(path string, source []byte) (*Module, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(languageFor(path))

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("tsnode: failed to parse %s: %w", path, err)
	}

	return &Module{
		Path:   path,
		Source: source,
		Tree:   tree,
		Root:   tree.RootNode(),
	}, nil
}

// Content returns the source text spanned by n.
func (m *Module) Content(n *sitter.Node) string {
	return n.Content(m.Source)
}

// SpanOf returns the byte span of n within Source.
func (m *Module) SpanOf(n *sitter.Node) Span {
	return Span{Start: n.StartByte(), End: n.EndByte()}
}
