package tsnode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/qwikfold/tsnode"
)

func TestParseJavaScript(t *testing.T) {
	src := []byte(`const x = 1;`)
	mod, err := tsnode.Parse("src/app.js", src)
	require.NoError(t, err)
	assert.Equal(t, "program", mod.Root.Type())
	assert.Equal(t, string(src), mod.Content(mod.Root))
}

func TestParseTSXSelectsTSXGrammar(t *testing.T) {
	src := []byte(`const App = () => <div />;`)
	mod, err := tsnode.Parse("src/app.tsx", src)
	require.NoError(t, err)
	assert.False(t, mod.Root.HasError())
}

func TestParseTypeScriptSelectsTypeScriptGrammar(t *testing.T) {
	src := []byte(`const x: number = 1;`)
	mod, err := tsnode.Parse("src/app.ts", src)
	require.NoError(t, err)
	assert.False(t, mod.Root.HasError())
}

func TestSpanOfMatchesContent(t *testing.T) {
	src := []byte(`const count = 1;`)
	mod, err := tsnode.Parse("src/app.js", src)
	require.NoError(t, err)

	decl := mod.Root.NamedChild(0)
	span := mod.SpanOf(decl)
	assert.Equal(t, string(src[span.Start:span.End]), mod.Content(decl))
}
