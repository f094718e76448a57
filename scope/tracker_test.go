package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/qwikfold/ident"
	"github.com/viant/qwikfold/scope"
)

func TestShadowing(t *testing.T) {
	tr := scope.New()
	tr.Push()
	outer := tr.Declare("count", ident.Var)

	tr.Push()
	inner := tr.Declare("count", ident.Var)

	require.NotEqual(t, outer, inner)

	b, ok := tr.Resolve("count")
	require.True(t, ok)
	assert.Equal(t, inner, b.Identity)

	tr.Pop()
	b, ok = tr.Resolve("count")
	require.True(t, ok)
	assert.Equal(t, outer, b.Identity)
	tr.Pop()
}

func TestLivePartitionsByKind(t *testing.T) {
	tr := scope.New()
	tr.Push()
	v := tr.Declare("x", ident.Var)
	tr.Push()
	f := tr.Declare("inner", ident.Fn)

	capturable, invalid := tr.Live()
	assert.True(t, capturable[v])
	assert.True(t, invalid[f])
	assert.False(t, capturable[f])

	tr.Pop()
	tr.Pop()
}
