package naming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/qwikfold/naming"
)

func TestRegisterDeduplicatesDisplayNames(t *testing.T) {
	ctx := naming.New()
	ctx.Push("App")
	ctx.Push("component$")

	sym1, disp1, hash1, _ := ctx.Register("src/app.tsx", false, '$')
	assert.Equal(t, "App_component", disp1)
	assert.Len(t, hash1, 10)
	assert.Equal(t, "s_"+hash1, sym1)

	sym2, disp2, hash2, _ := ctx.Register("src/app.tsx", false, '$')
	assert.Equal(t, "App_component_1", disp2)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, "s_"+hash2, sym2)
}

func TestRegisterDevModePrefixesDisplayName(t *testing.T) {
	ctx := naming.New()
	ctx.Push("App")
	ctx.Push("component$")

	sym, disp, hash, _ := ctx.Register("src/app.tsx", true, '$')
	assert.Equal(t, disp+"_"+hash, sym)
}

func TestRegisterEmptyStackFallsBackToS(t *testing.T) {
	ctx := naming.New()
	_, disp, _, _ := ctx.Register("src/app.tsx", false, '$')
	assert.Equal(t, "s_", disp)
}

func TestPushPopSnapshot(t *testing.T) {
	ctx := naming.New()
	ctx.Push("a")
	ctx.Push("b")
	assert.Equal(t, []string{"a", "b"}, ctx.Snapshot())

	ctx.Pop()
	assert.Equal(t, []string{"a"}, ctx.Snapshot())

	ctx.Pop()
	ctx.Pop() // no-op on empty stack
	assert.Empty(t, ctx.Snapshot())
}

func TestHash64IsDeterministic(t *testing.T) {
	h1 := naming.Hash64("src/app.tsx", "App_component")
	h2 := naming.Hash64("src/app.tsx", "App_component")
	assert.Equal(t, h1, h2)

	h3 := naming.Hash64("src/app.tsx", "App_other")
	assert.NotEqual(t, h1, h3)
}

func TestRegisterOriginAffectsHash(t *testing.T) {
	ctx1 := naming.New()
	ctx1.Push("App")
	_, _, hash1, _ := ctx1.Register("src/a.tsx", false, '$')

	ctx2 := naming.New()
	ctx2.Push("App")
	_, _, hash2, _ := ctx2.Register("src/b.tsx", false, '$')

	require.NotEqual(t, hash1, hash2)
}
