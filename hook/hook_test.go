package hook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/viant/qwikfold/hook"
	"github.com/viant/qwikfold/ident"
)

func TestHookRoundTripsThroughYAML(t *testing.T) {
	entry := "chunk-a"
	h := &hook.Hook{
		Entry:             &entry,
		CanonicalFilename: "s_abc123xyz0",
		Name:              "s_abc123xyz0",
		Data: hook.Data{
			Extension:    "js",
			LocalIdents:  []ident.Identity{ident.New("useStore", ident.ModuleTag)},
			ScopedIdents: []ident.Identity{ident.New("count", 7)},
			ParentHook:   "s_parent000",
			CtxKind:      hook.Function,
			CtxName:      "component$",
			Origin:       "src/app.tsx",
			DisplayName:  "App_component",
			Hash:         "abc123xyz0",
		},
		Expr: "() => null",
	}

	out, err := yaml.Marshal(h)
	assert.NoError(t, err)

	var decoded hook.Hook
	assert.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, h.Name, decoded.Name)
	assert.Equal(t, h.Data.CtxKind, decoded.Data.CtxKind)
	assert.Equal(t, h.Data.DisplayName, decoded.Data.DisplayName)
	assert.Equal(t, *h.Entry, *decoded.Entry)

	// Expr and Hash are marked yaml:"-" and must not round-trip.
	assert.Empty(t, decoded.Expr)
	assert.Zero(t, decoded.Hash)
}

func TestEventKindDistinguishesFromFunction(t *testing.T) {
	assert.NotEqual(t, hook.Function, hook.Event)
}
