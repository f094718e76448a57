package transform_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/viant/qwikfold/ident"
	"github.com/viant/qwikfold/inventory"
	"github.com/viant/qwikfold/scope"
	"github.com/viant/qwikfold/transform"
)

func TestTransformExtractsComponentHook(t *testing.T) {
	src := []byte(`import { component$ } from "@builder.io/qwik";
export const App = component$(() => null);
`)
	inv := inventory.New()
	inv.AddImport(inventory.Import{
		Source:    "@builder.io/qwik",
		Kind:      inventory.Named,
		Local:     ident.New("component$", ident.ModuleTag),
		Specifier: "component$",
	})
	inv.AddExport(inventory.Export{Local: ident.New("App", scope.RootTag)})

	opts := transform.DefaultOptions()
	opts.Origin = "src/app.tsx"

	result, err := transform.Transform("src/app.tsx", src, inv, opts)
	require.NoError(t, err)
	require.Len(t, result.Hooks, 1)
	require.Contains(t, result.Source, "componentQrl(")
}
