package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/qwikfold/project"
)

func TestDetectFindsPackageJSONRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name":"demo-app"}`), 0644))

	srcDir := filepath.Join(root, "src", "components")
	require.NoError(t, os.MkdirAll(srcDir, 0755))
	file := filepath.Join(srcDir, "app.tsx")
	require.NoError(t, os.WriteFile(file, []byte(`export const App = 1;`), 0644))

	info, err := project.New().Detect(file)
	require.NoError(t, err)

	assert.Equal(t, "javascript", info.Type)
	assert.Equal(t, "demo-app", info.Name)
	assert.Equal(t, "src/components/app.tsx", info.RelativePath)
}

func TestDetectFallsBackToUnknown(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "app.tsx")
	require.NoError(t, os.WriteFile(file, []byte(`export const App = 1;`), 0644))

	info, err := project.New().Detect(file)
	require.NoError(t, err)
	assert.Equal(t, "unknown", info.Type)
}

func TestOriginTrimsLeadingDotSlash(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(`{"name":"demo-app"}`), 0644))
	file := filepath.Join(root, "app.tsx")
	require.NoError(t, os.WriteFile(file, []byte(`export const App = 1;`), 0644))

	origin, err := project.Origin(file)
	require.NoError(t, err)
	assert.Equal(t, "app.tsx", origin)
}
