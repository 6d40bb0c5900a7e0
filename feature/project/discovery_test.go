package project_test

import (
	"path/filepath"
	"testing"

	"asset-sync/feature/project"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func discover(t *testing.T, rootFolder string) ([]*project.Config, error) {
	t.Helper()
	root, err := project.ReadConfigFromFolder(rootFolder)
	require.NoError(t, err)
	return project.DiscoverConfigs(root, zap.NewNop())
}

func configNames(configs []*project.Config) []string {
	names := make([]string, len(configs))
	for i, c := range configs {
		names[i] = c.Name
	}
	return names
}

func TestDiscoverConfigs_IncludeFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, "child"), `name = "child"`)
	writeConfig(t, dir, `
name = "root"

[[includes]]
path = "child/`+project.ConfigFilename+`"
`)

	configs, err := discover(t, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "child"}, configNames(configs))
}

func TestDiscoverConfigs_DirectorySearch(t *testing.T) {
	dir := t.TempDir()

	// libs/ has no config; the search fans out into its subdirectories.
	writeConfig(t, filepath.Join(dir, "libs", "ui"), `name = "ui"`)
	writeConfig(t, filepath.Join(dir, "libs", "icons"), `name = "icons"`)
	writeConfig(t, dir, `
name = "root"

[[includes]]
path = "libs"
`)

	configs, err := discover(t, dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"root", "ui", "icons"}, configNames(configs))
	assert.Equal(t, "root", configs[0].Name)
}

func TestDiscoverConfigs_NearestConfigWins(t *testing.T) {
	dir := t.TempDir()

	// libs/ owns a config, so the search must not descend into libs/inner
	// even though it also owns one.
	writeConfig(t, filepath.Join(dir, "libs"), `name = "libs"`)
	writeConfig(t, filepath.Join(dir, "libs", "inner"), `name = "inner"`)
	writeConfig(t, dir, `
name = "root"

[[includes]]
path = "libs"
`)

	configs, err := discover(t, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "libs"}, configNames(configs))
}

func TestDiscoverConfigs_TransitiveIncludes(t *testing.T) {
	dir := t.TempDir()

	writeConfig(t, filepath.Join(dir, "b"), `name = "b"`)
	writeConfig(t, filepath.Join(dir, "a"), `
name = "a"

[[includes]]
path = "../b"
`)
	writeConfig(t, dir, `
name = "root"

[[includes]]
path = "a"
`)

	configs, err := discover(t, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "a", "b"}, configNames(configs))
}

func TestDiscoverConfigs_Cycle(t *testing.T) {
	dir := t.TempDir()

	writeConfig(t, filepath.Join(dir, "a"), `
name = "a"

[[includes]]
path = "../b"
`)
	writeConfig(t, filepath.Join(dir, "b"), `
name = "b"

[[includes]]
path = "../a"
`)
	writeConfig(t, dir, `
name = "root"

[[includes]]
path = "a"
`)

	_, err := discover(t, dir)
	require.Error(t, err)

	var cycleErr *project.CycleError
	assert.ErrorAs(t, err, &cycleErr)
}

func TestDiscoverConfigs_MissingInclude(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
name = "root"

[[includes]]
path = "does-not-exist"
`)

	_, err := discover(t, dir)
	assert.Error(t, err)
}
