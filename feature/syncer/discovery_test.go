package syncer

import (
	"os"
	"path/filepath"
	"testing"

	"asset-sync/feature/asset"
	"asset-sync/feature/project"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeProjectConfig(t *testing.T, folder, content string) {
	t.Helper()
	writeFile(t, filepath.Join(folder, project.ConfigFilename), content)
}

func newTestSession(t *testing.T, folder string) *Session {
	t.Helper()
	session, err := NewSession(folder, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, session.DiscoverConfigs())
	return session
}

func inputNames(s *Session) []asset.Name {
	names := make([]asset.Name, 0, len(s.inputs))
	for name := range s.inputs {
		names = append(names, name)
	}
	return names
}

func TestDiscoverInputs_GlobMatching(t *testing.T) {
	dir := t.TempDir()
	writeProjectConfig(t, dir, `
name = "game"

[[inputs]]
glob = "assets/**/*.png"
`)
	writeFile(t, filepath.Join(dir, "assets", "logo.png"), "logo")
	writeFile(t, filepath.Join(dir, "assets", "ui", "icons", "save.png"), "save")
	writeFile(t, filepath.Join(dir, "assets", "notes.txt"), "not an image")
	writeFile(t, filepath.Join(dir, "outside.png"), "outside the prefix")

	session := newTestSession(t, dir)
	require.NoError(t, session.DiscoverInputs())

	assert.ElementsMatch(t, []asset.Name{
		"assets/logo.png",
		"assets/ui/icons/save.png",
	}, inputNames(session))
}

func TestDiscoverInputs_PrefixIsNotTheFilter(t *testing.T) {
	// The static prefix only narrows the walk; a file under the prefix
	// that fails the full pattern must not be accepted.
	dir := t.TempDir()
	writeProjectConfig(t, dir, `
name = "game"

[[inputs]]
glob = "assets/*.png"
`)
	writeFile(t, filepath.Join(dir, "assets", "flat.png"), "flat")
	writeFile(t, filepath.Join(dir, "assets", "deep", "nested.png"), "nested")

	session := newTestSession(t, dir)
	require.NoError(t, session.DiscoverInputs())

	assert.ElementsMatch(t, []asset.Name{"assets/flat.png"}, inputNames(session))
}

func TestDiscoverInputs_MissingPrefixFolder(t *testing.T) {
	dir := t.TempDir()
	writeProjectConfig(t, dir, `
name = "game"

[[inputs]]
glob = "assets/**/*.png"
`)

	session := newTestSession(t, dir)
	require.NoError(t, session.DiscoverInputs())
	assert.Empty(t, session.inputs)
}

func TestDiscoverInputs_OverlappingGlobs(t *testing.T) {
	dir := t.TempDir()
	writeProjectConfig(t, dir, `
name = "game"

[[inputs]]
glob = "assets/**/*.png"

[[inputs]]
glob = "assets/logo.png"
`)
	writeFile(t, filepath.Join(dir, "assets", "logo.png"), "logo")

	session := newTestSession(t, dir)
	err := session.DiscoverInputs()
	require.Error(t, err)

	var overlapErr *OverlappingGlobsError
	require.ErrorAs(t, err, &overlapErr)
	assert.Equal(t, asset.Name("assets/logo.png"), overlapErr.Name)
	assert.Equal(t, filepath.Join(dir, "assets", "logo.png"), overlapErr.ExistingPath)
}

func TestDiscoverInputs_AcrossConfigs(t *testing.T) {
	dir := t.TempDir()
	writeProjectConfig(t, filepath.Join(dir, "shared"), `
name = "shared"

[[inputs]]
glob = "*.png"
`)
	writeProjectConfig(t, dir, `
name = "root"

[[includes]]
path = "shared"

[[inputs]]
glob = "assets/*.png"
`)
	writeFile(t, filepath.Join(dir, "assets", "logo.png"), "logo")
	writeFile(t, filepath.Join(dir, "shared", "button.png"), "button")

	session := newTestSession(t, dir)
	require.NoError(t, session.DiscoverInputs())

	assert.ElementsMatch(t, []asset.Name{"assets/logo.png", "button.png"}, inputNames(session))

	// Each input keeps a reference to the config that owns it.
	assert.Equal(t, "root", session.inputs["assets/logo.png"].Config.Name)
	assert.Equal(t, "shared", session.inputs["button.png"].Config.Name)
}

func TestDiscoverInputs_InvalidGlob(t *testing.T) {
	dir := t.TempDir()
	writeProjectConfig(t, dir, `
name = "game"

[[inputs]]
glob = "assets/[.png"
`)

	session := newTestSession(t, dir)
	assert.Error(t, session.DiscoverInputs())
}
