package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"asset-sync/feature/asset"
	"asset-sync/feature/manifest"
	"asset-sync/feature/project"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFromFolder_Missing(t *testing.T) {
	m, err := manifest.ReadFromFolder(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, m.Inputs)
}

func TestReadFromFolder_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifest.Filename), []byte("inputs = ["), 0o644))

	_, err := manifest.ReadFromFolder(dir)
	assert.Error(t, err)
}

func TestManifest_Roundtrip(t *testing.T) {
	dir := t.TempDir()

	m := manifest.New()
	m.Inputs["ui/icons/save.png"] = manifest.InputManifest{
		Hash: "deadbeef",
		ID:   "assets/deadbeef.png",
		Config: project.InputConfig{
			Glob:    "ui/**/*.png",
			Codegen: project.KindAssetURL,
		},
	}
	m.Inputs["atlas/button.png"] = manifest.InputManifest{
		Hash:  "cafebabe",
		ID:    "assets/cafebabe.png",
		Slice: &asset.Slice{Min: [2]int{0, 16}, Size: [2]int{32, 32}},
		Config: project.InputConfig{
			Glob:     "atlas/*.png",
			Packable: true,
		},
	}

	require.NoError(t, m.WriteToFolder(dir))

	loaded, err := manifest.ReadFromFolder(dir)
	require.NoError(t, err)
	assert.Equal(t, m.Inputs, loaded.Inputs)
}

func TestWriteToFolder_Stable(t *testing.T) {
	dir := t.TempDir()

	m := manifest.New()
	m.Inputs["b.png"] = manifest.InputManifest{Hash: "bb", ID: "assets/bb.png"}
	m.Inputs["a.png"] = manifest.InputManifest{Hash: "aa", ID: "assets/aa.png"}

	require.NoError(t, m.WriteToFolder(dir))
	first, err := os.ReadFile(filepath.Join(dir, manifest.Filename))
	require.NoError(t, err)

	require.NoError(t, m.WriteToFolder(dir))
	second, err := os.ReadFile(filepath.Join(dir, manifest.Filename))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
