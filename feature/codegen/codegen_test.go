package codegen

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

func urlInput(base, rel, id string) Input {
	return Input{
		Path:     filepath.Join(base, filepath.FromSlash(rel)),
		BasePath: base,
		Kind:     project.KindAssetURL,
		ID:       id,
	}
}

func TestWriteGrouped_TreeReconstruction(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "assets.lua")

	// Discovery order is unordered; pass inputs deliberately shuffled.
	inputs := []Input{
		urlInput(dir, "a/c/z.png", "id-z"),
		urlInput(dir, "a/b/y.png", "id-y"),
		urlInput(dir, "a/b/x.png", "id-x"),
	}

	require.NoError(t, WriteGrouped(output, inputs, zap.NewNop()))

	got, err := os.ReadFile(output)
	require.NoError(t, err)

	want := Header + "\n" + `return {
  a = {
    b = {
      x = "asset://id-x",
      y = "asset://id-y",
    },
    c = {
      z = "asset://id-z",
    },
  },
}
`
	assert.Equal(t, want, string(got))
}

func TestWriteGrouped_OmitsInputsWithoutID(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "assets.lua")

	inputs := []Input{
		urlInput(dir, "a/b/x.png", "id-x"),
		urlInput(dir, "a/b/y.png", ""), // upload failed, no identifier
	}

	require.NoError(t, WriteGrouped(output, inputs, zap.NewNop()))

	got, err := os.ReadFile(output)
	require.NoError(t, err)

	want := Header + "\n" + `return {
  a = {
    b = {
      x = "asset://id-x",
    },
  },
}
`
	assert.Equal(t, want, string(got))
}

func TestWriteGrouped_ConflictSkipsBranchOnly(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "assets.lua")

	// a.png establishes "a" as a leaf; a/b.png then tries to traverse it
	// as a folder. The conflicting input is skipped, its siblings are not.
	inputs := []Input{
		urlInput(dir, "a.png", "id-a"),
		urlInput(dir, "a/b.png", "id-b"),
		urlInput(dir, "c.png", "id-c"),
	}

	require.NoError(t, WriteGrouped(output, inputs, zap.NewNop()))

	got, err := os.ReadFile(output)
	require.NoError(t, err)

	want := Header + "\n" + `return {
  a = "asset://id-a",
  c = "asset://id-c",
}
`
	assert.Equal(t, want, string(got))
}

func TestWriteGrouped_EmptyGroup(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "assets.lua")

	require.NoError(t, WriteGrouped(output, nil, zap.NewNop()))

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, Header+"\nreturn {}\n", string(got))
}

func TestWriteGrouped_UrlAndSlice(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "assets.lua")

	inputs := []Input{
		{
			Path:     filepath.Join(dir, "button.png"),
			BasePath: dir,
			Kind:     project.KindURLAndSlice,
			ID:       "id-b",
			Slice:    &asset.Slice{Min: [2]int{4, 8}, Size: [2]int{16, 32}},
		},
		{
			Path:     filepath.Join(dir, "panel.png"),
			BasePath: dir,
			Kind:     project.KindURLAndSlice,
			ID:       "id-p",
		},
	}

	require.NoError(t, WriteGrouped(output, inputs, zap.NewNop()))

	got, err := os.ReadFile(output)
	require.NoError(t, err)

	want := Header + "\n" + `return {
  button = {
    Image = "asset://id-b",
    ImageRectOffset = Vector2.new(4, 8),
    ImageRectSize = Vector2.new(16, 32),
  },
  panel = {
    Image = "asset://id-p",
  },
}
`
	assert.Equal(t, want, string(got))
}

func TestWriteIndividual(t *testing.T) {
	dir := t.TempDir()

	synced := filepath.Join(dir, "logo.png")
	unsynced := filepath.Join(dir, "pending.png")
	nokind := filepath.Join(dir, "raw.png")

	inputs := []Input{
		{Path: synced, BasePath: dir, Kind: project.KindAssetURL, ID: "id-logo"},
		{Path: unsynced, BasePath: dir, Kind: project.KindAssetURL},
		{Path: nokind, BasePath: dir, ID: "id-raw"},
	}

	require.NoError(t, WriteIndividual(inputs, zap.NewNop()))

	got, err := os.ReadFile(filepath.Join(dir, "logo"+GeneratedFileExt))
	require.NoError(t, err)
	assert.Equal(t, Header+"\nreturn \"asset://id-logo\"\n", string(got))

	// No identifier or no codegen kind means no output, and no error.
	_, err = os.Stat(filepath.Join(dir, "pending"+GeneratedFileExt))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "raw"+GeneratedFileExt))
	assert.True(t, os.IsNotExist(err))
}

func TestRelativeSegments(t *testing.T) {
	base := filepath.Join("/", "proj", "src")

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"Nested", filepath.Join(base, "ui", "icons", "save.png"), []string{"ui", "icons", "save.png"}},
		{"ParentPops", filepath.Join(base, "ui", "..", "logo.png"), []string{"logo.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeSegments(base, tt.path))
		})
	}
}

func TestRelativeSegments_AscendsAboveBase(t *testing.T) {
	base := filepath.Join("/", "proj", "src")
	outside := filepath.Join("/", "proj", "elsewhere", "logo.png")

	assert.Panics(t, func() {
		relativeSegments(base, outside)
	})
}
