package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"asset-sync/feature/asset"
	"asset-sync/feature/project"

	"github.com/pelletier/go-toml/v2"
)

// Filename is the well-known name of the manifest file within the root
// config's folder.
const Filename = "assetsync-manifest.toml"

// InputManifest records the last known state of a single input.
type InputManifest struct {
	// Hash is the hex content hash of the input the last time its content
	// was read. Empty means the content was never hashed.
	Hash string `toml:"hash,omitempty"`

	// ID is the identifier assigned by the upload strategy the last time
	// the input was uploaded. Empty means it was never uploaded.
	ID string `toml:"id,omitempty"`

	// Slice is the atlas sub-region the input was packed into, if any.
	Slice *asset.Slice `toml:"slice,omitempty"`

	// Config is a snapshot of the input's configuration at the time of
	// the run. Comparing it against the current configuration detects
	// drift independent of content drift.
	Config project.InputConfig `toml:"config"`
}

// Manifest is the persisted record of a previous sync run.
//
// Two generations exist during a run: the original manifest loaded at session
// start, which is only ever read, and a new manifest built from the final
// input set, which replaces it on disk.
type Manifest struct {
	Inputs map[asset.Name]InputManifest `toml:"inputs"`
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{Inputs: map[asset.Name]InputManifest{}}
}

// ReadFromFolder loads the manifest stored in folder. A missing file is not
// an error: the first run of a project starts from an empty manifest.
func ReadFromFolder(folder string) (*Manifest, error) {
	path := filepath.Join(folder, Filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("read manifest %q: %w", path, err)
	}

	manifest := New()
	if err := toml.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %q: %w", path, err)
	}

	return manifest, nil
}

// WriteToFolder persists the manifest into folder, replacing any previous
// one. Map keys serialize in sorted order, so output is byte-stable for a
// given state.
func (m *Manifest) WriteToFolder(folder string) error {
	path := filepath.Join(folder, Filename)

	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest %q: %w", path, err)
	}

	return nil
}
