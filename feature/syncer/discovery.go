package syncer

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"asset-sync/feature/asset"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// OverlappingGlobsError reports that two glob patterns resolved distinct
// files to the same asset name. Discovery never silently picks a winner.
type OverlappingGlobsError struct {
	// Name is the asset name both files resolve to.
	Name asset.Name
	// Path is the file that triggered the collision.
	Path string
	// ExistingPath is the file that was registered first.
	ExistingPath string
}

func (e *OverlappingGlobsError) Error() string {
	return fmt.Sprintf("asset %q is described by more than one glob: %q and %q", e.Name, e.ExistingPath, e.Path)
}

// DiscoverInputs expands every input declaration of every known config
// against the filesystem and registers each match under its derived asset
// name.
//
// Configs are processed in discovery order and input declarations in
// declaration order, but the final input set is indexed by name, so
// filesystem enumeration order never affects the outcome of a run.
func (s *Session) DiscoverInputs() error {
	for _, config := range s.configs {
		for i := range config.Inputs {
			inputConfig := &config.Inputs[i]

			if !doublestar.ValidatePattern(inputConfig.Glob) {
				return fmt.Errorf("config %q: invalid glob pattern %q", config.Name, inputConfig.Glob)
			}

			// The static prefix of the pattern narrows the walk; the
			// full pattern is still matched against every candidate.
			prefix, _ := doublestar.SplitPattern(inputConfig.Glob)
			searchRoot := config.Folder
			if prefix != "." {
				searchRoot = filepath.Join(config.Folder, filepath.FromSlash(prefix))
			}

			s.log.Debug("Searching for inputs",
				zap.String("root", searchRoot),
				zap.String("glob", inputConfig.Glob))

			err := filepath.WalkDir(searchRoot, func(path string, entry fs.DirEntry, err error) error {
				if err != nil {
					// A prefix directory that doesn't exist simply
					// yields no matches.
					if path == searchRoot && errors.Is(err, fs.ErrNotExist) {
						return fs.SkipAll
					}
					return fmt.Errorf("walk %q: %w", path, err)
				}
				if entry.IsDir() {
					return nil
				}

				rel, err := filepath.Rel(config.Folder, path)
				if err != nil {
					return fmt.Errorf("relativize %q: %w", path, err)
				}
				if ok, _ := doublestar.Match(inputConfig.Glob, filepath.ToSlash(rel)); !ok {
					return nil
				}

				name, err := asset.NameFromPaths(config.Folder, path)
				if err != nil {
					return err
				}

				s.log.Debug("Found input", zap.String("name", name.String()))

				if existing, found := s.inputs[name]; found {
					return &OverlappingGlobsError{
						Name:         name,
						Path:         path,
						ExistingPath: existing.Path,
					}
				}

				s.inputs[name] = &Input{
					Path:        path,
					Config:      config,
					InputConfig: inputConfig,
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}
