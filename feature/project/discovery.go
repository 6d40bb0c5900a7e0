package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// CycleError reports that the include graph revisited a path it had already
// searched. Without this guard a config that (indirectly) includes a
// directory containing itself would loop forever.
type CycleError struct {
	// Path is the canonical path that was reached a second time.
	Path string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("config includes form a cycle through %q", e.Path)
}

// searchKind tags a pending search path as a config file or a directory to
// search.
type searchKind int

const (
	searchFile searchKind = iota
	searchDirectory
)

type searchPath struct {
	kind searchKind
	path string
}

// DiscoverConfigs returns the complete forest of configs reachable from root
// by transitively following includes, root first, in breadth-first append
// order.
//
// An include path names either a config file, which is parsed
// unconditionally, or a directory. A directory that directly owns a config is
// terminal for its branch: the found config's own includes are enqueued, but
// the search does not descend further, so configs owned by a found config are
// never re-discovered by a parent's search. A directory without a config fans
// the search out into its immediate subdirectories.
func DiscoverConfigs(root *Config, log *zap.Logger) ([]*Config, error) {
	configs := []*Config{root}

	visited := map[string]struct{}{}
	if canonical, err := canonicalPath(root.Folder); err == nil {
		visited[canonical] = struct{}{}
	}

	var queue []searchPath
	enqueueIncludes := func(config *Config) error {
		for _, include := range config.Includes {
			meta, err := os.Stat(include.Path)
			if err != nil {
				return fmt.Errorf("stat include %q of config %q: %w", include.Path, config.Name, err)
			}
			kind := searchFile
			if meta.IsDir() {
				kind = searchDirectory
			}
			queue = append(queue, searchPath{kind: kind, path: include.Path})
		}
		return nil
	}

	if err := enqueueIncludes(root); err != nil {
		return nil, err
	}

	for len(queue) > 0 {
		search := queue[0]
		queue = queue[1:]

		canonical, err := canonicalPath(search.path)
		if err != nil {
			return nil, fmt.Errorf("resolve include path %q: %w", search.path, err)
		}
		if _, seen := visited[canonical]; seen {
			return nil, &CycleError{Path: canonical}
		}
		visited[canonical] = struct{}{}

		switch search.kind {
		case searchFile:
			// A file explicitly named by an include must be a config.
			config, err := ReadConfigFromFile(search.path)
			if err != nil {
				return nil, err
			}

			log.Debug("Discovered config", zap.String("name", config.Name), zap.String("path", config.FilePath))

			if err := enqueueIncludes(config); err != nil {
				return nil, err
			}
			configs = append(configs, config)

		case searchDirectory:
			config, err := ReadConfigFromFolder(search.path)
			switch {
			case err == nil:
				// The directory owns a config; this branch is done.
				log.Debug("Discovered config", zap.String("name", config.Name), zap.String("path", config.FilePath))

				if err := enqueueIncludes(config); err != nil {
					return nil, err
				}
				configs = append(configs, config)

			case errors.Is(err, ErrNotFound):
				// No config here; keep searching one level down.
				// Plain files at this level never matter, only
				// subdirectories can own configs.
				entries, err := os.ReadDir(search.path)
				if err != nil {
					return nil, fmt.Errorf("read include directory %q: %w", search.path, err)
				}

				for _, entry := range entries {
					entryPath := filepath.Join(search.path, entry.Name())

					// ReadDir reports the type of a symlink itself,
					// not of its target.
					meta, err := os.Stat(entryPath)
					if err != nil {
						return nil, fmt.Errorf("stat %q: %w", entryPath, err)
					}
					if meta.IsDir() {
						queue = append(queue, searchPath{kind: searchDirectory, path: entryPath})
					}
				}

			default:
				return nil, err
			}
		}
	}

	return configs, nil
}

// canonicalPath resolves symlinks so cycle detection keys on the real
// location of a directory.
func canonicalPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}
