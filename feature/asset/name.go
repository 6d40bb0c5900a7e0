package asset

import (
	"fmt"
	"path/filepath"
)

// Name is the canonical identifier of an asset within a sync session.
//
// It is the path of the asset file relative to the folder of the config that
// owns it, using forward slashes on every platform. Names are required to be
// unique across the whole discovered input set; enforcing that is the
// syncer's job.
type Name string

// NameFromPaths derives the canonical name for a file owned by the config
// living in configFolder.
func NameFromPaths(configFolder, path string) (Name, error) {
	rel, err := filepath.Rel(configFolder, path)
	if err != nil {
		return "", fmt.Errorf("cannot derive asset name for %q relative to %q: %w", path, configFolder, err)
	}
	return Name(filepath.ToSlash(rel)), nil
}

func (n Name) String() string {
	return string(n)
}
