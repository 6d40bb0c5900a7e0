package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFilename is the well-known name configs are discovered by.
const ConfigFilename = "assetsync.toml"

// ErrNotFound reports that a folder contains no config file. Discovery
// branches on it to keep searching; everything else treats it as fatal.
var ErrNotFound = errors.New("no " + ConfigFilename + " found")

// ReadConfigFromFile parses the config file at path.
func ReadConfigFromFile(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", abs, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", abs, err)
	}

	config.FilePath = abs
	config.Folder = filepath.Dir(abs)

	// Resolve declared paths against the config's folder so the rest of
	// the pipeline only ever sees absolute paths.
	if config.BasePath == "" {
		config.BasePath = config.Folder
	} else if !filepath.IsAbs(config.BasePath) {
		config.BasePath = filepath.Join(config.Folder, config.BasePath)
	}
	for i, include := range config.Includes {
		if !filepath.IsAbs(include.Path) {
			config.Includes[i].Path = filepath.Join(config.Folder, include.Path)
		}
	}

	return &config, nil
}

// ReadConfigFromFolder parses the config file directly owned by folder.
// Returns ErrNotFound (wrapped) when the folder has no config file.
func ReadConfigFromFolder(folder string) (*Config, error) {
	path := filepath.Join(folder, ConfigFilename)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %q", ErrNotFound, folder)
		}
		return nil, fmt.Errorf("stat config %q: %w", path, err)
	}

	return ReadConfigFromFile(path)
}

// ReadConfigFromFolderOrFile accepts a fuzzy path: either a config file
// itself, or a folder expected to contain one.
func ReadConfigFromFolderOrFile(fuzzyPath string) (*Config, error) {
	meta, err := os.Stat(fuzzyPath)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", fuzzyPath, err)
	}

	if meta.IsDir() {
		return ReadConfigFromFolder(fuzzyPath)
	}
	return ReadConfigFromFile(fuzzyPath)
}
