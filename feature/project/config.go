package project

import "fmt"

// CodegenKind selects which code generation template, if any, applies to an
// input.
type CodegenKind string

const (
	// KindNone disables codegen for the input.
	KindNone CodegenKind = "none"
	// KindAssetURL generates a single URI string referencing the asset.
	KindAssetURL CodegenKind = "asset-url"
	// KindURLAndSlice generates a record with the URI plus atlas slice
	// information when present.
	KindURLAndSlice CodegenKind = "url-and-slice"
)

// IsNone reports whether no codegen applies. The zero value counts as none so
// that configs omitting the field behave like an explicit "none".
func (k CodegenKind) IsNone() bool {
	return k == "" || k == KindNone
}

// UnmarshalText validates the kind while decoding config files.
func (k *CodegenKind) UnmarshalText(text []byte) error {
	switch v := CodegenKind(text); v {
	case "", KindNone, KindAssetURL, KindURLAndSlice:
		*k = v
		return nil
	default:
		return fmt.Errorf("unknown codegen kind %q (expected none, asset-url or url-and-slice)", text)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k CodegenKind) MarshalText() ([]byte, error) {
	return []byte(k), nil
}

// InputConfig declares one set of inputs within a config: a glob pattern and
// how its matches should be treated.
//
// InputConfig is a value type compared by equality to detect configuration
// drift between runs, so it must stay comparable.
type InputConfig struct {
	// Glob is the pattern matched against paths relative to the config's
	// folder. Supports ** for recursive matching.
	Glob string `toml:"glob"`
	// Packable marks the inputs as eligible for atlas packing.
	Packable bool `toml:"packable,omitempty"`
	// Codegen selects the generation template for matched inputs.
	Codegen CodegenKind `toml:"codegen,omitempty"`
	// CodegenPath, when set, groups all matches of this input declaration
	// into one generated file at this path relative to the config's folder.
	// When empty, one generated file is written next to each input.
	CodegenPath string `toml:"codegen-path,omitempty"`
}

// Include references another config by filesystem path, either a config file
// directly or a directory to search.
type Include struct {
	// Path is resolved relative to the folder of the declaring config.
	Path string `toml:"path"`
}

// Config is the parsed representation of one assetsync.toml file.
//
// Configs are immutable once loaded. The root config of a session is
// distinguished only by being the traversal origin.
type Config struct {
	// Name identifies the config in logs.
	Name string `toml:"name"`
	// BasePath is the root that generated code paths are made relative to.
	// Defaults to the config's folder.
	BasePath string `toml:"base-path,omitempty"`
	// Includes reference further configs to merge into the session.
	Includes []Include `toml:"includes,omitempty"`
	// Inputs declare the files this config owns.
	Inputs []InputConfig `toml:"inputs,omitempty"`

	// FilePath is the absolute path of the file this config was loaded
	// from. Derived at load time, never serialized.
	FilePath string `toml:"-"`
	// Folder is the absolute path of the directory containing the config
	// file. Derived at load time, never serialized.
	Folder string `toml:"-"`
}
