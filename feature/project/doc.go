// Package project models assetsync.toml project configuration.
//
// A config declares which files are sync inputs (by glob pattern), whether
// they are packable, how they should be codegen'd, and which further configs
// to include. Configs form a forest via includes; DiscoverConfigs flattens
// that forest into an ordered list for a sync session.
//
// # Discovery Semantics
//
//   - Includes naming a file parse it as a config unconditionally.
//   - Includes naming a directory search it: a directory owning a config is
//     terminal for its branch (nearest config wins), otherwise the search
//     fans out into immediate subdirectories.
//   - Revisiting an already-searched path is a fatal CycleError.
//
// # Usage
//
//	root, err := project.ReadConfigFromFolderOrFile(".")
//	configs, err := project.DiscoverConfigs(root, log)
package project
