// Package codegen emits the Lua binding files that let downstream code
// reference synced assets by identifier instead of by path.
//
// Grouped mode reconstructs a nested namespace from the inputs' relative
// paths and writes one consolidated table per configured output file.
// Individual mode writes one file next to each input. Both modes render
// deterministically: keys sort alphabetically and inputs without a resolved
// identifier are omitted.
package codegen
