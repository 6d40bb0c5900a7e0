// Package syncer implements the incremental synchronization engine.
//
// A Session drives one run end to end: it discovers the config forest,
// expands glob patterns into a flat uniquely-named input index, decides per
// input whether a re-upload is required by diffing against the previous
// manifest, rebuilds and persists the manifest, and finally hands the
// resolved inputs to codegen.
//
// # Decision Procedure
//
// For each input, the engine compares the current content hash and config
// against the entry recorded by the previous run. The previous identifier is
// reused only when an entry exists, its hash matches, an identifier is
// present, and the config snapshot is structurally equal; every other case
// uploads through the injected UploadStrategy. Each input causes at most one
// upload call per run.
//
// # Strategies
//
// RemoteStoreStrategy transmits assets to an S3-compatible store with
// content-addressed keys. ContentFolderStrategy is a placeholder for local
// content-folder mirroring.
package syncer
