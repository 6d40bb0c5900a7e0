// Package manifest persists per-project sync state between runs.
//
// The manifest maps each asset name to the hash, identifier, and config
// snapshot of its last successful sync, enabling the decision engine to skip
// uploads for unchanged inputs. It is read permissively (absence means first
// run) and rewritten unconditionally at the end of every run.
package manifest
