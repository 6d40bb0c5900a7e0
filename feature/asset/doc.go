// Package asset defines the small shared vocabulary of the sync pipeline:
// canonical asset names and atlas slices.
//
// It sits below every other feature package so that the project model, the
// manifest, and the syncer can exchange values without import cycles.
package asset
