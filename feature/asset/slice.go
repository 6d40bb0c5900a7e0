package asset

// Slice is a rectangular sub-region of a packed atlas image associated with
// one logical asset. Slices are only produced by atlas packing; the rest of
// the pipeline carries them through opaquely.
type Slice struct {
	// Min is the top-left corner of the region, in pixels.
	Min [2]int `toml:"min"`
	// Size is the width and height of the region, in pixels.
	Size [2]int `toml:"size"`
}
