package intscan

import "github.com/mrjoshuak/go-intscan/internal/vec"

// CompileShuffle builds the byte gather map for an analyzed pattern.
//
// Run i of the consumable runs is written to the block starting at lane
// Width*i, right-aligned, so each block holds one number with leading
// zeros. Every lane not fed by a digit carries vec.ZeroLane.
//
// Example for runs at lanes 0 and 3..4 converted at width 2:
//
//	window:  [1 _ _ 4 2 ...]
//	shuffle: [Z 0 3 4 Z Z ...]  ->  [0 1 4 2 0 0 ...]
func CompileShuffle(a *Analysis) [WindowSize]byte {
	var shuffle [WindowSize]byte
	for i := range shuffle {
		shuffle[i] = vec.ZeroLane
	}

	width := a.Consumable.Width
	for i, r := range a.Runs()[:a.Consumable.Count] {
		dst := width*i + width - r.Size
		for j := 0; j < r.Size; j++ {
			// Lane indices are below 16, so they always fit a byte.
			shuffle[dst+j] = byte(r.Start + j)
		}
	}
	return shuffle
}
