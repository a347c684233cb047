// ABOUTME: Tile layout computation
// ABOUTME: Splits a total pixel width into fixed-capacity tile spans
package render

import "math"

// TileSpec places one tile on the global pixel axis. The tile's drawing
// surface covers [Start, Start+Width) plus Overlap extra columns shared with
// the right neighbor so strokes crossing the seam are not clipped. The last
// tile never carries an overlap.
type TileSpec struct {
	Index   int
	Start   int
	Width   int
	Overlap int
}

// Layout covers [0, totalWidth) with ceil(totalWidth / maxTileWidth) tiles.
// Every tile but the last has Width == maxTileWidth; the last takes the
// remainder. maxTileWidth must already be validated as a positive even
// integer by the caller.
func Layout(totalWidth, maxTileWidth int, pixelRatio float64) []TileSpec {
	if totalWidth <= 0 || maxTileWidth <= 0 {
		return nil
	}

	count := (totalWidth + maxTileWidth - 1) / maxTileWidth
	overlap := overlapFor(pixelRatio)

	specs := make([]TileSpec, count)
	for i := 0; i < count; i++ {
		start := i * maxTileWidth
		width := maxTileWidth
		if start+width > totalWidth {
			width = totalWidth - start
		}
		ov := overlap
		if i == count-1 {
			ov = 0
		}
		specs[i] = TileSpec{Index: i, Start: start, Width: width, Overlap: ov}
	}
	return specs
}

// overlapFor returns the seam overlap in device pixels: 2 * pixelRatio
// rounded up to the next even integer.
func overlapFor(pixelRatio float64) int {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	ov := int(math.Ceil(2 * pixelRatio))
	if ov%2 != 0 {
		ov++
	}
	return ov
}
