// Package raster renders shaped text runs and images into the monochrome
// dot matrices a thermal printer prints as graphics.
package raster

// Block is a monochrome bitmap in printer dot space. Width is always a
// multiple of 8 so each row packs into whole bytes, which the raster
// graphics command requires. Data is row-major with the leftmost dot in
// the most significant bit; a set bit is ink.
type Block struct {
	Width  int
	Height int
	Data   []byte
}

// BytesPerRow returns the packed row stride.
func (b *Block) BytesPerRow() int {
	return b.Width / 8
}

// Dot reports whether the dot at (x, y) is ink.
func (b *Block) Dot(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	idx := y*b.BytesPerRow() + x/8
	return b.Data[idx]&(1<<(7-uint(x%8))) != 0
}

// roundUpTo8 rounds a dot width up to the next byte boundary.
func roundUpTo8(w int) int {
	return (w + 7) / 8 * 8
}
