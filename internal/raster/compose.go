package raster

// NewBlank returns an all-white block of the given dot size. Width rounds
// up to the next byte boundary.
func NewBlank(width, height int) *Block {
	width = roundUpTo8(width)
	return &Block{
		Width:  width,
		Height: height,
		Data:   make([]byte, width/8*height),
	}
}

// Blit copies the ink of src into b with src's left edge at x dots. Dots
// falling outside b are dropped.
func (b *Block) Blit(src *Block, x int) {
	stride := b.BytesPerRow()
	for y := 0; y < src.Height && y < b.Height; y++ {
		for sx := 0; sx < src.Width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= b.Width {
				continue
			}
			if src.Dot(sx, y) {
				b.Data[y*stride+dx/8] |= 1 << (7 - uint(dx%8))
			}
		}
	}
}

// PadBlock widens a block to width dots, placing the source at x and
// leaving the rest white. A block already at least width wide passes
// through unchanged.
func PadBlock(b *Block, width, x int) *Block {
	width = roundUpTo8(width)
	if b.Width >= width {
		return b
	}
	out := NewBlank(width, b.Height)
	out.Blit(b, x)
	return out
}
