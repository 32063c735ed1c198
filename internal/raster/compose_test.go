package raster

import "testing"

func inkBlock(width, height int) *Block {
	b := NewBlank(width, height)
	for i := range b.Data {
		b.Data[i] = 0xFF
	}
	return b
}

func TestNewBlank(t *testing.T) {
	b := NewBlank(100, 3)
	if b.Width != 104 {
		t.Errorf("width = %d, want 104", b.Width)
	}
	if len(b.Data) != 13*3 {
		t.Errorf("data length = %d, want %d", len(b.Data), 13*3)
	}
	for i, by := range b.Data {
		if by != 0 {
			t.Fatalf("byte %d is not white", i)
		}
	}
}

func TestPadBlock_PlacesSourceAtOffset(t *testing.T) {
	src := inkBlock(8, 1)

	left := PadBlock(src, 24, 0)
	if left.Width != 24 {
		t.Fatalf("width = %d, want 24", left.Width)
	}
	if !left.Dot(0, 0) || !left.Dot(7, 0) || left.Dot(8, 0) {
		t.Error("left-aligned pad misplaced the source ink")
	}

	right := PadBlock(src, 24, 16)
	if right.Dot(15, 0) || !right.Dot(16, 0) || !right.Dot(23, 0) {
		t.Error("right-aligned pad misplaced the source ink")
	}
}

func TestPadBlock_WideEnoughPassesThrough(t *testing.T) {
	src := inkBlock(32, 1)
	if got := PadBlock(src, 24, 0); got != src {
		t.Error("a block at least the target width must pass through")
	}
}

func TestBlit_ClipsOutOfBounds(t *testing.T) {
	dst := NewBlank(16, 1)
	src := inkBlock(8, 1)

	dst.Blit(src, -4) // left half clipped
	if dst.Dot(4, 0) || !dst.Dot(0, 0) || !dst.Dot(3, 0) {
		t.Error("negative offset blit clipped incorrectly")
	}

	dst = NewBlank(16, 1)
	dst.Blit(src, 12) // right half clipped
	if !dst.Dot(12, 0) || !dst.Dot(15, 0) || dst.Dot(11, 0) {
		t.Error("overflowing blit clipped incorrectly")
	}
}

func TestBlit_TallerSourceClipsRows(t *testing.T) {
	dst := NewBlank(8, 2)
	src := inkBlock(8, 4)

	dst.Blit(src, 0)
	if !dst.Dot(0, 0) || !dst.Dot(0, 1) {
		t.Error("rows inside the destination were not copied")
	}
	if len(dst.Data) != 2 {
		t.Errorf("destination grew: %d bytes", len(dst.Data))
	}
}
