package raster

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

func testFace(t *testing.T, sizePx float64) font.Face {
	t.Helper()
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("failed to parse test font: %v", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: sizePx, DPI: 72})
}

func TestRender_SingleBlock(t *testing.T) {
	r := NewRenderer(testFace(t, 24))

	blocks, err := r.Render("Hello", 576)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	b := blocks[0]
	if b.Width%8 != 0 {
		t.Errorf("block width %d is not byte aligned", b.Width)
	}
	if b.Height != r.LineHeight() {
		t.Errorf("block height = %d, want %d", b.Height, r.LineHeight())
	}
	if len(b.Data) != b.BytesPerRow()*b.Height {
		t.Errorf("data length %d, want %d", len(b.Data), b.BytesPerRow()*b.Height)
	}

	ink := false
	for _, by := range b.Data {
		if by != 0 {
			ink = true
			break
		}
	}
	if !ink {
		t.Error("rendered text produced no ink")
	}
}

func TestRender_EmptyText(t *testing.T) {
	r := NewRenderer(testFace(t, 24))

	blocks, err := r.Render("", 576)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("expected no blocks for empty text, got %d", len(blocks))
	}
}

func TestRender_WrapsAtGlyphBoundaries(t *testing.T) {
	r := NewRenderer(testFace(t, 24))

	blocks, err := r.Render("WWWWWWWWWWWWWWWW", 64)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(blocks) < 2 {
		t.Fatalf("expected the run to wrap, got %d block(s)", len(blocks))
	}
	for i, b := range blocks {
		if b.Width > 64 {
			t.Errorf("block %d width %d exceeds the 64 dot limit", i, b.Width)
		}
		if b.Width%8 != 0 {
			t.Errorf("block %d width %d is not byte aligned", i, b.Width)
		}
	}
}

func TestRender_MissingGlyphUsesPlaceholder(t *testing.T) {
	// The Latin test font has no Arabic coverage; the run must still
	// render via the placeholder rather than fail.
	r := NewRenderer(testFace(t, 24))

	blocks, err := r.Render(string(rune(0xFEE3)), 576)
	if err != nil {
		t.Fatalf("Render failed on unsupported codepoint: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer(testFace(t, 24))

	first, err := r.Render("Receipt 42", 576)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := r.Render("Receipt 42", 576)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("block counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !bytes.Equal(first[i].Data, second[i].Data) {
			t.Errorf("block %d differs between identical renders", i)
		}
	}
}

func TestPackImage_MSBFirst(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 1))
	for x := 0; x < 8; x++ {
		img.SetGray(x, 0, color.Gray{Y: 255})
	}
	img.SetGray(0, 0, color.Gray{Y: 0}) // leftmost dot only

	b := packImage(img, 8, 1, 128)
	if len(b.Data) != 1 {
		t.Fatalf("expected 1 byte, got %d", len(b.Data))
	}
	if b.Data[0] != 0x80 {
		t.Errorf("leftmost dot packed as 0x%02X, want 0x80", b.Data[0])
	}
	if !b.Dot(0, 0) || b.Dot(1, 0) {
		t.Error("Dot accessor disagrees with packing")
	}
}

func TestFromImage_ByteAlignedWidth(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 10)) // all black
	b := FromImage(img, 100)

	if b.Width%8 != 0 {
		t.Errorf("width %d is not a multiple of 8", b.Width)
	}
	if b.Width < 100 {
		t.Errorf("width %d shrank below the target", b.Width)
	}
}
