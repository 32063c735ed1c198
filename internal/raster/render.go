package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// placeholder replaces codepoints the font has no glyph for. A run never
// fails on an unsupported codepoint.
const placeholder = '?'

// inkThreshold is the midpoint cut between anti-aliased coverage and a
// printed dot.
const inkThreshold = 128

// Renderer rasterizes visual-order text at one fixed face size.
type Renderer struct {
	face font.Face
}

// NewRenderer wraps a font face. The face size decides the dot height of
// every block the renderer produces.
func NewRenderer(face font.Face) *Renderer {
	return &Renderer{face: face}
}

// LineHeight returns the dot height of blocks produced by this renderer.
func (r *Renderer) LineHeight() int {
	m := r.face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// Render rasterizes text into byte-aligned blocks. Glyphs advance left to
// right in the text's (already resolved) visual order. A run wider than
// maxWidth dots wraps onto multiple blocks, split at glyph boundaries.
func (r *Renderer) Render(text string, maxWidth int) ([]*Block, error) {
	if maxWidth < 8 {
		return nil, fmt.Errorf("raster width %d is below one packed byte", maxWidth)
	}

	runes := r.substituteMissing([]rune(text))
	if len(runes) == 0 {
		return nil, nil
	}

	var blocks []*Block
	for _, line := range r.wrap(runes, maxWidth) {
		blocks = append(blocks, r.renderLine(line, maxWidth))
	}
	return blocks, nil
}

// substituteMissing swaps codepoints without a glyph for the placeholder.
func (r *Renderer) substituteMissing(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, rn := range runes {
		if _, ok := r.face.GlyphAdvance(rn); !ok {
			rn = placeholder
		}
		out[i] = rn
	}
	return out
}

// wrap splits the runes greedily into sub-lines whose advance fits in
// maxWidth dots. A single glyph wider than maxWidth still gets its own
// line; the draw clips rather than splitting the glyph.
func (r *Renderer) wrap(runes []rune, maxWidth int) [][]rune {
	limit := fixed.I(maxWidth)

	var lines [][]rune
	var line []rune
	var advance fixed.Int26_6

	for _, rn := range runes {
		a, _ := r.face.GlyphAdvance(rn)
		if len(line) > 0 && advance+a > limit {
			lines = append(lines, line)
			line = nil
			advance = 0
		}
		line = append(line, rn)
		advance += a
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

func (r *Renderer) renderLine(line []rune, maxWidth int) *Block {
	var advance fixed.Int26_6
	for _, rn := range line {
		a, _ := r.face.GlyphAdvance(rn)
		advance += a
	}

	width := roundUpTo8(advance.Ceil())
	if width == 0 {
		width = 8
	}
	if width > maxWidth {
		width = roundUpTo8(maxWidth) // glyph wider than the paper: clip
	}
	height := r.LineHeight()

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)
	dc.SetFontFace(r.face)
	dc.DrawString(string(line), 0, float64(r.face.Metrics().Ascent.Ceil()))

	return packImage(dc.Image(), width, height, inkThreshold)
}

// packImage thresholds an image into a bit-packed block, 8 horizontal
// dots per byte, most significant bit first, row-major.
func packImage(img image.Image, width, height int, threshold uint8) *Block {
	bytesPerRow := width / 8
	data := make([]byte, bytesPerRow*height)

	bounds := img.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x >= bounds.Dx() || y >= bounds.Dy() {
				continue
			}
			cr, cg, cb, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			gray := uint8((cr + cg + cb) / 3 >> 8)
			if gray < threshold {
				data[y*bytesPerRow+x/8] |= 1 << (7 - uint(x%8))
			}
		}
	}

	return &Block{Width: width, Height: height, Data: data}
}
