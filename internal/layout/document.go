// Package layout turns a validated receipt payload into an ordered
// document of printable lines.
package layout

import "github.com/souqtech/receipt-printer/internal/raster"

// Alignment of a line on the paper.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Segment is one piece of a line: either native code-page text or an
// embedded raster block, never both. Segments are stored in left-to-right
// print order; direction was already resolved upstream.
type Segment struct {
	Text  string
	Block *raster.Block
}

// IsRaster reports whether the segment carries a bitmap.
func (s Segment) IsRaster() bool {
	return s.Block != nil
}

// Line is an ordered sequence of segments with one alignment and style.
type Line struct {
	Segments     []Segment
	Align        Alignment
	Bold         bool
	DoubleHeight bool
}

// Document is the complete receipt: lines in final print order plus the
// trailing feed and cut directives. Built fresh per print request,
// consumed once by the encoder.
type Document struct {
	Lines     []Line
	FeedLines int
	Cut       bool
}

func textLine(align Alignment, text string) Line {
	return Line{Segments: []Segment{{Text: text}}, Align: align}
}

func blankLine() Line {
	return Line{Align: AlignLeft}
}
