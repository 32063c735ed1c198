// Package escpos serializes a receipt document into the ESC/POS command
// stream understood by the target printer family.
package escpos

import (
	"bytes"
	"fmt"

	"github.com/souqtech/receipt-printer/internal/layout"
	"github.com/souqtech/receipt-printer/internal/raster"
)

// Control bytes.
const (
	esc byte = 0x1B
	gs  byte = 0x1D
	lf  byte = 0x0A
)

// Printable range of the fixed single-byte code page. Anything outside it
// in a native segment must have been converted to a raster segment
// upstream.
const (
	minPrintable = 0x20
	maxPrintable = 0x7E
)

// EncodingError reports a native segment byte outside the code page. It
// indicates a layout invariant violation and is fatal.
type EncodingError struct {
	Byte    byte
	Segment string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("byte 0x%02X outside printer code page in segment %q", e.Byte, e.Segment)
}

// printerState tracks the sticky printer modes during encoding. Mode
// directives are emitted only when a line needs a different mode, keeping
// the stream minimal. The state is a value threaded through the encode
// loop, never shared.
type printerState struct {
	align        layout.Alignment
	bold         bool
	doubleHeight bool
}

// Encode serializes a document into a finite ESC/POS byte stream:
// initialization, per-line mode directives, native text and raster
// blocks, then the trailing feed and cut. Encoding the same document
// twice yields identical bytes.
func Encode(doc *layout.Document) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write([]byte{esc, '@'}) // initialize: left aligned, styles off

	state := printerState{align: layout.AlignLeft}

	for _, line := range doc.Lines {
		state = applyMode(buf, state, line)

		for _, seg := range line.Segments {
			if seg.IsRaster() {
				writeRaster(buf, seg.Block)
				continue
			}
			if err := writeNative(buf, seg.Text); err != nil {
				return nil, err
			}
		}

		buf.WriteByte(lf)
	}

	if doc.FeedLines > 0 {
		buf.Write([]byte{esc, 'd', byte(doc.FeedLines)})
	}
	if doc.Cut {
		buf.Write([]byte{gs, 'V', 0x00})
	}

	return buf.Bytes(), nil
}

func applyMode(buf *bytes.Buffer, state printerState, line layout.Line) printerState {
	if line.Align != state.align {
		buf.Write([]byte{esc, 'a', alignByte(line.Align)})
		state.align = line.Align
	}
	if line.Bold != state.bold {
		buf.Write([]byte{esc, 'E', boolByte(line.Bold)})
		state.bold = line.Bold
	}
	if line.DoubleHeight != state.doubleHeight {
		// GS ! selects character size; 0x01 doubles the height.
		buf.Write([]byte{gs, '!', boolByte(line.DoubleHeight)})
		state.doubleHeight = line.DoubleHeight
	}
	return state
}

// writeNative emits code-page text, rejecting any byte the printer's
// built-in font cannot represent.
func writeNative(buf *bytes.Buffer, text string) error {
	for i := 0; i < len(text); i++ {
		if text[i] < minPrintable || text[i] > maxPrintable {
			return &EncodingError{Byte: text[i], Segment: text}
		}
	}
	buf.WriteString(text)
	return nil
}

// writeRaster frames a block as GS v 0: marker, packed width in bytes and
// height in dots as little-endian 16-bit fields, then the bitmap.
func writeRaster(buf *bytes.Buffer, block *raster.Block) {
	widthBytes := block.BytesPerRow()
	buf.Write([]byte{
		gs, 'v', '0', 0x00,
		byte(widthBytes & 0xFF), byte(widthBytes >> 8),
		byte(block.Height & 0xFF), byte(block.Height >> 8),
	})
	buf.Write(block.Data)
}

func alignByte(a layout.Alignment) byte {
	switch a {
	case layout.AlignCenter:
		return 1
	case layout.AlignRight:
		return 2
	default:
		return 0
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
