package escpos

import (
	"bytes"
	"errors"
	"testing"

	"github.com/souqtech/receipt-printer/internal/layout"
	"github.com/souqtech/receipt-printer/internal/raster"
)

func textLine(align layout.Alignment, text string) layout.Line {
	return layout.Line{Segments: []layout.Segment{{Text: text}}, Align: align}
}

func TestEncode_TextDocument(t *testing.T) {
	doc := &layout.Document{
		Lines:     []layout.Line{textLine(layout.AlignLeft, "HELLO")},
		FeedLines: 4,
		Cut:       true,
	}

	got, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	want := []byte{
		0x1B, '@', // initialize
		'H', 'E', 'L', 'L', 'O', 0x0A,
		0x1B, 'd', 4, // feed
		0x1D, 'V', 0, // cut
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode = % X, want % X", got, want)
	}
}

func TestEncode_StickyModeState(t *testing.T) {
	doc := &layout.Document{
		Lines: []layout.Line{
			textLine(layout.AlignCenter, "A"),
			textLine(layout.AlignCenter, "B"), // same mode: no directive
			textLine(layout.AlignLeft, "C"),
		},
	}

	got, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if n := bytes.Count(got, []byte{0x1B, 'a'}); n != 2 {
		t.Errorf("expected 2 alignment directives, got %d in % X", n, got)
	}
}

func TestEncode_StyleDirectives(t *testing.T) {
	doc := &layout.Document{
		Lines: []layout.Line{
			{Segments: []layout.Segment{{Text: "TOTAL"}}, Align: layout.AlignRight, Bold: true},
			textLine(layout.AlignRight, "plain"),
		},
	}

	got, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if !bytes.Contains(got, []byte{0x1B, 'E', 1}) {
		t.Error("bold-on directive missing")
	}
	if !bytes.Contains(got, []byte{0x1B, 'E', 0}) {
		t.Error("bold-off directive missing for the following line")
	}
	if !bytes.Contains(got, []byte{0x1B, 'a', 2}) {
		t.Error("right alignment directive missing")
	}
}

func TestEncode_RasterFraming(t *testing.T) {
	block := &raster.Block{
		Width:  16,
		Height: 2,
		Data:   []byte{0xAA, 0x55, 0xF0, 0x0F},
	}
	doc := &layout.Document{
		Lines: []layout.Line{
			{Segments: []layout.Segment{{Block: block}}, Align: layout.AlignLeft},
		},
	}

	got, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// GS v 0, normal mode, width 2 bytes, height 2 dots, then the bitmap.
	frame := []byte{0x1D, 'v', '0', 0x00, 0x02, 0x00, 0x02, 0x00, 0xAA, 0x55, 0xF0, 0x0F}
	if !bytes.Contains(got, frame) {
		t.Errorf("raster frame missing from % X", got)
	}
}

func TestEncode_Idempotent(t *testing.T) {
	block := &raster.Block{Width: 8, Height: 1, Data: []byte{0x81}}
	doc := &layout.Document{
		Lines: []layout.Line{
			textLine(layout.AlignCenter, "Store"),
			{Segments: []layout.Segment{{Block: block}}, Align: layout.AlignRight, Bold: true},
		},
		FeedLines: 4,
		Cut:       true,
	}

	first, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	second, err := Encode(doc)
	if err != nil {
		t.Fatalf("second Encode failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("encoding the same document twice produced different bytes")
	}
}

func TestEncode_RejectsBytesOutsideCodePage(t *testing.T) {
	doc := &layout.Document{
		Lines: []layout.Line{textLine(layout.AlignLeft, "café")},
	}

	_, err := Encode(doc)
	if err == nil {
		t.Fatal("expected an encoding error for a non code-page byte")
	}

	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("error %T is not an EncodingError", err)
	}
}

func TestEncode_NoTrailingDirectivesWhenDisabled(t *testing.T) {
	doc := &layout.Document{Lines: []layout.Line{textLine(layout.AlignLeft, "x")}}

	got, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if bytes.Contains(got, []byte{0x1D, 'V'}) {
		t.Error("cut emitted for a document without a cut directive")
	}
}
