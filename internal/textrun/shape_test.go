package textrun

import "testing"

func runes(rs ...rune) string { return string(rs) }

func TestShapeArabic_ContextualForms(t *testing.T) {
	// meem-hah-meem-dal: initial, medial, medial, final.
	got := shapeArabic("محمد")
	want := runes(0xFEE3, 0xFEA4, 0xFEE4, 0xFEAA)
	if got != want {
		t.Errorf("shapeArabic(محمد) = %U, want %U", []rune(got), []rune(want))
	}
}

func TestShapeArabic_NonJoiningBreak(t *testing.T) {
	// ain-reh-dad: reh joins backward only, so dad falls to isolated.
	got := shapeArabic("عرض")
	want := runes(0xFECB, 0xFEAE, 0xFEBD)
	if got != want {
		t.Errorf("shapeArabic(عرض) = %U, want %U", []rune(got), []rune(want))
	}
}

func TestShapeArabic_LamAlefLigature(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"isolated ligature", "لا", runes(0xFEFB)},
		{"final ligature after joining letter", "بلا", runes(0xFE91, 0xFEFC)},
		{"ligature does not join forward", "لاب", runes(0xFEFB, 0xFE8F)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shapeArabic(tt.in); got != tt.want {
				t.Errorf("shapeArabic(%q) = %U, want %U", tt.in, []rune(got), []rune(tt.want))
			}
		})
	}
}

func TestShapeArabic_PassThrough(t *testing.T) {
	// Digits and Latin break joining and survive unchanged.
	got := shapeArabic("AB 12")
	if got != "AB 12" {
		t.Errorf("shapeArabic(AB 12) = %q", got)
	}
}

func TestShapeArabic_DropsTashkeel(t *testing.T) {
	// beh + fatha + alef: the mark vanishes, the letters still join.
	got := shapeArabic("بًا")
	want := runes(0xFE91, 0xFE8E)
	if got != want {
		t.Errorf("shapeArabic = %U, want %U", []rune(got), []rune(want))
	}
}

func TestVisualOrder_PureRTL(t *testing.T) {
	shaped := shapeArabic("عرض تفاح")
	got := visualOrder(shaped)
	want := runes(0xFEA1, 0xFE8E, 0xFED4, 0xFE97, ' ', 0xFEBD, 0xFEAE, 0xFECB)
	if got != want {
		t.Errorf("visualOrder = %U, want %U", []rune(got), []rune(want))
	}
}

func TestVisualOrder_EmbeddedDigitsKeepReadingOrder(t *testing.T) {
	// ain-dal-dal then "12": the number must not be mirrored.
	shaped := shapeArabic("عدد 12")
	got := visualOrder(shaped)
	want := runes('1', '2', ' ', 0xFEA9, 0xFEAA, 0xFECB)
	if got != want {
		t.Errorf("visualOrder = %U, want %U", []rune(got), []rune(want))
	}
}

func TestVisualOrder_ReordersRTL(t *testing.T) {
	shaped := shapeArabic("محمد")
	if visualOrder(shaped) == shaped {
		t.Fatal("visualOrder did not reorder an RTL run")
	}
}
