// Package textrun segments mixed-direction text into script-homogeneous
// runs and shapes Arabic runs into visual-order presentation forms.
//
// A run is the unit of rendering: Arabic-script runs are rasterized
// because thermal printer character sets cannot render shaped ligatures;
// everything else prints as native code-page text. Direction is resolved
// exactly once here and never re-derived downstream.
package textrun

import (
	"strings"
	"unicode"
)

// Mode is how a run reaches the printer.
type Mode int

const (
	// ModeNative prints as single-byte code-page text.
	ModeNative Mode = iota
	// ModeRaster prints as a bitmap graphics block.
	ModeRaster
)

// Run is a maximal span of one text field sharing a script classification
// and a resolved direction.
type Run struct {
	// Source holds the logical-order codepoints of the span.
	Source string
	// Arabic marks an Arabic-script span (rendered as raster).
	Arabic bool
	// Visual holds the shaped, visual-order codepoints. For non-Arabic
	// runs it is identical to Source.
	Visual string
}

// Mode returns the render mode implied by the run's script.
func (r Run) Mode() Mode {
	if r.Arabic {
		return ModeRaster
	}
	return ModeNative
}

// Split segments a text field into runs. Adjacent same-script codepoints
// merge into one run; digit and Latin substrings embedded inside an
// Arabic span stay part of that span so shaping context and reading order
// survive (a price token inside an Arabic sentence does not split the
// run). Empty or whitespace-only input yields no runs.
func Split(s string) []Run {
	var runs []Run
	var arabicBuf, pending, nativeBuf []rune
	inArabic := false

	flushNative := func() {
		if text := string(nativeBuf); strings.TrimSpace(text) != "" {
			runs = append(runs, Run{Source: text, Visual: text})
		}
		nativeBuf = nativeBuf[:0]
	}
	flushArabic := func() {
		if len(arabicBuf) == 0 {
			return
		}
		src := string(arabicBuf)
		runs = append(runs, Run{
			Source: src,
			Arabic: true,
			Visual: visualOrder(shapeArabic(src)),
		})
		arabicBuf = arabicBuf[:0]
	}

	for _, r := range s {
		if isArabicRune(r) || (inArabic && unicode.Is(unicode.Mn, r)) {
			if !inArabic {
				flushNative()
				inArabic = true
			}
			// Fold any embedded LTR span back into the Arabic run.
			arabicBuf = append(arabicBuf, pending...)
			pending = pending[:0]
			arabicBuf = append(arabicBuf, r)
			continue
		}

		if inArabic {
			pending = append(pending, r)
		} else {
			nativeBuf = append(nativeBuf, r)
		}
	}

	if inArabic {
		flushArabic()
		// Whatever trailed the last Arabic codepoint is its own run.
		nativeBuf = pending
	}
	flushNative()

	return runs
}

// HasArabic reports whether the field contains any Arabic-script
// codepoint, i.e. whether Split would produce at least one raster run.
func HasArabic(s string) bool {
	for _, r := range s {
		if isArabicRune(r) {
			return true
		}
	}
	return false
}

func isArabicRune(r rune) bool {
	switch {
	case unicode.Is(unicode.Arabic, r):
		return true
	case r >= 0xFB50 && r <= 0xFDFF: // presentation forms A
		return true
	case r >= 0xFE70 && r <= 0xFEFF: // presentation forms B
		return true
	}
	return false
}
