package layout

import "strings"

// Paper geometry for an 80mm printer at 203 DPI: 576 printable dots,
// 48 character columns at the normal font size.
const (
	PaperDots    = 576
	CharCols     = 48
	CharDotWidth = PaperDots / CharCols
)

// Item table column widths in characters. Name takes the majority of the
// row; the three numeric columns are right-aligned.
const (
	NameCols  = 28
	QtyCols   = 6
	PriceCols = 7
	TotalCols = 7
)

// Column widths in dots. Rows carrying raster cells use these to keep
// the numeric columns at the same dot offsets as pure-text rows.
const (
	NameDots  = NameCols * CharDotWidth
	QtyDots   = QtyCols * CharDotWidth
	PriceDots = PriceCols * CharDotWidth
	TotalDots = TotalCols * CharDotWidth
)

const ellipsis = "..."

// padLeft right-aligns s in a column of width w, clipping on overflow.
func padLeft(s string, w int) string {
	if len(s) > w {
		s = s[:w]
	}
	return strings.Repeat(" ", w-len(s)) + s
}

// padRight left-aligns s in a column of width w, clipping on overflow.
func padRight(s string, w int) string {
	if len(s) > w {
		s = s[:w]
	}
	return s + strings.Repeat(" ", w-len(s))
}

// wrapWords wraps s at word boundaries into at most maxLines lines of
// width w. The last line is ellipsized if text had to be dropped.
func wrapWords(s string, w, maxLines int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := ""
	for _, word := range words {
		if len(word) > w {
			word = word[:w] // single word longer than the column: hard clip
		}
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if len(candidate) <= w {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	lines = append(lines, line)

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		if len(last)+len(ellipsis) > w {
			last = last[:w-len(ellipsis)]
		}
		lines[maxLines-1] = last + ellipsis
	}
	return lines
}
