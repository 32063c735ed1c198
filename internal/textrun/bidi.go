package textrun

// visualOrder reorders a shaped right-to-left run into left-to-right
// storage order. The run is segmented into RTL and embedded LTR spans
// (Latin letters, digits and numeric punctuation keep reading order);
// span order is reversed, and runes inside RTL spans are reversed, so the
// result reads correctly when drawn left to right.
//
// Spaces are directionally neutral and bind to the span being built, so
// inter-word spacing survives reordering.
func visualOrder(shaped string) string {
	type span struct {
		ltr   bool
		runes []rune
	}

	var spans []span
	var cur []rune
	curLTR := false
	started := false

	for _, r := range shaped {
		neutral := r == ' ' || r == '\u00a0'

		ltr := curLTR
		if !neutral {
			ltr = isLTRRune(r)
		}

		if !started {
			started = true
			curLTR = ltr
			cur = append(cur, r)
			continue
		}

		if neutral || ltr == curLTR {
			cur = append(cur, r)
			continue
		}

		spans = append(spans, span{curLTR, cur})
		cur = []rune{r}
		curLTR = ltr
	}
	if len(cur) > 0 {
		spans = append(spans, span{curLTR, cur})
	}

	out := make([]rune, 0, len([]rune(shaped)))
	for i := len(spans) - 1; i >= 0; i-- {
		sp := spans[i]
		if sp.ltr {
			out = append(out, sp.runes...)
			continue
		}
		for j := len(sp.runes) - 1; j >= 0; j-- {
			out = append(out, sp.runes[j])
		}
	}

	return string(out)
}

// isLTRRune reports whether a codepoint keeps left-to-right reading order
// inside an RTL run: Latin alphanumerics, European and Arabic-Indic
// digits, and the punctuation found in prices, dates and phone numbers.
func isLTRRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 0x0660 && r <= 0x0669: // Arabic-Indic digits
		return true
	case r >= 0x06F0 && r <= 0x06F9: // extended Arabic-Indic digits
		return true
	}
	switch r {
	case ':', '.', ',', '-', '–', '—', '/':
		return true
	}
	return false
}
