package textrun

// shapeArabic converts a logical-order string into contextual Arabic
// presentation forms. Each letter selects its isolated, initial, medial or
// final glyph from its neighbors; lam followed by an alef variant composes
// into the mandatory lam-alef ligature. Non-Arabic codepoints (digits,
// Latin spans, punctuation) pass through untouched and break joining.
func shapeArabic(src string) string {
	runes := make([]rune, 0, len(src))
	for _, r := range src {
		if !isTashkeel(r) {
			runes = append(runes, r)
		}
	}

	out := make([]rune, 0, len(runes))
	prevJoins := false // previous letter connects to the current one

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == tatweel {
			out = append(out, r)
			prevJoins = true
			continue
		}

		forms, ok := arabicForms[r]
		if !ok {
			out = append(out, r)
			prevJoins = false
			continue
		}

		if r == lam && i+1 < len(runes) {
			if lig, found := lamAlefLigatures[runes[i+1]]; found {
				if prevJoins {
					out = append(out, lig[1])
				} else {
					out = append(out, lig[0])
				}
				// The ligature absorbs the alef and never joins forward.
				prevJoins = false
				i++
				continue
			}
		}

		nextJoins := false
		if i+1 < len(runes) {
			next := runes[i+1]
			if next == tatweel {
				nextJoins = true
			} else if nf, found := arabicForms[next]; found && nf[formFinal] != 0 {
				nextJoins = true
			}
		}

		out = append(out, selectForm(forms, prevJoins, nextJoins))
		prevJoins = forms[formInitial] != 0 // only dual-joining letters connect forward
	}

	return string(out)
}

func selectForm(forms glyphForms, prevJoins, nextJoins bool) rune {
	switch {
	case prevJoins && nextJoins && forms[formMedial] != 0:
		return forms[formMedial]
	case prevJoins && forms[formFinal] != 0:
		return forms[formFinal]
	case nextJoins && forms[formInitial] != 0:
		return forms[formInitial]
	default:
		return forms[formIsolated]
	}
}
