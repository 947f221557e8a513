package clean

// HTML cleans HTML/XHTML source. <!-- --> block comments carry a flag
// across lines. Deliberately iterates runes (not raw bytes, as the
// original Rust source does) to stay UTF-8 safe.
type HTML struct {
	MinChars int
}

func (h *HTML) Clean(lines []string) []CleanedLine {
	var out []CleanedLine
	inComment := false

	for i, raw := range lines {
		runes := []rune(raw)
		var result []rune

		idx := 0
		for idx < len(runes) {
			if inComment {
				if matchAt(runes, idx, "-->") {
					inComment = false
					idx += 3
					continue
				}
				idx++
				continue
			}
			if matchAt(runes, idx, "<!--") {
				inComment = true
				idx += 4
				continue
			}
			result = append(result, runes[idx])
			idx++
		}

		line := cleanWhitespace(string(result))
		if line == "" {
			continue
		}
		if !isValidLine(line, h.MinChars) {
			continue
		}
		out = append(out, newCleanedLine(line, i+1))
	}
	return out
}

func matchAt(runes []rune, idx int, lit string) bool {
	litRunes := []rune(lit)
	if idx+len(litRunes) > len(runes) {
		return false
	}
	for k, r := range litRunes {
		if runes[idx+k] != r {
			return false
		}
	}
	return true
}
