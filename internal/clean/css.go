package clean

import "strings"

// CSS cleans CSS/SCSS/Less source. Block comments only (no line
// comments in CSS); preprocessor-style at-rules are always filtered.
type CSS struct {
	MinChars int
}

func (c *CSS) Clean(lines []string) []CleanedLine {
	var out []CleanedLine
	inBlockComment := false

	for i, raw := range lines {
		var b strings.Builder
		runes := []rune(raw)
		for idx := 0; idx < len(runes); idx++ {
			if inBlockComment {
				if idx+1 < len(runes) && runes[idx] == '*' && runes[idx+1] == '/' {
					inBlockComment = false
					idx++
				}
				continue
			}
			if idx+1 < len(runes) && runes[idx] == '/' && runes[idx+1] == '*' {
				inBlockComment = true
				idx++
				continue
			}
			b.WriteRune(runes[idx])
		}

		line := cleanWhitespace(b.String())
		if line == "" {
			continue
		}
		if isCSSDirective(line) {
			continue
		}
		if !isValidLine(line, c.MinChars) {
			continue
		}
		out = append(out, newCleanedLine(line, i+1))
	}
	return out
}

func isCSSDirective(line string) bool {
	for _, prefix := range []string{"@import", "@charset", "@use", "@forward"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
