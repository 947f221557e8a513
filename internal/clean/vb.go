package clean

import "strings"

// VB cleans Visual Basic source. No block comments; line comments
// start at the first ' with no quote-awareness; directives are
// `Imports` lines and `#`-prefixed preprocessor lines.
type VB struct {
	MinChars int
}

func (v *VB) Clean(lines []string) []CleanedLine {
	var out []CleanedLine
	for i, raw := range lines {
		line := removeVBComment(raw)
		line = cleanWhitespace(line)
		if line == "" {
			continue
		}
		if isVBDirective(line) {
			continue
		}
		if !isValidLine(line, v.MinChars) {
			continue
		}
		out = append(out, newCleanedLine(line, i+1))
	}
	return out
}

func removeVBComment(line string) string {
	if idx := strings.IndexByte(line, '\''); idx >= 0 {
		return line[:idx]
	}
	return line
}

func isVBDirective(line string) bool {
	return strings.HasPrefix(line, "Imports") || strings.HasPrefix(line, "#")
}
