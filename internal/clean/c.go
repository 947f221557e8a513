package clean

import "strings"

// CFamily cleans C/C++ source (and headers). Block-comment state
// (/* ... */) carries across lines; // trims to end of line;
// preprocessor directives ('#...') are always filtered.
type CFamily struct {
	MinChars int

	inBlockComment bool
}

func (c *CFamily) Clean(lines []string) []CleanedLine {
	var out []CleanedLine
	for i, raw := range lines {
		line := c.stripComments(raw)
		line = cleanWhitespace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if !isValidLine(line, c.MinChars) {
			continue
		}
		out = append(out, newCleanedLine(line, i+1))
	}
	return out
}

func (c *CFamily) stripComments(raw string) string {
	var b strings.Builder
	r := []rune(raw)
	for i := 0; i < len(r); i++ {
		if c.inBlockComment {
			if i+1 < len(r) && r[i] == '*' && r[i+1] == '/' {
				c.inBlockComment = false
				i++
			}
			continue
		}
		if i+1 < len(r) && r[i] == '/' && r[i+1] == '*' {
			c.inBlockComment = true
			i++
			continue
		}
		if i+1 < len(r) && r[i] == '/' && r[i+1] == '/' {
			break
		}
		b.WriteRune(r[i])
	}
	return b.String()
}
