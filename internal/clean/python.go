package clean

import "strings"

// Python cleans Python source. Comments start at the first '#' that is
// not inside a string, detected with a naive quote-parity heuristic:
// count every quote character (' or ", escaped or not) before the '#'
// and treat it as a
// real comment marker only when the count is even (preserved as-is;
// this misfires on a '#' following an odd number of quotes on the same
// line, e.g. a string containing an unmatched quote character).
// Triple-quoted strings (docstrings) suppress scanning across lines.
// def/async def signatures continue until a trailing ':' (optionally
// followed by an opening docstring on the same line).
type Python struct {
	MinChars int

	inDocstring    bool
	docstringQuote string
	inSignature    bool
}

func (p *Python) Clean(lines []string) []CleanedLine {
	var out []CleanedLine
	for i, raw := range lines {
		if p.inDocstring {
			if p.closesDocstring(raw) {
				p.inDocstring = false
			}
			continue
		}

		line := p.stripComment(raw)
		trimmed := cleanWhitespace(line)

		if p.opensDocstring(raw) {
			p.inDocstring = true
		}

		if p.inSignature {
			if endsPythonSignature(line) {
				p.inSignature = false
			}
			continue
		}

		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "@") {
			continue
		}
		if isPythonImport(trimmed) {
			continue
		}

		if startsPythonSignature(trimmed) {
			if !endsPythonSignature(trimmed) {
				p.inSignature = true
			}
			continue
		}

		if !isValidLine(trimmed, p.MinChars) {
			continue
		}
		out = append(out, newCleanedLine(trimmed, i+1))
	}
	return out
}

// stripComment truncates at the first '#' whose preceding quote count
// (on this line) is even, i.e. not apparently inside a string.
func (p *Python) stripComment(line string) string {
	quoteCount := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\'', '"':
			quoteCount++
		case '#':
			if quoteCount%2 == 0 {
				return line[:i]
			}
		}
	}
	return line
}

func (p *Python) opensDocstring(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, q := range []string{`"""`, `'''`} {
		if idx := strings.Index(trimmed, q); idx >= 0 {
			rest := trimmed[idx+len(q):]
			if !strings.Contains(rest, q) {
				p.docstringQuote = q
				return true
			}
		}
	}
	return false
}

func (p *Python) closesDocstring(line string) bool {
	return strings.Contains(line, p.docstringQuote)
}

func isPythonImport(line string) bool {
	return strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "from ")
}

// endsPythonSignature reports whether line closes a def signature: its
// text before any triple-quote docstring opener ends with ':'.
func endsPythonSignature(line string) bool {
	code := line
	for _, q := range []string{`"""`, `'''`} {
		if idx := strings.Index(code, q); idx >= 0 {
			code = code[:idx]
		}
	}
	return strings.HasSuffix(strings.TrimSpace(code), ":")
}

func startsPythonSignature(line string) bool {
	return strings.HasPrefix(line, "def ") || strings.HasPrefix(line, "async def ")
}
