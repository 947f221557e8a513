package clean

import "strings"

// JavaScript cleans JS/TS source: standard C-style block/line comments,
// directive lines starting with "import ", "require(" or "export default "
// (other export lines are not directives), decorators, and multi-line function
// signatures. A regular function/method signature continues until
// parens balance and a '{' has been seen; an arrow-function signature
// instead continues until a "=>" is seen on some later line.
type JavaScript struct {
	MinChars int

	inBlockComment bool
	inSignature    bool
	arrowForm      bool
	parenBalance   int
}

func (s *JavaScript) Clean(lines []string) []CleanedLine {
	var out []CleanedLine
	for i, raw := range lines {
		line := s.stripComments(raw)
		trimmed := cleanWhitespace(line)
		if trimmed == "" {
			continue
		}

		if s.inSignature {
			if s.arrowForm {
				if strings.Contains(trimmed, "=>") {
					s.inSignature = false
				}
				continue
			}
			balance, hasBrace := analyzeBraces(trimmed)
			s.parenBalance += balance
			if s.parenBalance <= 0 && hasBrace {
				s.inSignature = false
			}
			continue
		}

		if isJSDirective(trimmed) {
			continue
		}
		if strings.HasPrefix(trimmed, "@") {
			continue
		}

		if startsArrowSignature(trimmed) {
			if strings.Contains(trimmed, "=>") {
				continue
			}
			s.inSignature = true
			s.arrowForm = true
			continue
		}

		if startsFunctionSignature(trimmed) {
			balance, hasBrace := analyzeBraces(trimmed)
			if balance <= 0 && hasBrace {
				continue
			}
			s.inSignature = true
			s.arrowForm = false
			s.parenBalance = balance
			continue
		}

		if !isValidLine(trimmed, s.MinChars) {
			continue
		}
		out = append(out, newCleanedLine(trimmed, i+1))
	}
	return out
}

func (s *JavaScript) stripComments(raw string) string {
	var b strings.Builder
	r := []rune(raw)
	for i := 0; i < len(r); i++ {
		if s.inBlockComment {
			if i+1 < len(r) && r[i] == '*' && r[i+1] == '/' {
				s.inBlockComment = false
				i++
			}
			continue
		}
		if i+1 < len(r) && r[i] == '/' && r[i+1] == '*' {
			s.inBlockComment = true
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

func isJSDirective(line string) bool {
	for _, prefix := range []string{"import ", "require(", "export default "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func startsFunctionSignature(line string) bool {
	line = strings.TrimPrefix(line, "export ")
	if !strings.Contains(line, "(") {
		return false
	}
	return strings.HasPrefix(line, "function ") ||
		strings.HasPrefix(line, "async function ") ||
		strings.Contains(line, "function(") ||
		strings.Contains(line, "function (")
}

func startsArrowSignature(line string) bool {
	line = strings.TrimPrefix(line, "export ")
	if !strings.Contains(line, "(") {
		return false
	}
	if !((strings.HasPrefix(line, "const ") || strings.HasPrefix(line, "let ") || strings.HasPrefix(line, "var ")) &&
		strings.Contains(line, "=")) {
		return false
	}
	// The assigned value must open a parameter list (optionally after
	// "async"); a declaration whose value is a call or other expression
	// is not a signature.
	value := strings.TrimSpace(line[strings.Index(line, "=")+1:])
	value = strings.TrimSpace(strings.TrimPrefix(value, "async"))
	return strings.HasPrefix(value, "(") && (strings.Contains(line, "=>") || !strings.HasSuffix(line, ";"))
}
