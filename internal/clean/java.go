package clean

import "strings"

// Java cleans Java source: standard C-style block/line comments,
// package/import directives, annotations, and multi-line method
// signatures (a signature continues until parens balance and a '{'
// has been seen).
type Java struct {
	MinChars int

	inBlockComment bool
	inSignature    bool
	parenBalance   int
}

func (j *Java) Clean(lines []string) []CleanedLine {
	var out []CleanedLine
	for i, raw := range lines {
		line := j.stripComments(raw)
		trimmed := cleanWhitespace(line)
		if trimmed == "" {
			continue
		}

		if j.inSignature {
			balance, hasBrace := analyzeBraces(trimmed)
			j.parenBalance += balance
			if j.parenBalance <= 0 && hasBrace {
				j.inSignature = false
			}
			continue
		}

		if isJavaDirective(trimmed) {
			continue
		}
		if strings.HasPrefix(trimmed, "@") {
			continue
		}

		if startsJavaSignature(trimmed) {
			balance, hasBrace := analyzeBraces(trimmed)
			if balance <= 0 && hasBrace {
				continue
			}
			j.inSignature = true
			j.parenBalance = balance
			continue
		}

		if !isValidLine(trimmed, j.MinChars) {
			continue
		}
		out = append(out, newCleanedLine(trimmed, i+1))
	}
	return out
}

func (j *Java) stripComments(raw string) string {
	var b strings.Builder
	r := []rune(raw)
	for i := 0; i < len(r); i++ {
		if j.inBlockComment {
			if i+1 < len(r) && r[i] == '*' && r[i+1] == '/' {
				j.inBlockComment = false
				i++
			}
			continue
		}
		if i+1 < len(r) && r[i] == '/' && r[i+1] == '*' {
			j.inBlockComment = true
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

func isJavaDirective(line string) bool {
	return strings.HasPrefix(line, "package ") || strings.HasPrefix(line, "import ")
}

var javaSignatureModifiers = []string{
	"public", "private", "protected", "static", "final", "abstract",
	"synchronized", "native", "default",
}

func startsJavaSignature(line string) bool {
	if !strings.Contains(line, "(") {
		return false
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	hasModifier := false
	for _, f := range fields {
		for _, m := range javaSignatureModifiers {
			if f == m {
				hasModifier = true
			}
		}
	}
	if !hasModifier {
		return false
	}
	if strings.HasSuffix(line, ";") {
		return false
	}
	return true
}
