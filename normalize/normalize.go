package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Prompt normalizes system prompt text: each line is trimmed, lines are rejoined
// with "\n", and leading and trailing blank lines are removed.
func Prompt(text string) string {
	lines := SplitLines(text)
	for i, line := range lines {
		lines[i] = TrimSpace(line)
	}
	return TrimSpace(strings.Join(lines, "\n"))
}

// Output normalizes generated output: the text is trimmed and every run of two or
// more U+0020 spaces becomes a single space. Tabs, newlines and non-breaking
// spaces are preserved.
func Output(text string) string {
	trimmed := TrimSpace(text)
	if !strings.Contains(trimmed, "  ") {
		return trimmed
	}

	var b strings.Builder
	b.Grow(len(trimmed))
	prevSpace := false
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

// SplitLines splits text at line boundaries, dropping the terminators. A trailing
// terminator does not produce a final empty line.
//
// Boundaries are "\r\n", "\n", "\r", "\v", "\f", the information separators
// U+001C..U+001E, NEL (U+0085), LINE SEPARATOR (U+2028) and PARAGRAPH SEPARATOR (U+2029).
func SplitLines(text string) []string {
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	for i, r := range text {
		if i < start {
			// second byte of "\r\n"
			continue
		}
		if !isLineBoundary(r) {
			continue
		}
		lines = append(lines, text[start:i])
		start = i + utf8.RuneLen(r)
		if r == '\r' && start < len(text) && text[start] == '\n' {
			start++
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// TrimSpace removes leading and trailing whitespace. Whitespace is anything
// unicode.IsSpace reports plus the information separators U+001C..U+001F.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}
