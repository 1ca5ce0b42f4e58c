package tabcodec

import "strings"

// decodeString trims the element's raw fixed-width bytes at the first
// NUL or trailing space (whichever is shorter), per spec.md §4.5.
func decodeString(raw []byte) string {
	n := len(raw)
	for i, b := range raw {
		if b == 0 {
			n = i
			break
		}
	}
	s := string(raw[:n])
	return strings.TrimRight(s, " ")
}

// textString renders a string cell for delimited/IPAC/SQL-text output.
// cfg.Strip additionally trims leading whitespace (SPEC_FULL.md
// supplement, grounded on original_source/fits2db.c's sstrip(): both
// ends are trimmed, not just the trailing fixed-width padding).
func textString(raw []byte, strip bool) string {
	s := decodeString(raw)
	if strip {
		s = strings.TrimSpace(s)
	}
	return s
}

// copyEscape backslash-escapes the three bytes Postgres's COPY text
// format treats specially (spec.md §4.7): no quoting, just escaping.
func copyEscape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// quoteText wraps s in quoteChar, doubling any embedded quoteChar or, if
// escape is set, backslash-escaping it instead — spec.md §4.5's two
// quoting styles for delimited output.
func quoteText(s string, quoteChar byte, escape bool) string {
	q := string(quoteChar)
	var b strings.Builder
	b.WriteByte(quoteChar)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == quoteChar {
			if escape {
				b.WriteByte('\\')
			} else {
				b.WriteString(q)
			}
		}
		b.WriteByte(c)
	}
	b.WriteByte(quoteChar)
	return b.String()
}
