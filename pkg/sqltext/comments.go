package sqltext

import "strings"

// StripComments removes line comments (-- to end of line) and
// non-nested block comments (/* ... */) from sql. Comment markers
// inside single- or double-quoted literals are left untouched; doubled
// quotes inside a literal keep the literal open. An unterminated block
// comment swallows the rest of the input. The result is trimmed of
// leading and trailing whitespace.
//
// StripComments is idempotent: stripping already-stripped text is a
// no-op.
func StripComments(sql string) string {
	var out strings.Builder
	out.Grow(len(sql))

	i := 0
	n := len(sql)
	for i < n {
		ch := sql[i]

		// Line comment: drop through end of line, keep the newline so
		// adjacent lines do not merge into one token.
		if ch == '-' && i+1 < n && sql[i+1] == '-' {
			i += 2
			for i < n && sql[i] != '\n' {
				i++
			}
			continue
		}

		// Block comment: drop through the closing */, emit one space in
		// its place so "a/*x*/b" does not become "ab". Unterminated
		// block comments consume the remainder.
		if ch == '/' && i+1 < n && sql[i+1] == '*' {
			i += 2
			for i < n {
				if sql[i] == '*' && i+1 < n && sql[i+1] == '/' {
					i += 2
					break
				}
				i++
			}
			out.WriteByte(' ')
			continue
		}

		// Quoted literal: copy verbatim, honoring doubled-quote escapes.
		if ch == '\'' || ch == '"' {
			i = copyQuoted(&out, sql, i)
			continue
		}

		out.WriteByte(ch)
		i++
	}

	return strings.TrimSpace(out.String())
}

// copyQuoted copies a quoted literal starting at sql[start] (the
// opening quote) into out and returns the index just past the closing
// quote. A doubled quote character stays inside the literal. If the
// literal never closes, the remainder is copied as-is; the splitter is
// responsible for reporting unterminated literals.
func copyQuoted(out *strings.Builder, sql string, start int) int {
	quote := sql[start]
	out.WriteByte(quote)
	i := start + 1
	n := len(sql)
	for i < n {
		out.WriteByte(sql[i])
		if sql[i] == quote {
			if i+1 < n && sql[i+1] == quote {
				out.WriteByte(sql[i+1])
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return i
}

// skipQuoted returns the index just past the closing quote of the
// literal opening at sql[start], or len(sql) and ok=false when the
// literal never closes.
func skipQuoted(sql string, start int) (end int, ok bool) {
	quote := sql[start]
	i := start + 1
	n := len(sql)
	for i < n {
		if sql[i] == quote {
			if i+1 < n && sql[i+1] == quote {
				i += 2
				continue
			}
			return i + 1, true
		}
		i++
	}
	return n, false
}
