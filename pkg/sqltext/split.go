package sqltext

import "strings"

// Statement is a single SQL command extracted from a larger text.
type Statement struct {
	// Text is the trimmed statement body. It includes the trailing
	// terminator only when SplitStatements was called with
	// stripTerminator=false and the source had one.
	Text string
	// Pos is the zero-based ordinal of the statement within its source.
	Pos int
}

// SplitStatements segments sql into individual top-level statements.
// Comments are stripped first, then a semicolon found at parenthesis
// depth 0 and outside any quoted literal ends the current statement.
// Whitespace-only segments are dropped; trailing text without a
// terminator is emitted as the final statement. When stripTerminator
// is true the trailing semicolon is excluded from each statement's
// text.
//
// Returns a *MalformedError when parentheses are unbalanced or a
// quoted literal is left open at end of input.
func SplitStatements(sql string, stripTerminator bool) ([]Statement, error) {
	cleaned := StripComments(sql)

	var stmts []Statement
	depth := 0
	start := 0
	n := len(cleaned)

	emit := func(end int, withTerminator bool) {
		text := cleaned[start:end]
		if withTerminator && !stripTerminator {
			text += ";"
		}
		text = strings.TrimSpace(text)
		if text != "" {
			stmts = append(stmts, Statement{Text: text, Pos: len(stmts)})
		}
	}

	i := 0
	for i < n {
		switch ch := cleaned[i]; ch {
		case '\'', '"':
			end, ok := skipQuoted(cleaned, i)
			if !ok {
				return nil, &MalformedError{Offset: i, Message: errUnterminatedString}
			}
			i = end
		case '(':
			depth++
			i++
		case ')':
			depth--
			if depth < 0 {
				return nil, &MalformedError{Offset: i, Message: errUnbalancedParens}
			}
			i++
		case ';':
			if depth == 0 {
				emit(i, true)
				start = i + 1
			}
			i++
		default:
			i++
		}
	}

	if depth != 0 {
		return nil, &MalformedError{Offset: n, Message: errUnbalancedParens}
	}

	emit(n, false)
	return stmts, nil
}

// SplitTexts is a convenience wrapper over SplitStatements returning
// just the statement texts with terminators stripped.
func SplitTexts(sql string) ([]string, error) {
	stmts, err := SplitStatements(sql, true)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(stmts))
	for i, s := range stmts {
		texts[i] = s.Text
	}
	return texts, nil
}
