package sqltext

import "fmt"

// MalformedError reports structurally broken SQL encountered while
// splitting: unbalanced parentheses or an unterminated quote.
type MalformedError struct {
	Offset  int    // byte offset where the problem was detected
	Message string // "unbalanced parentheses", "unterminated string literal", ...
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed sql at offset %d: %s", e.Offset, e.Message)
}

// UnknownStatementError reports a statement whose leading keyword is
// not in the classification table. Classification never falls back to
// a default: treating a mutation as a read (or the reverse) is worse
// than failing loudly.
type UnknownStatementError struct {
	Keyword  string // offending leading keyword, upper-cased ("" for empty input)
	Fragment string // head of the statement text, for diagnostics
}

func (e *UnknownStatementError) Error() string {
	if e.Keyword == "" {
		return "cannot classify empty statement"
	}
	return fmt.Sprintf("unknown statement type %q in %q", e.Keyword, e.Fragment)
}

// Common message constants for MalformedError.
const (
	errUnbalancedParens   = "unbalanced parentheses"
	errUnterminatedString = "unterminated string literal"
)
