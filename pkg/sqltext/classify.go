package sqltext

import "strings"

// StatementType distinguishes row-returning statements from
// data-changing ones.
type StatementType string

const (
	// Fetch statements return a row set (SELECT and friends).
	Fetch StatementType = "fetch"
	// Execute statements mutate data or schema without guaranteed row
	// return semantics.
	Execute StatementType = "execute"
)

// Leading keywords with a direct mapping. WITH is handled separately.
var statementKeywords = map[string]StatementType{
	"SELECT":   Fetch,
	"VALUES":   Fetch,
	"TABLE":    Fetch,
	"SHOW":     Fetch,
	"EXPLAIN":  Fetch,
	"DESCRIBE": Fetch,
	"DESC":     Fetch,
	"PRAGMA":   Fetch,

	"INSERT":   Execute,
	"UPDATE":   Execute,
	"DELETE":   Execute,
	"CREATE":   Execute,
	"DROP":     Execute,
	"ALTER":    Execute,
	"TRUNCATE": Execute,
	"MERGE":    Execute,
	"REPLACE":  Execute,
	"GRANT":    Execute,
	"REVOKE":   Execute,
}

// Classify decides whether sql is a fetch or an execute statement by
// inspecting its leading keyword. Comments are stripped first, so raw
// statement text is acceptable. A WITH-prefixed statement is
// classified by the verb of its final clause, found by scanning past
// the balanced parentheses of the CTE definitions.
//
// DML carrying a RETURNING clause still classifies as Execute: the
// type follows the statement's primary verb so callers never lose its
// mutation semantics. Use HasReturning to detect the row-shape hint.
//
// An unrecognized or missing leading keyword yields an
// *UnknownStatementError; Classify never defaults, since a wrong
// default would treat a mutation as a safe read or vice versa.
func Classify(sql string) (StatementType, error) {
	cleaned := StripComments(sql)

	keyword, rest := leadingKeyword(cleaned)
	if keyword == "" {
		return "", &UnknownStatementError{Fragment: fragment(cleaned)}
	}
	if t, ok := statementKeywords[keyword]; ok {
		return t, nil
	}
	if keyword == "WITH" {
		return classifyCTE(rest, cleaned)
	}
	return "", &UnknownStatementError{Keyword: keyword, Fragment: fragment(cleaned)}
}

// classifyCTE scans the text following a WITH keyword for the verb of
// the final clause. CTE bodies live inside balanced parentheses, so
// the first mapped keyword seen at depth 0 is the main statement's
// verb. A bare CTE name may collide with a mapped keyword (WITH values
// AS ...), so a candidate followed by AS, optionally after a column
// list, is a CTE name and is skipped.
func classifyCTE(rest, whole string) (StatementType, error) {
	depth := 0
	i := 0
	n := len(rest)
	for i < n {
		switch ch := rest[i]; {
		case ch == '\'' || ch == '"':
			end, ok := skipQuoted(rest, i)
			if !ok {
				i = n
			} else {
				i = end
			}
		case ch == '(':
			depth++
			i++
		case ch == ')':
			if depth > 0 {
				depth--
			}
			i++
		case depth == 0 && isIdent(ch):
			j := i
			for j < n && isIdent(rest[j]) {
				j++
			}
			word := strings.ToUpper(rest[i:j])
			if t, ok := statementKeywords[word]; ok && !isCTEName(rest, j) {
				return t, nil
			}
			i = j
		default:
			i++
		}
	}
	return "", &UnknownStatementError{Keyword: "WITH", Fragment: fragment(whole)}
}

// isCTEName reports whether the identifier ending at rest[j] is a CTE
// name rather than the main verb: the next token, after an optional
// parenthesized column list, is AS.
func isCTEName(rest string, j int) bool {
	n := len(rest)
	i := j
	for i < n && (rest[i] == ' ' || rest[i] == '\t' || rest[i] == '\n' || rest[i] == '\r') {
		i++
	}
	if i < n && rest[i] == '(' {
		depth := 0
		for i < n {
			switch rest[i] {
			case '(':
				depth++
			case ')':
				depth--
			}
			i++
			if depth == 0 {
				break
			}
		}
		for i < n && (rest[i] == ' ' || rest[i] == '\t' || rest[i] == '\n' || rest[i] == '\r') {
			i++
		}
	}
	k := i
	for k < n && isIdent(rest[k]) {
		k++
	}
	return strings.EqualFold(rest[i:k], "AS")
}

// HasReturning reports whether sql contains a RETURNING keyword
// outside quoted literals. The scan is depth-insensitive: a RETURNING
// anywhere in the statement body marks the descriptor, which is only a
// hint for row scanning, never a classification input.
func HasReturning(sql string) bool {
	cleaned := StripComments(sql)
	i := 0
	n := len(cleaned)
	for i < n {
		ch := cleaned[i]
		if ch == '\'' || ch == '"' {
			end, _ := skipQuoted(cleaned, i)
			i = end
			continue
		}
		if isIdent(ch) {
			j := i
			for j < n && isIdent(cleaned[j]) {
				j++
			}
			if strings.EqualFold(cleaned[i:j], "RETURNING") {
				return true
			}
			i = j
			continue
		}
		i++
	}
	return false
}

// leadingKeyword returns the first contiguous alphabetic run of sql,
// upper-cased, and the text that follows it.
func leadingKeyword(sql string) (keyword, rest string) {
	s := strings.TrimSpace(sql)
	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	return strings.ToUpper(s[:i]), s[i:]
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isIdent reports whether b can appear inside a SQL identifier. Token
// scans inside statement bodies use identifier runs, not alphabetic
// runs, so that names like returning_flag or select_ids never match a
// keyword.
func isIdent(b byte) bool {
	return isAlpha(b) || (b >= '0' && b <= '9') || b == '_'
}

// fragment truncates text for error messages.
func fragment(text string) string {
	const max = 60
	text = strings.TrimSpace(text)
	if len(text) > max {
		return text[:max] + "..."
	}
	return text
}
