// Package sqltext provides heuristic SQL text analysis: comment
// stripping, statement splitting, and fetch/execute classification.
//
// It is deliberately not a SQL parser. All three operations run a
// single-pass character state machine over the input (normal,
// single-quote, double-quote, line comment, block comment, paren
// depth) so that quoted literals are never mistaken for comments,
// terminators, or keywords. The classifier is a finite
// lookup-plus-scan over leading keywords; it does not validate SQL.
package sqltext
