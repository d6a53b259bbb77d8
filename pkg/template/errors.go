package template

import "fmt"

// MissingClassNameError reports a template whose first non-blank line
// is not a valid class-name header.
type MissingClassNameError struct {
	Path   string
	Reason string
}

func (e *MissingClassNameError) Error() string {
	return fmt.Sprintf("%s: missing class name header: %s", e.Path, e.Reason)
}

// InvalidIdentifierError reports a method or parameter name that is
// not usable as an identifier in generated code.
type InvalidIdentifierError struct {
	Path   string
	Method string // enclosing method, empty for the class header
	Name   string // the offending identifier
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	if e.Method != "" && e.Method != e.Name {
		return fmt.Sprintf("%s: method %s: invalid identifier %q: %s", e.Path, e.Method, e.Name, e.Reason)
	}
	return fmt.Sprintf("%s: invalid identifier %q: %s", e.Path, e.Name, e.Reason)
}

// DuplicateMethodError reports two method blocks sharing one name.
type DuplicateMethodError struct {
	Path string
	Name string
}

func (e *DuplicateMethodError) Error() string {
	return fmt.Sprintf("%s: duplicate method name %q", e.Path, e.Name)
}

// ClassifyError wraps a classification or splitting failure with the
// method it occurred in, so callers can diagnose without re-running.
type ClassifyError struct {
	Path   string
	Method string
	Err    error
}

func (e *ClassifyError) Error() string {
	return fmt.Sprintf("%s: method %s: %v", e.Path, e.Method, e.Err)
}

func (e *ClassifyError) Unwrap() error { return e.Err }
