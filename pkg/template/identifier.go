package template

import "go/token"

// validIdentifier reports whether name can be used for generated Go
// declarations: letters, digits, and underscores, no leading digit,
// and not a Go reserved word. Returns a human-readable reason when
// invalid.
func validIdentifier(name string) (ok bool, reason string) {
	if name == "" {
		return false, "empty"
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9':
			if i == 0 {
				return false, "starts with a digit"
			}
		default:
			return false, "contains characters outside letters, digits, and underscore"
		}
	}
	if token.IsKeyword(name) {
		return false, "reserved word"
	}
	return true, ""
}
