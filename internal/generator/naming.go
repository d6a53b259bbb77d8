package generator

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Initialisms kept fully capitalized in generated Go names.
var initialisms = map[string]string{
	"id":   "ID",
	"sql":  "SQL",
	"url":  "URL",
	"api":  "API",
	"db":   "DB",
	"uuid": "UUID",
	"json": "JSON",
	"http": "HTTP",
}

// exportedName converts a snake_case template identifier to an
// exported Go name: get_user_by_id -> GetUserByID.
func exportedName(name string) string {
	parts := splitWords(name)
	for i, p := range parts {
		parts[i] = titleWord(p)
	}
	return strings.Join(parts, "")
}

// localName converts a snake_case identifier to a lowerCamel Go name:
// user_id -> userID.
func localName(name string) string {
	parts := splitWords(name)
	for i, p := range parts {
		if i == 0 {
			parts[i] = strings.ToLower(p)
			continue
		}
		parts[i] = titleWord(p)
	}
	return strings.Join(parts, "")
}

// fileName converts a class name to a generated file name:
// UserRepository -> user_repository.go.
func fileName(class string) string {
	var b strings.Builder
	for i := 0; i < len(class); i++ {
		c := class[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteByte(c - 'A' + 'a')
			continue
		}
		b.WriteByte(c)
	}
	return b.String() + ".go"
}

func titleWord(word string) string {
	if up, ok := initialisms[strings.ToLower(word)]; ok {
		return up
	}
	return titleCaser.String(strings.ToLower(word))
}

func splitWords(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool { return r == '_' })
}
