package template

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/leapstack-labs/sqlgen/pkg/sqltext"
)

// methodHeaderPattern matches a method header line: a # immediately
// followed by an identifier, alone on its line. The class header on
// the first line is handled separately and may carry whitespace after
// the #.
var methodHeaderPattern = regexp.MustCompile(`^#(\w+)\s*$`)

// ParseFile reads and parses the template at path. I/O failures are
// returned wrapped and remain distinguishable from parse errors via
// errors.Is against the underlying os error.
func ParseFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	return Parse(path, string(content))
}

// Parse parses template content. path is used only for error context.
// No partial File is ever returned: the first structural violation
// aborts the parse.
func Parse(path, content string) (*File, error) {
	lines := strings.Split(content, "\n")

	className, bodyStart, err := parseClassHeader(path, lines)
	if err != nil {
		return nil, err
	}

	file := &File{Path: path, ClassName: className}
	seen := make(map[string]struct{})

	flush := func(name string, block []string) error {
		if name == "" {
			// Content before the first method header has no callable to
			// belong to; the class header line already consumed line one.
			return nil
		}
		method, ok, err := buildMethod(path, name, strings.Join(block, "\n"))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if _, dup := seen[method.Name]; dup {
			return &DuplicateMethodError{Path: path, Name: method.Name}
		}
		seen[method.Name] = struct{}{}
		file.Methods = append(file.Methods, method)
		return nil
	}

	current := ""
	var block []string
	for _, line := range lines[bodyStart:] {
		if m := methodHeaderPattern.FindStringSubmatch(line); m != nil {
			if err := flush(current, block); err != nil {
				return nil, err
			}
			current = m[1]
			block = block[:0]
			continue
		}
		block = append(block, line)
	}
	if err := flush(current, block); err != nil {
		return nil, err
	}

	return file, nil
}

// parseClassHeader locates the first non-blank line, validates it as a
// class-name header, and returns the class name plus the index of the
// first body line.
func parseClassHeader(path string, lines []string) (string, int, error) {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "#") {
			return "", 0, &MissingClassNameError{Path: path, Reason: "first line must be a # comment naming the class"}
		}
		name := strings.TrimSpace(trimmed[1:])
		if name == "" {
			return "", 0, &MissingClassNameError{Path: path, Reason: "class name is empty"}
		}
		if ok, reason := validIdentifier(name); !ok {
			return "", 0, &MissingClassNameError{Path: path, Reason: fmt.Sprintf("class name %q is not a valid identifier: %s", name, reason)}
		}
		return name, i + 1, nil
	}
	return "", 0, &MissingClassNameError{Path: path, Reason: "file has no content"}
}

// buildMethod assembles one method descriptor. Blocks whose SQL is
// empty after trimming are skipped (ok=false), matching the template
// format's tolerance for stray headers at end of file.
func buildMethod(path, name, sql string) (Method, bool, error) {
	if ok, reason := validIdentifier(name); !ok {
		return Method{}, false, &InvalidIdentifierError{Path: path, Method: name, Name: name, Reason: reason}
	}

	sql = strings.TrimSpace(sql)
	if sql == "" {
		return Method{}, false, nil
	}
	sql = strings.TrimSpace(strings.TrimSuffix(sql, ";"))

	stmts, err := sqltext.SplitStatements(sql, true)
	if err != nil {
		return Method{}, false, &ClassifyError{Path: path, Method: name, Err: err}
	}
	if len(stmts) == 0 {
		// Comment-only block; nothing callable to generate.
		return Method{}, false, nil
	}

	// Classification keys on the primary (first) statement.
	stype, err := sqltext.Classify(stmts[0].Text)
	if err != nil {
		return Method{}, false, &ClassifyError{Path: path, Method: name, Err: err}
	}

	params, err := extractParams(path, name, sql)
	if err != nil {
		return Method{}, false, err
	}

	return Method{
		Name:         name,
		SQL:          sql,
		Type:         stype,
		Params:       params,
		HasReturning: sqltext.HasReturning(sql),
	}, true, nil
}

// extractParams collects :name parameters from sql in first-occurrence
// order, deduplicated. The scan is quote-aware so a :token inside a
// string literal is not a parameter, and :: casts are skipped.
func extractParams(path, method, sql string) ([]string, error) {
	cleaned := sqltext.StripComments(sql)

	var params []string
	seen := make(map[string]struct{})
	i := 0
	n := len(cleaned)
	for i < n {
		ch := cleaned[i]
		if ch == '\'' || ch == '"' {
			i = skipLiteral(cleaned, i)
			continue
		}
		if ch != ':' {
			i++
			continue
		}
		if i+1 < n && cleaned[i+1] == ':' {
			// Dialect cast (a::integer), not a parameter.
			i += 2
			continue
		}
		j := i + 1
		for j < n && isParamChar(cleaned[j]) {
			j++
		}
		if j == i+1 {
			i++
			continue
		}
		name := cleaned[i+1 : j]
		if ok, reason := validIdentifier(name); !ok {
			return nil, &InvalidIdentifierError{Path: path, Method: method, Name: name, Reason: reason}
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			params = append(params, name)
		}
		i = j
	}
	return params, nil
}

// skipLiteral returns the index just past the quoted literal opening
// at sql[start], treating doubled quotes as staying inside it.
func skipLiteral(sql string, start int) int {
	quote := sql[start]
	i := start + 1
	n := len(sql)
	for i < n {
		if sql[i] == quote {
			if i+1 < n && sql[i+1] == quote {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return n
}

func isParamChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
