package generator

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlgen/pkg/sqltext"
	"github.com/leapstack-labs/sqlgen/pkg/template"
)

// classModel is the data handed to the code template.
type classModel struct {
	Package string
	Source  string
	Class   string
	Methods []methodModel
}

type methodModel struct {
	RawName     string
	GoName      string
	ConstName   string
	SQLLiteral  string   // Go source literal of the rewritten statement
	Kind        string   // fetch, execute, execute returning rows
	ReturnsRows bool     // fetch, or execute with RETURNING
	Params      []string // Go argument names, declaration order, deduplicated
	Args        []string // Go expressions per placeholder occurrence
}

// buildModel converts a parsed template file into the template's view.
func buildModel(pkg string, file *template.File) classModel {
	model := classModel{
		Package: pkg,
		Source:  sourceName(file.Path),
		Class:   file.ClassName,
	}
	for _, m := range file.Methods {
		rewritten, order := rewritePlaceholders(m.SQL)
		args := make([]string, len(order))
		for i, p := range order {
			args[i] = localName(p)
		}
		params := make([]string, len(m.Params))
		for i, p := range m.Params {
			params[i] = localName(p)
		}
		model.Methods = append(model.Methods, methodModel{
			RawName:     m.Name,
			GoName:      exportedName(m.Name),
			ConstName:   localName(m.Name) + "SQL",
			SQLLiteral:  sqlLiteral(rewritten),
			Kind:        methodKind(m),
			ReturnsRows: m.Type == sqltext.Fetch || m.HasReturning,
			Params:      params,
			Args:        args,
		})
	}
	return model
}

func methodKind(m template.Method) string {
	if m.Type == sqltext.Execute && m.HasReturning {
		return "execute, returns rows"
	}
	return string(m.Type)
}

// rewritePlaceholders replaces each :name parameter with a ?
// placeholder and returns the parameter name per occurrence, in
// order. A :token inside a quoted literal, a line or block comment,
// or a :: cast is copied verbatim; the scan recognizes exactly what
// the template parser's extraction recognizes, so a rewritten
// statement never binds an argument the method does not declare.
func rewritePlaceholders(sql string) (string, []string) {
	var out strings.Builder
	out.Grow(len(sql))
	var order []string

	i := 0
	n := len(sql)
	for i < n {
		ch := sql[i]
		if ch == '\'' || ch == '"' {
			end := skipLiteral(sql, i)
			out.WriteString(sql[i:end])
			i = end
			continue
		}
		if ch == '-' && i+1 < n && sql[i+1] == '-' {
			j := i + 2
			for j < n && sql[j] != '\n' {
				j++
			}
			out.WriteString(sql[i:j])
			i = j
			continue
		}
		if ch == '/' && i+1 < n && sql[i+1] == '*' {
			j := i + 2
			for j < n {
				if sql[j] == '*' && j+1 < n && sql[j+1] == '/' {
					j += 2
					break
				}
				j++
			}
			out.WriteString(sql[i:j])
			i = j
			continue
		}
		if ch != ':' {
			out.WriteByte(ch)
			i++
			continue
		}
		if i+1 < n && sql[i+1] == ':' {
			out.WriteString("::")
			i += 2
			continue
		}
		j := i + 1
		for j < n && isParamChar(sql[j]) {
			j++
		}
		if j == i+1 {
			out.WriteByte(ch)
			i++
			continue
		}
		order = append(order, sql[i+1:j])
		out.WriteByte('?')
		i = j
	}
	return out.String(), order
}

// sqlLiteral renders a statement as a Go source literal, preferring a
// raw string for readability.
func sqlLiteral(sql string) string {
	if !strings.Contains(sql, "`") {
		return "`" + sql + "`"
	}
	return strconv.Quote(sql)
}

func sourceName(path string) string {
	if path == "" {
		return "a SQL template"
	}
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

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
