package generator

import "text/template"

// classTemplate renders one Go source file per parsed SQL template.
// Fetch methods query; execute methods exec; execute methods carrying
// RETURNING query but keep their execute classification in the doc
// line. The logger is injected, never a package singleton.
var classTemplate = template.Must(template.New("class").Parse(`// Code generated by sqlgen from {{ .Source }}. DO NOT EDIT.

package {{ .Package }}

import (
	"context"
	"database/sql"
	"log/slog"
)

// {{ .Class }}DB is the subset of database/sql behavior {{ .Class }}
// needs. Both *sql.DB and *sql.Tx satisfy it.
type {{ .Class }}DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// {{ .Class }} exposes the statements defined in {{ .Source }}.
type {{ .Class }} struct {
	db  {{ .Class }}DB
	log *slog.Logger
}

// New{{ .Class }} returns a {{ .Class }} bound to db. A nil logger
// disables statement logging.
func New{{ .Class }}(db {{ .Class }}DB, log *slog.Logger) *{{ .Class }} {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &{{ .Class }}{db: db, log: log}
}
{{ range .Methods }}
const {{ .ConstName }} = {{ .SQLLiteral }}

// {{ .GoName }} runs the {{ .RawName }} statement ({{ .Kind }}).
{{- if .ReturnsRows }}
func (r *{{ $.Class }}) {{ .GoName }}(ctx context.Context{{ range .Params }}, {{ . }} any{{ end }}) (*sql.Rows, error) {
	r.log.DebugContext(ctx, "{{ .RawName }}")
	return r.db.QueryContext(ctx, {{ .ConstName }}{{ range .Args }}, {{ . }}{{ end }})
}
{{- else }}
func (r *{{ $.Class }}) {{ .GoName }}(ctx context.Context{{ range .Params }}, {{ . }} any{{ end }}) (sql.Result, error) {
	r.log.DebugContext(ctx, "{{ .RawName }}")
	return r.db.ExecContext(ctx, {{ .ConstName }}{{ range .Args }}, {{ . }}{{ end }})
}
{{- end }}
{{ end }}`))
