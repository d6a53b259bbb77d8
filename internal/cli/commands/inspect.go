package commands

import (
	"encoding/json"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlgen/internal/cli/output"
	"github.com/leapstack-labs/sqlgen/pkg/template"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <template>",
		Short: "Show the methods a template would generate",
		Long: `Parse a SQL template and show its method descriptors: name,
statement type, parameters, and whether the statement returns rows via
RETURNING. Nothing is generated.`,
		Example: `  # Inspect a template
  sqlgen inspect queries/users.sql

  # Inspect as JSON
  sqlgen inspect queries/users.sql --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
}

// inspectMethod is the JSON shape of one method descriptor.
type inspectMethod struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Params       []string `json:"params"`
	HasReturning bool     `json:"has_returning"`
}

func runInspect(cmd *cobra.Command, path string) error {
	r := GetRenderer(cmd.Context())

	file, err := template.ParseFile(path)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		result := struct {
			ClassName string          `json:"class_name"`
			Methods   []inspectMethod `json:"methods"`
		}{ClassName: file.ClassName}
		for _, m := range file.Methods {
			result.Methods = append(result.Methods, inspectMethod{
				Name:         m.Name,
				Type:         string(m.Type),
				Params:       m.Params,
				HasReturning: m.HasReturning,
			})
		}
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	r.Printf("%s (%d methods)\n", file.ClassName, len(file.Methods))

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"METHOD", "TYPE", "PARAMS", "RETURNING"})
	for _, m := range file.Methods {
		returning := ""
		if m.HasReturning {
			returning = "yes"
		}
		t.AppendRow(table.Row{m.Name, string(m.Type), strings.Join(m.Params, ", "), returning})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return nil
	}
	t.Render()
	return nil
}
