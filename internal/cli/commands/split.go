package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlgen/internal/cli/output"
	"github.com/leapstack-labs/sqlgen/pkg/sqltext"
)

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <file|->",
		Short: "Split a SQL file into individual statements",
		Long: `Split SQL text into top-level statements.

Comments are stripped first; semicolons inside string literals or
parentheses never end a statement. Use - to read from stdin.`,
		Example: `  # Split a migration file
  sqlgen split schema.sql

  # Split from stdin
  cat schema.sql | sqlgen split -

  # Keep trailing semicolons
  sqlgen split schema.sql --keep-terminator`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keep, _ := cmd.Flags().GetBool("keep-terminator")
			return runSplit(cmd, args[0], keep)
		},
	}

	cmd.Flags().Bool("keep-terminator", false, "Keep trailing semicolons on statements")
	return cmd
}

func runSplit(cmd *cobra.Command, path string, keepTerminator bool) error {
	r := GetRenderer(cmd.Context())

	sql, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	stmts, err := sqltext.SplitStatements(sql, !keepTerminator)
	if err != nil {
		return fmt.Errorf("splitting %s: %w", path, err)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		texts := make([]string, len(stmts))
		for i, s := range stmts {
			texts[i] = s.Text
		}
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(texts)
	case output.ModeMarkdown:
		for _, s := range stmts {
			r.Println(output.FormatHeader(2, fmt.Sprintf("Statement %d", s.Pos+1)))
			r.Println("")
			r.Println(output.FormatCodeBlock("sql", s.Text))
			r.Println("")
		}
	default:
		for i, s := range stmts {
			if i > 0 {
				r.Println("")
			}
			r.Println(s.Text)
		}
	}
	return nil
}

// readInput reads SQL from a file or, for "-", from stdin.
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
