package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlgen/internal/cli/output"
	"github.com/leapstack-labs/sqlgen/pkg/sqltext"
)

// NewClassifyCommand creates the classify command.
func NewClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [sql]",
		Short: "Classify a SQL statement as fetch or execute",
		Long: `Classify a SQL statement by its leading keyword.

fetch statements return rows (SELECT, VALUES, SHOW, ...); execute
statements mutate data or schema (INSERT, UPDATE, CREATE, ...). A
WITH-prefixed statement is classified by the verb after its CTE
definitions. Unknown keywords are an error, never a guess.

With no argument an interactive prompt is started.`,
		Example: `  # Classify a statement
  sqlgen classify "SELECT * FROM users"

  # Classify interactively
  sqlgen classify`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runClassifyREPL(cmd)
			}
			return runClassify(cmd, strings.Join(args, " "))
		},
	}
}

func runClassify(cmd *cobra.Command, sql string) error {
	r := GetRenderer(cmd.Context())

	stype, err := sqltext.Classify(sql)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		result := struct {
			Type         string `json:"type"`
			HasReturning bool   `json:"has_returning"`
		}{
			Type:         string(stype),
			HasReturning: sqltext.HasReturning(sql),
		}
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	r.Println(string(stype))
	return nil
}

// runClassifyREPL reads statements line by line and prints their
// classification. Classification errors are reported and the loop
// continues.
func runClassifyREPL(cmd *cobra.Command) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sqlgen> ",
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("initializing prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "sqlgen classifier (.quit to exit)")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ".quit", ".exit":
			return nil
		}

		stype, err := sqltext.Classify(line)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), stype)
	}
}
