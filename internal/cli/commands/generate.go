package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlgen/internal/generator"
	"github.com/leapstack-labs/sqlgen/pkg/template"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [templates...]",
		Short: "Generate Go code from SQL templates",
		Long: `Generate one Go source file per SQL template.

With no arguments, every .sql file under the templates directory is
processed. Files are independent and are generated concurrently.`,
		Example: `  # Generate from all templates in the templates directory
  sqlgen generate

  # Generate specific templates into a custom package
  sqlgen generate queries/users.sql --package queries --out-dir internal/queries

  # Preview generated code without writing files
  sqlgen generate queries/users.sql --dry-run

  # Regenerate whenever a template changes
  sqlgen generate --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			watch, _ := cmd.Flags().GetBool("watch")
			return runGenerate(cmd, args, dryRun, watch)
		},
	}

	cmd.Flags().Bool("dry-run", false, "Print generated code instead of writing files")
	cmd.Flags().Bool("watch", false, "Watch templates and regenerate on change")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, dryRun, watch bool) error {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	r := GetRenderer(ctx)
	log := GetLogger(ctx)

	paths := args
	if len(paths) == 0 {
		var err error
		paths, err = collectTemplates(cfg.TemplatesDir)
		if err != nil {
			return err
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .sql templates found in %s", cfg.TemplatesDir)
	}

	gen := generator.New(cfg.Package, log)

	if dryRun {
		for _, path := range paths {
			file, err := template.ParseFile(path)
			if err != nil {
				return err
			}
			src, err := gen.Render(file)
			if err != nil {
				return err
			}
			_, _ = r.Writer().Write(src)
		}
		return nil
	}

	generate := func() error {
		written, err := gen.GenerateAll(paths, cfg.OutDir)
		if err != nil {
			return err
		}
		for _, path := range written {
			r.Printf("generated %s\n", path)
		}
		return nil
	}

	if err := generate(); err != nil {
		if !watch {
			return err
		}
		// In watch mode a broken template is not fatal; the next save
		// gets another chance.
		_, _ = fmt.Fprintf(r.ErrWriter(), "Error: %v\n", err)
	}

	if !watch {
		return nil
	}
	return watchTemplates(cmd, paths, log, generate)
}

// watchTemplates regenerates on every write to a watched template.
// Directories of the given paths are watched, since editors often
// replace files instead of writing in place.
func watchTemplates(cmd *cobra.Command, paths []string, log *slog.Logger, generate func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dirs := make(map[string]struct{})
	for _, p := range paths {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Watching for template changes (Ctrl+C to stop)")

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".sql") {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug("template changed", slog.String("path", event.Name))
			if err := generate(); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", slog.String("error", err.Error()))
		}
	}
}

// collectTemplates walks dir for .sql files, skipping hidden files.
func collectTemplates(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".sql") {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning templates directory: %w", err)
	}
	return paths, nil
}
