// Package generator renders parsed SQL templates into Go source
// files: one repository type per template, one method per statement,
// fetch methods returning rows and execute methods returning results.
package generator

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/leapstack-labs/sqlgen/pkg/template"
)

// Generator renders template files into Go source.
type Generator struct {
	pkg string
	log *slog.Logger
}

// New returns a Generator emitting code into the named Go package.
// A nil logger disables logging.
func New(pkg string, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Generator{pkg: pkg, log: log}
}

// Render produces the formatted Go source for one template file.
func (g *Generator) Render(file *template.File) ([]byte, error) {
	var buf bytes.Buffer
	model := buildModel(g.pkg, file)
	if err := classTemplate.Execute(&buf, model); err != nil {
		return nil, fmt.Errorf("render %s: %w", file.ClassName, err)
	}

	// goimports-style formatting; it also prunes the import block when
	// a template has no methods needing one of the imports.
	formatted, err := imports.Process(fileName(file.ClassName), buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format generated code for %s: %w", file.ClassName, err)
	}
	return formatted, nil
}

// WriteFile renders file and writes it under outDir, returning the
// written path.
func (g *Generator) WriteFile(file *template.File, outDir string) (string, error) {
	src, err := g.Render(file)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(outDir, fileName(file.ClassName))
	if err := os.WriteFile(path, src, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	g.log.Debug("generated", slog.String("class", file.ClassName), slog.String("path", path))
	return path, nil
}

// GenerateAll parses and renders every template path concurrently.
// Each file is independent, so the only coordination is the errgroup
// itself. Returns the written paths in input order.
func (g *Generator) GenerateAll(paths []string, outDir string) ([]string, error) {
	written := make([]string, len(paths))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		eg.Go(func() error {
			file, err := template.ParseFile(path)
			if err != nil {
				return err
			}
			out, err := g.WriteFile(file, outDir)
			if err != nil {
				return err
			}
			written[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return written, nil
}
