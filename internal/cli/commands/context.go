// Package commands implements the sqlgen subcommands.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/leapstack-labs/sqlgen/internal/cli/config"
	"github.com/leapstack-labs/sqlgen/internal/cli/output"
)

// Context keys shared with the root command, which populates them in
// PersistentPreRunE.
type (
	ConfigKey   struct{}
	RendererKey struct{}
	LoggerKey   struct{}
)

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(ConfigKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		TemplatesDir: config.DefaultTemplatesDir,
		OutDir:       config.DefaultOutDir,
		Package:      config.DefaultPackage,
		OutputFormat: config.DefaultOutput,
	}
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(RendererKey{}).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(LoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
