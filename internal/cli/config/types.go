// Package config provides configuration management for the sqlgen CLI.
// Precedence (highest to lowest): flags > environment > config file >
// defaults.
package config

// Config holds all CLI configuration options.
type Config struct {
	// TemplatesDir is where .sql template files live.
	TemplatesDir string `koanf:"templates_dir"`
	// OutDir receives generated Go files.
	OutDir string `koanf:"out_dir"`
	// Package is the Go package name for generated files.
	Package string `koanf:"package"`
	// OutputFormat selects how commands render results.
	OutputFormat string `koanf:"output"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultTemplatesDir = "templates"
	DefaultOutDir       = "gen"
	DefaultPackage      = "repositories"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
