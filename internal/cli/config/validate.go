package config

import (
	"fmt"
	"go/token"
)

// Validate checks config invariants that would otherwise surface as
// confusing generation failures.
func (c *Config) Validate() error {
	if c.Package == "" {
		return fmt.Errorf("package name must not be empty")
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("package name %q is not a valid Go identifier", c.Package)
	}
	switch c.OutputFormat {
	case "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("invalid output format %q (want auto, text, markdown, or json)", c.OutputFormat)
	}
	return nil
}
