package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Package-level koanf instance and config file tracking.
var (
	k              = koanf.New(".")
	configFileUsed string
)

// findConfigFile finds the config file to use.
// Priority: explicit path > sqlgen.yaml > sqlgen.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"sqlgen.yaml", "sqlgen.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

// GetConfigFileUsed returns the path of the config file that was
// loaded, or empty when defaults were used.
func GetConfigFileUsed() string { return configFileUsed }

// LoadConfig loads configuration from file, environment variables, and
// flags. Precedence (highest to lowest): flags > env vars > config
// file > defaults. A missing config file is not an error; a broken one
// is.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	ResetConfig()

	// Layer 1: defaults.
	defaults := confmap.Provider(map[string]any{
		"templates_dir": DefaultTemplatesDir,
		"out_dir":       DefaultOutDir,
		"package":       DefaultPackage,
		"output":        DefaultOutput,
		"verbose":       false,
	}, ".")
	if err := k.Load(defaults, nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// Layer 2: config file. An explicitly named file must exist; the
	// default locations are optional.
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, fmt.Errorf("config file %s not found", cfgFile)
		}
	}
	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		configFileUsed = path
	}

	// Layer 3: environment. SQLGEN_OUT_DIR=./gen maps to out_dir.
	envProvider := env.Provider("SQLGEN_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SQLGEN_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	// Layer 4: flags, only those actually set.
	if flags != nil {
		translate := map[string]string{
			"templates-dir": "templates_dir",
			"out-dir":       "out_dir",
			"package":       "package",
			"output":        "output",
			"verbose":       "verbose",
		}
		flagProvider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := translate[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(flagProvider, nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
