// Package system provides infrastructure for system-level configuration.
// This includes loading the user config file (~/.glyphc.yaml) and
// GLYPHC_* environment overrides.
package system

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GLYPHC_CATALOG_PATH.
const EnvPrefix = "GLYPHC"

// Config represents the global configuration file (~/.glyphc.yaml).
// This is infrastructure-level configuration separate from the
// configurations being compiled.
type Config struct {
	// CatalogPath points at an icon catalog file. Empty selects the embedded catalog.
	CatalogPath string `mapstructure:"catalog_path" yaml:"catalog_path"`

	// FontPath overrides the font file used for coverage checks.
	FontPath string `mapstructure:"font_path" yaml:"font_path"`

	// FontSize overrides the configured font size when > 0.
	FontSize int `mapstructure:"font_size" yaml:"font_size"`

	// OutputFormat is the default stream format: text, json or yaml.
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`

	// StrictIdentifiers fails compilation instead of renaming colliding
	// derived identifiers.
	StrictIdentifiers bool `mapstructure:"strict_identifiers" yaml:"strict_identifiers"`

	// Parallelism bounds concurrent compilations; 0 means unbounded.
	Parallelism int `mapstructure:"parallelism" yaml:"parallelism"`
}

// SupportedOutputFormats lists the stream formats accepted in output_format.
var SupportedOutputFormats = []string{"text", "json", "yaml"}

// DefaultConfig returns a Config with defaults for all fields.
// This is used when no system config file exists.
func DefaultConfig() *Config {
	return &Config{
		CatalogPath:       "",
		FontPath:          "",
		FontSize:          0, // 0 means use the configuration's size
		OutputFormat:      "text",
		StrictIdentifiers: false,
		Parallelism:       4,
	}
}

// Load reads the system configuration from v. Keys missing from the file
// and the environment keep their DefaultConfig() value, so glyphc works
// out-of-the-box without configuration.
func Load(v *viper.Viper) (*Config, error) {
	Bind(v)

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse system config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Bind registers defaults and the environment prefix on v.
func Bind(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("catalog_path", def.CatalogPath)
	v.SetDefault("font_path", def.FontPath)
	v.SetDefault("font_size", def.FontSize)
	v.SetDefault("output_format", def.OutputFormat)
	v.SetDefault("strict_identifiers", def.StrictIdentifiers)
	v.SetDefault("parallelism", def.Parallelism)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if !slices.Contains(SupportedOutputFormats, c.OutputFormat) {
		return fmt.Errorf("invalid output_format %q (supported: %v)", c.OutputFormat, SupportedOutputFormats)
	}
	if c.FontSize < 0 {
		return fmt.Errorf("font_size must not be negative, got %d", c.FontSize)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}
	return nil
}
