// Package config loads edsls settings from defaults, an optional edsls.yaml
// and EDSLS_* environment variables.
package config

import (
	"slices"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
)

// Symbol naming modes.
const (
	NamingKind = "kind"
	NamingText = "text"
)

// Inline value modes.
const (
	InlineValuesStatement   = "statement"
	InlineValuesPlaceholder = "placeholder"
)

type Config struct {
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Symbols      SymbolsConfig      `yaml:"symbols" mapstructure:"symbols"`
	InlineValues InlineValuesConfig `yaml:"inline_values" mapstructure:"inline_values"`
	Diagnostics  DiagnosticsConfig  `yaml:"diagnostics" mapstructure:"diagnostics"`
	Outline      OutlineConfig      `yaml:"outline" mapstructure:"outline"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // any zerolog level name
}

// SymbolsConfig shapes textDocument/documentSymbol responses.
type SymbolsConfig struct {
	Naming string `yaml:"naming" mapstructure:"naming"` // "kind" or "text"
	Nested bool   `yaml:"nested" mapstructure:"nested"` // group statements under their section
}

// InlineValuesConfig shapes textDocument/inlineValue responses.
type InlineValuesConfig struct {
	Mode        string `yaml:"mode" mapstructure:"mode"`               // "statement" or "placeholder"
	Placeholder string `yaml:"placeholder" mapstructure:"placeholder"` // text used in placeholder mode
}

// DiagnosticsConfig controls textDocument/publishDiagnostics.
type DiagnosticsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// OutlineConfig holds the default patterns of the outline command.
type OutlineConfig struct {
	Patterns []string `yaml:"patterns" mapstructure:"patterns"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: zerolog.InfoLevel.String(),
		},
		Symbols: SymbolsConfig{
			Naming: NamingKind,
			Nested: false,
		},
		InlineValues: InlineValuesConfig{
			Mode:        InlineValuesStatement,
			Placeholder: "<value>",
		},
		Diagnostics: DiagnosticsConfig{
			Enabled: true,
		},
		Outline: OutlineConfig{
			Patterns: []string{"**/*.eds"},
		},
	}
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

var (
	ErrInvalidLogLevel    = errors.Base("invalid log level")
	ErrInvalidNaming      = errors.Base("invalid symbol naming")
	ErrInvalidInlineMode  = errors.Base("invalid inline value mode")
	ErrEmptyOutlineGlobs  = errors.Base("empty outline patterns")
	ErrInvalidOutlineGlob = errors.Base("invalid outline pattern")
)

// Validate reports every invalid setting at once.
func Validate(cfg *Config) error {
	var err error

	if _, perr := zerolog.ParseLevel(cfg.Log.Level); perr != nil {
		err = multierr.Append(err, errors.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Log.Level))
	}

	if !slices.Contains([]string{NamingKind, NamingText}, cfg.Symbols.Naming) {
		err = multierr.Append(err, errors.Errorf("%w: %q (want %q or %q)", ErrInvalidNaming, cfg.Symbols.Naming, NamingKind, NamingText))
	}

	if !slices.Contains([]string{InlineValuesStatement, InlineValuesPlaceholder}, cfg.InlineValues.Mode) {
		err = multierr.Append(err, errors.Errorf("%w: %q (want %q or %q)", ErrInvalidInlineMode, cfg.InlineValues.Mode, InlineValuesStatement, InlineValuesPlaceholder))
	}

	if len(cfg.Outline.Patterns) == 0 {
		err = multierr.Append(err, ErrEmptyOutlineGlobs)
	}
	for _, p := range cfg.Outline.Patterns {
		if !validPattern(p) {
			err = multierr.Append(err, errors.Errorf("%w: %q", ErrInvalidOutlineGlob, p))
		}
	}

	return err
}
