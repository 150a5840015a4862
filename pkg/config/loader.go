package config

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"
)

const (
	EnvPrefix = "EDSLS"
	FileName  = "edsls"
)

// Loader reads configuration with the following priority (highest first):
//  1. environment variables (EDSLS_*)
//  2. the config file (--config, or edsls.yaml in the search dir)
//  3. Default()
type Loader struct {
	fs   afero.Fs
	dir  string
	file string
}

func NewLoader(fs afero.Fs, dir string) *Loader {
	return &Loader{fs: fs, dir: dir}
}

// WithFile makes the loader read exactly path. A missing file is then an
// error instead of falling back to defaults.
func (l *Loader) WithFile(path string) *Loader {
	l.file = path
	return l
}

func (l *Loader) Load() (*Config, error) {
	v := viper.New()
	v.SetFs(l.fs)
	v.SetConfigType("yaml")

	if l.file != "" {
		v.SetConfigFile(l.file)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(l.dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Errorf("decoding config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("log.level", defaults.Log.Level)

	v.SetDefault("symbols.naming", defaults.Symbols.Naming)
	v.SetDefault("symbols.nested", defaults.Symbols.Nested)

	v.SetDefault("inline_values.mode", defaults.InlineValues.Mode)
	v.SetDefault("inline_values.placeholder", defaults.InlineValues.Placeholder)

	v.SetDefault("diagnostics.enabled", defaults.Diagnostics.Enabled)

	v.SetDefault("outline.patterns", defaults.Outline.Patterns)
}

func validPattern(p string) bool {
	return p != "" && doublestar.ValidatePattern(p)
}
