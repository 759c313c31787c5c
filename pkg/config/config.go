package config

import (
	"github.com/arthur-debert/dtovl/pkg/configfs"
	"github.com/arthur-debert/dtovl/pkg/errors"
	"github.com/arthur-debert/dtovl/pkg/types"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Config is the effective dtovl configuration.
type Config struct {
	// Mount is the configfs overlay group holding the ledger
	Mount string `koanf:"mount" toml:"mount" yaml:"mount" json:"mount"`
	// SearchPath lists blob directories in lookup order
	SearchPath []string          `koanf:"search_path" toml:"search_path" yaml:"search_path" json:"search_path"`
	Method     types.ApplyMethod `koanf:"method" toml:"method" yaml:"method" json:"method"`
	Format     string            `koanf:"format" toml:"format" yaml:"format" json:"format"`
	Log        Log               `koanf:"log" toml:"log" yaml:"log" json:"log"`
}

// Log holds logging settings
type Log struct {
	File bool `koanf:"file" toml:"file" yaml:"file" json:"file"`
}

// Default returns the built-in configuration without reading any file.
func Default() *Config {
	return &Config{
		Mount:      configfs.DefaultMount,
		SearchPath: []string{configfs.DefaultSearchPath},
		Method:     types.MethodBlob,
		Format:     FormatText,
	}
}

// Validate checks the configuration against fs. The mount point must be an
// existing directory; configfs itself is not required here.
func Validate(cfg *Config, fs types.FS) error {
	if cfg.Mount == "" {
		return errors.New(errors.ErrConfigInvalid, "mount point is empty").
			WithDetail("key", "mount")
	}

	info, err := fs.Stat(cfg.Mount)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigInvalid, "mount point %s is not usable", cfg.Mount).
			WithDetail("key", "mount").
			WithDetail("path", cfg.Mount)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrConfigInvalid, "mount point %s is not a directory", cfg.Mount).
			WithDetail("key", "mount").
			WithDetail("path", cfg.Mount)
	}

	if len(cfg.SearchPath) == 0 {
		return errors.New(errors.ErrConfigInvalid, "search path is empty").
			WithDetail("key", "search_path")
	}

	switch cfg.Method {
	case types.MethodBlob, types.MethodPath:
	default:
		return errors.Newf(errors.ErrConfigInvalid, "unknown apply method %q (want blob or path)", cfg.Method).
			WithDetail("key", "method")
	}

	if !isFormat(cfg.Format) {
		return errors.Newf(errors.ErrConfigInvalid, "unknown output format %q (want text, json or yaml)", cfg.Format).
			WithDetail("key", "format")
	}

	return nil
}

func isFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
