package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dtovl/pkg/errors"
	"github.com/arthur-debert/dtovl/pkg/logging"
	"github.com/arthur-debert/dtovl/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes every environment override. A double underscore
// descends into a table: DTOVL_LOG__FILE=true sets log.file.
const EnvPrefix = "DTOVL_"

// LoadOptions controls which layers Load reads.
type LoadOptions struct {
	// ConfigFile replaces the system and user files when set; it must exist.
	ConfigFile string
	// Overrides are applied last, keyed like the config file ("search_path").
	Overrides map[string]interface{}
	// SkipDefaultFiles ignores the system and user files.
	SkipDefaultFiles bool
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Load builds the effective configuration. It does not validate it.
func Load(opts LoadOptions) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Config files
	switch {
	case opts.ConfigFile != "":
		path := paths.ExpandHome(opts.ConfigFile)
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", path).
				WithDetail("path", path)
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	case !opts.SkipDefaultFiles:
		for _, path := range []string{paths.SystemConfigFile(), paths.UserConfigFile()} {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := loadFile(k, path); err != nil {
				return nil, err
			}
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	postProcessConfig(&cfg)

	log.Debug().
		Str("mount", cfg.Mount).
		Strs("search_path", cfg.SearchPath).
		Str("method", string(cfg.Method)).
		Msg("Configuration loaded")

	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	parser := koanf.Parser(toml.Parser())
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	log := logging.GetLogger("config")
	log.Debug().Str("path", path).Msg("Loaded config file")
	return nil
}

// postProcessConfig trims search path elements and drops empty ones, so
// "/a, ,/b" and a trailing comma behave. A leading ~ is expanded.
func postProcessConfig(cfg *Config) {
	cleaned := make([]string, 0, len(cfg.SearchPath))
	for _, dir := range cfg.SearchPath {
		if dir = strings.TrimSpace(dir); dir != "" {
			cleaned = append(cleaned, paths.ExpandHome(dir))
		}
	}
	cfg.SearchPath = cleaned
	cfg.Mount = paths.ExpandHome(strings.TrimSpace(cfg.Mount))
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
}
