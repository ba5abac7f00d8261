package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/bls/pkg/errors"
	"github.com/arthur-debert/bls/pkg/logging"
	"github.com/arthur-debert/bls/pkg/types"
)

const (
	// LocalFileName is the per-directory config file.
	LocalFileName = ".bls.toml"
	// EnvPrefix prefixes environment overrides, e.g. BLS_SORT=date.
	EnvPrefix = "BLS_"
)

// Config holds the defaults a run starts from.
type Config struct {
	CaseSensitive       bool          `koanf:"case_sensitive" toml:"case_sensitive"`
	AbortOnAccessErrors bool          `koanf:"abort_on_access_errors" toml:"abort_on_access_errors"`
	AllowDuplicates     bool          `koanf:"allow_duplicates" toml:"allow_duplicates"`
	FullyQualified      bool          `koanf:"fully_qualified" toml:"fully_qualified"`
	Sort                types.SortKey `koanf:"sort" toml:"sort"`
	Descending          bool          `koanf:"descending" toml:"descending"`
	Exclude             []string      `koanf:"exclude" toml:"exclude"`
	EncodedExtension    string        `koanf:"encoded_extension" toml:"encoded_extension"`

	// Sources lists the config files that were loaded, in order.
	Sources []string `koanf:"-" toml:"-"`
}

// Load layers the configuration sources for a run started in dir. Keys in
// overrides (koanf key names) win over everything else.
func Load(dir string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User and local config files, if present
	var sources []string
	for _, path := range []string{UserConfigPath(), localConfigPath(dir)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		sources = append(sources, path)
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Command-line overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	cfg := Config{Sources: sources}
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to decode configuration")
	}

	if cfg.EncodedExtension != "" && !strings.HasPrefix(cfg.EncodedExtension, ".") {
		cfg.EncodedExtension = "." + cfg.EncodedExtension
	}

	return &cfg, nil
}

// UserConfigPath returns the user config file location. It respects
// XDG_CONFIG_HOME if set.
func UserConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, "bls", "config.toml")
}

func localConfigPath(dir string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, LocalFileName)
}

// TOML renders the configuration as a TOML document.
func (c *Config) TOML() ([]byte, error) {
	out, err := gotoml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return out, nil
}
