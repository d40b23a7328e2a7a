package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	apperrors "github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/paths"
)

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config schema version. Currently always 1.
	Version int `mapstructure:"version" yaml:"version"`

	// LibraryDir is the root of the local prompt library. Empty means the
	// current directory.
	LibraryDir string `mapstructure:"library_dir" yaml:"library_dir,omitempty"`

	// DefaultPlatforms lists the platforms targeted when --platform is not given.
	DefaultPlatforms []string `mapstructure:"default_platforms" yaml:"default_platforms"`

	// Libraries holds remote prompt libraries registered with "promptly repo add",
	// keyed by name.
	Libraries map[string]LibraryConfig `mapstructure:"libraries" yaml:"libraries,omitempty"`
}

// LibraryConfig describes a registered remote prompt library.
type LibraryConfig struct {
	// Name is the short identifier used in CLI output and lookups.
	Name string `mapstructure:"name" yaml:"name"`

	// URL is the git URL the library was cloned from.
	URL string `mapstructure:"url" yaml:"url"`

	// Path is the location of the cached clone.
	Path string `mapstructure:"path" yaml:"path"`

	// AddedAt records when the library was registered.
	AddedAt time.Time `mapstructure:"added_at" yaml:"added_at"`
}

// DefaultConfigPath returns the canonical location of the config file:
// <ConfigHome>/promptly/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(paths.ConfigDir(), "config.yaml")
}

// Init initializes Viper with promptly's defaults. Call once at startup
// before reading config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search order: current directory, then XDG config home.
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("PROMPTLY")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("default_platforms", paths.Platforms())
}

// Load reads the configuration. With a non-empty path, that exact file is
// read and must exist. With an empty path, the search locations are tried
// and defaults are used when nothing is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Implicit load without a file is fine; defaults apply.
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	// added_at round-trips through YAML as an RFC 3339 string.
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := viper.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidConfig, errors.Join(errs...))
	}

	return &cfg, nil
}
