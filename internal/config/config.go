// Package config loads user defaults for the fonda command line with Viper.
//
// Values are taken, highest precedence first, from command-line flags,
// FONDA_* environment variables, the config file and built-in defaults.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/fonda/pkg/errors"
)

// Keys understood in the config file, as environment variables (upper-cased
// with the FONDA_ prefix) and as flag names (with "-" for "_").
const (
	KeyFile         = "file"
	KeyRequirements = "requirements"
	KeyFastTool     = "fast_tool"
	KeyStandardTool = "standard_tool"
)

const envPrefix = "FONDA"

// Config holds the resolved settings.
type Config struct {
	File         string `mapstructure:"file"`          // Environment document; empty means search the working directory
	Requirements string `mapstructure:"requirements"`  // Manifest path
	FastTool     string `mapstructure:"fast_tool"`     // Fast environment tool
	StandardTool string `mapstructure:"standard_tool"` // Interpreter for the standard venv module

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-"`
}

// DefaultPath returns $XDG_CONFIG_HOME/fonda/config.yaml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fonda", "config.yaml"), nil
}

// Load reads configuration from configPath (or DefaultPath when empty),
// the environment and flags. A missing config file is not an error.
// flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := configPath != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			configPath = p
		}
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{KeyFile, KeyRequirements, KeyFastTool, KeyStandardTool} {
			if f := flags.Lookup(FlagName(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrap(errors.ErrCodeInternal, err, "bind flag %s", f.Name)
				}
			}
		}
	}

	var source string
	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			if !isNotFound(err) || explicit {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", configPath)
			}
		} else {
			source = v.ConfigFileUsed()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	cfg.Source = source
	return &cfg, nil
}

// FlagName returns the command-line flag bound to key.
func FlagName(key string) string {
	switch key {
	case KeyFastTool:
		return "fast-tool"
	case KeyStandardTool:
		return "standard-tool"
	default:
		return key
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyFile, "")
	v.SetDefault(KeyRequirements, "requirements.txt")
	v.SetDefault(KeyFastTool, "uv")
	v.SetDefault(KeyStandardTool, "python")
}

// isNotFound reports whether err means the config file does not exist.
// SetConfigFile makes Viper return the raw os error instead of
// ConfigFileNotFoundError.
func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return stderrors.As(err, &nf) || stderrors.Is(err, fs.ErrNotExist)
}
