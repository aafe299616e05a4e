package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ptrumpis-ups/loader-quiz-app/internal/store"
)

// EnvPrefix is prepended to every environment variable, e.g. QUIZDRILL_DB.
const EnvPrefix = "QUIZDRILL"

// Config is the resolved application configuration.
type Config struct {
	// Quiz is the question file path. Empty selects the embedded quiz.
	Quiz    string `mapstructure:"quiz"`
	Title   string `mapstructure:"title"`
	Shuffle bool   `mapstructure:"shuffle"`
	Limit   int    `mapstructure:"limit"`

	DB  string    `mapstructure:"db"`
	Log LogConfig `mapstructure:"log"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-"`
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// flagKeys maps config keys to the cobra flag names bound to them.
var flagKeys = map[string]string{
	"quiz":      "quiz",
	"title":     "title",
	"shuffle":   "shuffle",
	"limit":     "limit",
	"db":        "db",
	"log.file":  "log-file",
	"log.level": "log-level",
}

// Load resolves the configuration. Sources in increasing priority: defaults,
// the config file, QUIZDRILL_* environment variables, flags that were set on
// the command line. configFile may be empty, in which case
// $XDG_CONFIG_HOME/quizdrill/config.yaml is read if it exists. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if err := setDefaults(v); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	if cfg.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative, got %d", cfg.Limit)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) error {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	logPath, err := DefaultLogPath()
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}

	v.SetDefault("quiz", "")
	v.SetDefault("title", "")
	v.SetDefault("shuffle", false)
	v.SetDefault("limit", 0)
	v.SetDefault("db", dbPath)
	v.SetDefault("log.file", logPath)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	return nil
}

func readConfigFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", configFile, err)
		}
		return nil
	}

	dir, err := configDir()
	if err != nil {
		return err
	}
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// configDir resolves $XDG_CONFIG_HOME/quizdrill, falling back to
// ~/.config/quizdrill.
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "quizdrill"), nil
}

// DefaultLogPath resolves $XDG_STATE_HOME/quizdrill/quizdrill.log, falling
// back to ~/.local/state/quizdrill/quizdrill.log.
func DefaultLogPath() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "quizdrill", "quizdrill.log"), nil
}
