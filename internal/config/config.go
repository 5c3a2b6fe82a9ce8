package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/glossary/internal/store"
)

// Term store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var ErrUnknownBackend = errors.New("unknown term store backend")

// Config holds application configuration loaded from flags, environment
// variables and an optional config file, in that order of precedence.
type Config struct {
	TopicsDir string `mapstructure:"topics_dir"` // directory of <topic>.txt files for the file backend
	DBPath    string `mapstructure:"db"`         // SQLite database for history and the sqlite backend
	Backend   string `mapstructure:"backend"`    // "file" or "sqlite"
	History   bool   `mapstructure:"history"`    // record practice results in the database
	Debug     bool   `mapstructure:"debug"`      // verbose development logging
	Seed      uint64 `mapstructure:"seed"`       // fixed random seed, 0 for a random one
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"topics-dir": "topics_dir",
	"db":         "db",
	"backend":    "backend",
	"history":    "history",
	"debug":      "debug",
	"seed":       "seed",
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a YAML config file (default $XDG_CONFIG_HOME/glossary/config.yaml)")
	fs.String("topics-dir", "", "Directory holding topic files (overrides GLOSSARY_TOPICS_DIR)")
	fs.String("db", "", "Path to SQLite database file (overrides GLOSSARY_DB)")
	fs.String("backend", "", "Term store backend: file or sqlite (overrides GLOSSARY_BACKEND)")
	fs.Bool("history", true, "Record practice results")
	fs.Bool("debug", false, "Enable debug logging")
	fs.Uint64("seed", 0, "Random seed for practice (0 picks one)")
}

// Load reads configuration. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}

	dataDir, err := store.DataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	v.SetDefault("topics_dir", filepath.Join(dataDir, "topics"))
	v.SetDefault("db", filepath.Join(dataDir, "glossary.db"))
	v.SetDefault("backend", BackendFile)
	v.SetDefault("history", true)
	v.SetDefault("debug", false)
	v.SetDefault("seed", 0)

	v.SetEnvPrefix("glossary")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case BackendFile, BackendSQLite:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	return &cfg, nil
}

// configDir resolves $XDG_CONFIG_HOME/glossary, falling back to ~/.config/glossary.
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "glossary"), nil
}
