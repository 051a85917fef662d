package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/expomatematica/quizmat/internal/quiz"
	"github.com/expomatematica/quizmat/internal/store"
)

// ErrInvalid is wrapped by every configuration error.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all quizmat configuration.
type Config struct {
	// DBPath is the SQLite leaderboard database.
	DBPath string `yaml:"db_path"`

	Quiz  quiz.Config `yaml:"quiz"`
	Redis RedisConfig `yaml:"redis"`
	Log   LogConfig   `yaml:"log"`
}

// RedisConfig configures the optional leaderboard mirror. An empty Addr
// disables it.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"` // Default: "quizmat:leaderboard"
}

// LogConfig configures the JSON log file.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"` // debug, info, warn or error. Default: info
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, l.Level)
	}
	return lvl, nil
}

// Default returns a Config with the reference quiz sizing and paths under
// the XDG base directories.
func Default() Config {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		dbPath = "quizmat.db"
	}
	logFile := "quizmat.log"
	if dir, err := stateDir(); err == nil {
		logFile = filepath.Join(dir, "quizmat", "quizmat.log")
	}

	return Config{
		DBPath: dbPath,
		Quiz:   quiz.DefaultConfig(),
		Redis:  RedisConfig{Key: "quizmat:leaderboard"},
		Log:    LogConfig{File: logFile, Level: "info"},
	}
}

// DefaultPath resolves the config file path in priority order:
// 1. QUIZMAT_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/quizmat/config.yaml
// 3. ~/.config/quizmat/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("QUIZMAT_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "quizmat", "config.yaml"), nil
}

func stateDir() (string, error) {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state"), nil
}

// Load builds a Config from defaults, the YAML file at path and then
// environment variables. An empty path means DefaultPath, which may be
// absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
		explicit = os.Getenv("QUIZMAT_CONFIG") != ""
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file; defaults and env only.
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides cfg with QUIZMAT_* environment variables.
func applyEnv(cfg *Config) error {
	if p := os.Getenv("QUIZMAT_DB"); p != "" {
		cfg.DBPath = p
	}
	if v := os.Getenv("QUIZMAT_TIME_BUDGET"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: QUIZMAT_TIME_BUDGET=%q is not a number of seconds", ErrInvalid, v)
		}
		cfg.Quiz.TimeBudgetSeconds = n
	}
	if a := os.Getenv("QUIZMAT_REDIS_ADDR"); a != "" {
		cfg.Redis.Addr = a
	}
	if l := os.Getenv("QUIZMAT_LOG_LEVEL"); l != "" {
		cfg.Log.Level = l
	}
	if f := os.Getenv("QUIZMAT_LOG_FILE"); f != "" {
		cfg.Log.File = f
	}
	return nil
}

// Validate checks the quiz sizing, the database path and the log level.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path is required", ErrInvalid)
	}
	if err := c.Quiz.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("%w: redis db must not be negative", ErrInvalid)
	}
	return nil
}
