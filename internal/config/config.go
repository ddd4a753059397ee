// Package config resolves client settings from flags, PROGLO_* environment variables and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds settings shared by all commands.
type Config struct {
	DataDir        string
	Backend        string
	DSN            string
	SealPassphrase string
	SessionTTL     time.Duration

	LoginMaxFailures int
	LoginWindow      time.Duration
	LoginBlock       time.Duration

	LogLevel string
}

// DefaultDataDir returns $XDG_CONFIG_HOME/proglo or ~/.config/proglo.
func DefaultDataDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "proglo")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "proglo")
}

// LoadEnvFile loads variables from path without overriding the environment. A missing file is ignored.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Parse reads global flags from args and returns the config and the remaining arguments.
// Environment variables provide the flag defaults.
func Parse(args []string, output io.Writer) (*Config, []string, error) {
	ttl, err := envDuration("PROGLO_SESSION_TTL", 720*time.Hour)
	if err != nil {
		return nil, nil, err
	}
	window, err := envDuration("PROGLO_LOGIN_WINDOW", 15*time.Minute)
	if err != nil {
		return nil, nil, err
	}
	block, err := envDuration("PROGLO_LOGIN_BLOCK", 15*time.Minute)
	if err != nil {
		return nil, nil, err
	}
	maxFails, err := envInt("PROGLO_LOGIN_MAX_FAILURES", 5)
	if err != nil {
		return nil, nil, err
	}

	c := &Config{}
	fs := flag.NewFlagSet("proglo", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&c.DataDir, "data-dir", envString("PROGLO_DATA_DIR", DefaultDataDir()), "directory for local data")
	fs.StringVar(&c.Backend, "backend", envString("PROGLO_BACKEND", BackendFile), "storage backend: file, memory or postgres")
	fs.StringVar(&c.DSN, "dsn", envString("PROGLO_DSN", ""), "PostgreSQL DSN for the postgres backend")
	fs.StringVar(&c.SealPassphrase, "seal-passphrase", envString("PROGLO_SEAL_PASSPHRASE", ""), "encrypt stored values with this passphrase")
	fs.DurationVar(&c.SessionTTL, "session-ttl", ttl, "session lifetime")
	fs.IntVar(&c.LoginMaxFailures, "login-max-failures", maxFails, "failed logins before a temporary block")
	fs.DurationVar(&c.LoginWindow, "login-window", window, "window in which failed logins are counted")
	fs.DurationVar(&c.LoginBlock, "login-block", block, "duration of a login block")
	fs.StringVar(&c.LogLevel, "log-level", envString("PROGLO_LOG_LEVEL", "warn"), "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	return c, fs.Args(), nil
}

// Validate checks option consistency.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile:
		if c.DataDir == "" {
			return errors.New("config: empty data dir")
		}
	case BackendMemory:
	case BackendPostgres:
		if c.DSN == "" {
			return errors.New("config: postgres backend needs -dsn")
		}
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: session ttl must be positive")
	}
	if c.LoginMaxFailures <= 0 {
		return errors.New("config: login max failures must be positive")
	}
	return nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func envInt(key string, def int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
