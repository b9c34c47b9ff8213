// Package config reads the server's settings from the environment.
//
// Values come from real environment variables, optionally preloaded from a
// .env file. godotenv never overrides a variable that is already set, so the
// shell always wins over the file:
//
//	PORT=9000 codevault serve      # 9000, whatever .env says
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends for the Record Store.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds everything needed to start the server.
type Config struct {
	Port int
	// Store selects the Record Store backend: StoreMemory or StoreSQLite.
	Store string
	// DBPath is the SQLite DSN. ":memory:" keeps the database in-process.
	DBPath string
	// SeedFile is an optional YAML file of starter snippets. Empty means the
	// built-in samples.
	SeedFile string
	LogLevel slog.Level
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:     8080,
		Store:    StoreMemory,
		DBPath:   ":memory:",
		LogLevel: slog.LevelInfo,
	}
}

// Load reads envFile (if it exists) into the environment, then builds a
// Config from the environment on top of Default. A missing envFile is not an
// error; a malformed one is.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: loading %s: %w", envFile, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config using getenv to look up variables.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, fmt.Errorf("config: invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := getenv("STORE"); v != "" {
		cfg.Store = strings.ToLower(v)
	}
	if v := getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	cfg.SeedFile = getenv("SEED_FILE")

	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("config: invalid LOG_LEVEL %q", v)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that can be wrong after flags override the
// environment.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("config: unknown store %q (want %q or %q)", c.Store, StoreMemory, StoreSQLite)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	return nil
}
