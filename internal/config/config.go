// Package config loads the service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full service configuration.
type Config struct {
	AuthURL       string `env:"AUTH_URL,required,notEmpty"`
	AuthSecret    string `env:"AUTH_SECRET,required,notEmpty"`
	AdminEmail    string `env:"ADMIN_EMAIL,required,notEmpty"`
	AdminPassword string `env:"ADMIN_PASSWORD,required,notEmpty"`

	Addr       string        `env:"ADDR" envDefault:":8080"`
	ValkeyAddr string        `env:"VALKEY_ADDR"`
	CORSOrigin string        `env:"CORS_ORIGIN" envDefault:"http://127.0.0.1:5173"`
	FrameRate  int           `env:"FRAME_RATE" envDefault:"30"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// FrameInterval is the period between background frames.
func (c Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.FrameRate)
}

// MissingError lists required keys that were unset or empty.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "missing required configuration: " + strings.Join(e.Keys, ", ")
}

// Load reads the given .env files (a missing file is not an error; values
// already in the environment win) and parses the environment into a Config.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Printf("[Config] %s not found, using process environment", f)
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse()
}

// Parse reads the process environment into a Config.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		if missing := missingKeys(err); len(missing) > 0 {
			return Config{}, &MissingError{Keys: missing}
		}
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.FrameRate <= 0 {
		return Config{}, fmt.Errorf("FRAME_RATE must be positive, got %d", cfg.FrameRate)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return cfg, nil
}

func missingKeys(err error) []string {
	var errs []error
	var agg env.AggregateError
	var aggPtr *env.AggregateError
	switch {
	case errors.As(err, &agg):
		errs = agg.Errors
	case errors.As(err, &aggPtr):
		errs = aggPtr.Errors
	default:
		return nil
	}
	seen := make(map[string]bool)
	for _, e := range errs {
		switch e := e.(type) {
		case env.EnvVarIsNotSetError:
			seen[e.Key] = true
		case env.EmptyEnvVarError:
			seen[e.Key] = true
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
