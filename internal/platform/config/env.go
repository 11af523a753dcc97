// Package config reads process configuration from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv merges variables from the given files (".env" when none are
// named) into the environment. Missing files are ignored and variables
// already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Console configures the web console (cmd/server) and the CLI.
type Console struct {
	Port          string        `env:"PORT"                envDefault:"8080"`
	APIURL        string        `env:"PROFILE_API_URL"     envDefault:"http://localhost:8081/v1"`
	APITimeout    time.Duration `env:"PROFILE_API_TIMEOUT" envDefault:"10s"`
	CacheDir      string        `env:"PROFILE_CACHE_DIR"   envDefault:".profile-cache"`
	FlashSecret   string        `env:"FLASH_SECRET"`
	CookieSecure  bool          `env:"COOKIE_SECURE"       envDefault:"false"`
	AllowedOrigin []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// LoadConsole parses Console settings. An unset FLASH_SECRET is replaced with
// a random per-process value, so notices do not survive a restart.
func LoadConsole() (Console, error) {
	var cfg Console
	if err := ParseEnv(&cfg); err != nil {
		return Console{}, err
	}
	if cfg.APITimeout <= 0 {
		return Console{}, fmt.Errorf("parse env: PROFILE_API_TIMEOUT must be positive, got %s", cfg.APITimeout)
	}
	if cfg.FlashSecret == "" {
		secret, err := randomSecret(32)
		if err != nil {
			return Console{}, err
		}
		cfg.FlashSecret = secret
	}
	return cfg, nil
}

// RemoteAPI configures the reference profile API (cmd/profile-api).
type RemoteAPI struct {
	Port        string `env:"PORT"                           envDefault:"8081"`
	ProjectID   string `env:"FIREBASE_PROJECT_ID"`
	Credentials string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
}

// UseFirestore reports whether a Firestore project is configured.
func (c RemoteAPI) UseFirestore() bool {
	return c.ProjectID != ""
}

// LoadRemoteAPI parses RemoteAPI settings.
func LoadRemoteAPI() (RemoteAPI, error) {
	var cfg RemoteAPI
	if err := ParseEnv(&cfg); err != nil {
		return RemoteAPI{}, err
	}
	return cfg, nil
}

func randomSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
