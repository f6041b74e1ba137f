package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config carries the settings for the API process.
type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
	} `koanf:"app"`

	Postgres struct {
		DSN string `koanf:"dsn"`
	} `koanf:"postgres"`

	Security struct {
		JWTSecret string        `koanf:"jwt_secret"`
		TokenTTL  time.Duration `koanf:"token_ttl"`
	} `koanf:"security"`

	Uploads struct {
		Dir string `koanf:"dir"`
	} `koanf:"uploads"`

	CORS struct {
		AllowedOrigins []string `koanf:"allowed_origins"`
	} `koanf:"cors"`
}

// LoadConfig reads base.yaml from the config directory, overlays environment
// variables with the BOOKSTORE_ prefix (nested keys joined with __, e.g.
// BOOKSTORE_POSTGRES__DSN), applies defaults, and validates.
func LoadConfig(pathDir string) (Config, error) {
	k := koanf.New(".")

	if pathDir != "" {
		// Base file is optional so the binary runs with env vars alone.
		_ = k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser())
	}

	if err := k.Load(env.Provider("BOOKSTORE_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "BOOKSTORE_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "bookstore-api"
	}
	if c.App.HTTPAddr == "" {
		c.App.HTTPAddr = ":8080"
	}
	if c.Security.TokenTTL <= 0 {
		c.Security.TokenTTL = time.Hour
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "./uploads"
	}
}

// Validate rejects configurations that cannot serve requests safely.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Security.JWTSecret) == "" {
		return fmt.Errorf("security.jwt_secret required (set BOOKSTORE_SECURITY__JWT_SECRET)")
	}
	return nil
}
