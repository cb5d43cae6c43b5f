package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// APIBaseURL is the placement backend, e.g. http://localhost:5000.
	APIBaseURL string        `yaml:"api_base_url" validate:"required,url"`
	APITimeout time.Duration `yaml:"timeout" validate:"required,gt=0"`

	// SessionPath is the sqlite file holding the persisted credential;
	// the sealing key lives next to it as <SessionPath>.key.
	SessionPath string `yaml:"session_path" validate:"required"`

	// MetricsAddr, when set, exposes client metrics on that address.
	MetricsAddr string `yaml:"metrics_addr"`
}

// KeyPath returns the location of the credential sealing key.
func (c *Config) KeyPath() string {
	return c.SessionPath + ".key"
}

var validate = validator.New()

// LoadConfig builds the configuration from environment defaults and an
// optional YAML file, then validates it.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		APIBaseURL:  getEnv("PLACEMENT_API_URL", "http://localhost:5000"),
		APITimeout:  15 * time.Second,
		SessionPath: getEnv("PLACEMENT_SESSION_PATH", defaultSessionPath()),
		MetricsAddr: getEnv("PLACEMENT_METRICS_ADDR", ""),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "placement-session.db"
	}

	return filepath.Join(home, ".placement", "session.db")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
