package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:5000" {
		t.Fatalf("unexpected default base url: %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("unexpected default timeout: %v", cfg.APITimeout)
	}
	if cfg.SessionPath == "" {
		t.Fatal("expected a default session path")
	}
	if cfg.KeyPath() != cfg.SessionPath+".key" {
		t.Fatalf("key path must sit next to the session file: %q", cfg.KeyPath())
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("PLACEMENT_API_URL", "http://backend.internal:8080")
	t.Setenv("PLACEMENT_SESSION_PATH", "/tmp/test-session.db")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIBaseURL != "http://backend.internal:8080" {
		t.Fatalf("env override ignored: %q", cfg.APIBaseURL)
	}
	if cfg.SessionPath != "/tmp/test-session.db" {
		t.Fatalf("env override ignored: %q", cfg.SessionPath)
	}
}

func TestLoadConfig_YAMLOverridesEnv(t *testing.T) {
	t.Setenv("PLACEMENT_API_URL", "http://from-env:1")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "api_base_url: http://from-file:2\ntimeout: 5s\nsession_path: /tmp/s.db\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIBaseURL != "http://from-file:2" {
		t.Fatalf("file must win over env: %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.APITimeout)
	}
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_base_url: not-a-url\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation to reject a bad base url")
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected missing explicit config file to error")
	}
}
