package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv(EnvSeedMode, "")
	t.Setenv(EnvSeedOpsData, "")
	os.Unsetenv(EnvSeedOpsData)
	cfg, err := Load("non-existent-config.yaml")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	assertDefaultConfig(t, cfg)
}

func TestLoadWithPartialConfigAppliesDefaults(t *testing.T) {
	t.Setenv(EnvSeedMode, "")
	t.Setenv(EnvSeedOpsData, "")
	os.Unsetenv(EnvSeedOpsData)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  address: ":9090"
database:
  driver: ""
  sqlite: {}
seed:
  ops_data: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Address != ":9090" {
		t.Fatalf("expected server address :9090, got %s", cfg.Server.Address)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected database driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Database.SQLite.Path != "data/opsboard.db" {
		t.Fatalf("expected sqlite path data/opsboard.db, got %s", cfg.Database.SQLite.Path)
	}
	if !cfg.Seed.OpsData {
		t.Fatalf("expected ops_data true from file")
	}
	if cfg.Seed.Mode != SeedModeIfEmpty || cfg.Seed.RandomSeed != 42 {
		t.Fatalf("expected seed defaults, got %+v", cfg.Seed)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("seed:\n  flavour: vanilla\n"), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvSeedMode, "")
	t.Setenv(EnvSeedOpsData, "")
	os.Unsetenv(EnvSeedOpsData)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	assertDefaultConfig(t, cfg)
}

func TestLoadRejectsInvalidSeedMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("seed:\n  mode: sometimes\n"), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for invalid seed mode")
	}
}

func TestSeedEnvOverrides(t *testing.T) {
	t.Setenv(EnvSeedOpsData, "TRUE")
	t.Setenv(EnvSeedMode, "Always")

	cfg, err := Load("non-existent-config.yaml")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.Seed.OpsData {
		t.Fatalf("expected SEED_OPS_DATA to enable ops data")
	}
	if cfg.Seed.Mode != SeedModeAlways {
		t.Fatalf("expected mode always, got %s", cfg.Seed.Mode)
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "1", "YES", " on "} {
		if !ParseBool(v) {
			t.Errorf("ParseBool(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "false", "0", "nope"} {
		if ParseBool(v) {
			t.Errorf("ParseBool(%q) = true, want false", v)
		}
	}
}

func assertDefaultConfig(t *testing.T, cfg *Config) {
	t.Helper()
	if cfg == nil {
		t.Fatalf("config is nil")
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("expected default address :8080, got %s", cfg.Server.Address)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected default driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Seed.OpsData {
		t.Fatalf("expected ops_data off by default")
	}
	if cfg.Storage.Type != "local" {
		t.Fatalf("expected local storage by default, got %s", cfg.Storage.Type)
	}
}
