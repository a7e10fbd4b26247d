package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Seed modes.
const (
	SeedModeAlways  = "always"
	SeedModeIfEmpty = "if_empty"
	SeedModeNever   = "never"
)

// Environment variables that override file settings.
const (
	EnvSeedOpsData = "SEED_OPS_DATA"
	EnvSeedMode    = "SEED_MODE"
)

// Config captures service level configuration loaded from config.yaml.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  StorageConfig  `yaml:"storage"`
	Seed     SeedConfig     `yaml:"seed"`
}

// RedisConfig defines Redis connection settings for distributed locking.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CORSConfig defines CORS middleware settings.
type CORSConfig struct {
	AllowOrigin      string `yaml:"allow_origin"`
	AllowMethods     string `yaml:"allow_methods"`
	AllowHeaders     string `yaml:"allow_headers"`
	AllowCredentials bool   `yaml:"allow_credentials"`
}

// ServerConfig defines HTTP server options.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// DatabaseConfig defines the database backend configuration.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig contains SQLite specific settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// MySQLConfig contains MySQL specific connection details.
type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

// PostgresConfig contains PostgreSQL specific connection details.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// StorageConfig selects the object store that holds seed catalogs.
type StorageConfig struct {
	Type  string      `yaml:"type"`
	Local LocalConfig `yaml:"local"`
	S3    S3Config    `yaml:"s3"`
}

// LocalConfig holds local storage configuration.
type LocalConfig struct {
	BasePath string `yaml:"base_path"`
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	PathStyle bool   `yaml:"path_style"`
	Prefix    string `yaml:"prefix"`
}

// SeedConfig controls demo data generation at startup.
type SeedConfig struct {
	// Mode is one of always, if_empty or never.
	Mode string `yaml:"mode"`
	// OpsData enables deployment config and service instance generation.
	OpsData    bool   `yaml:"ops_data"`
	RandomSeed uint64 `yaml:"random_seed"`
	// CatalogKey is an object key in storage; empty uses the built-in catalog.
	CatalogKey string `yaml:"catalog_key"`
}

// Load reads name (cwd first, then next to the binary), fills gaps with
// defaults and applies SEED_* environment overrides. A missing file is not an
// error: the dashboard boots on defaults.
func Load(name string) (*Config, error) {
	cfg := defaultConfig()

	if path := findConfigFile(name); path != "" {
		log.Printf("[Init] loading config from %s", path)
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	} else {
		log.Printf("[Init] config file %q not found, using defaults", name)
	}

	applyDefaults(cfg)
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeFile overlays the YAML document at path onto cfg. Unknown keys are
// rejected so a typo never silently falls back to a default.
func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	switch c.Seed.Mode {
	case SeedModeAlways, SeedModeIfEmpty, SeedModeNever:
	default:
		return fmt.Errorf("invalid seed mode %q", c.Seed.Mode)
	}
	switch c.Storage.Type {
	case "local", "s3":
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	if c.Seed.CatalogKey != "" && strings.Contains(c.Seed.CatalogKey, "..") {
		return fmt.Errorf("invalid catalog key %q", c.Seed.CatalogKey)
	}
	if c.Redis.Enabled && c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis db %d", c.Redis.DB)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Address: ":8080"},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{Path: "data/opsboard.db"},
		},
		CORS: CORSConfig{
			AllowOrigin:  "*",
			AllowMethods: "GET,POST,PUT,OPTIONS",
		},
		Storage: StorageConfig{
			Type:  "local",
			Local: LocalConfig{BasePath: "data/catalogs"},
			S3:    S3Config{Region: "us-east-1"},
		},
		Seed: SeedConfig{
			Mode:       SeedModeIfEmpty,
			RandomSeed: 42,
		},
	}
}

// applyDefaults restores defaults for values a config file blanked out.
func applyDefaults(cfg *Config) {
	def := defaultConfig()
	setIfEmpty(&cfg.Server.Address, def.Server.Address)
	setIfEmpty(&cfg.Database.Driver, def.Database.Driver)
	setIfEmpty(&cfg.Database.SQLite.Path, def.Database.SQLite.Path)
	setIfEmpty(&cfg.Storage.Type, def.Storage.Type)
	setIfEmpty(&cfg.Storage.Local.BasePath, def.Storage.Local.BasePath)
	setIfEmpty(&cfg.Storage.S3.Region, def.Storage.S3.Region)
	setIfEmpty(&cfg.Seed.Mode, def.Seed.Mode)
	if cfg.Seed.RandomSeed == 0 {
		cfg.Seed.RandomSeed = def.Seed.RandomSeed
	}
}

func setIfEmpty(dst *string, v string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = v
	}
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvSeedOpsData); ok {
		cfg.Seed.OpsData = ParseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSeedMode)); v != "" {
		cfg.Seed.Mode = strings.ToLower(v)
	}
}

// ParseBool accepts true/1/yes/on in any case; everything else is false.
func ParseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "on":
		return true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

func findConfigFile(name string) string {
	candidates := []string{name}
	if exe, err := os.Executable(); err == nil && !filepath.IsAbs(name) {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), name))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			if abs, err := filepath.Abs(c); err == nil {
				return abs
			}
			return c
		}
	}
	return ""
}
