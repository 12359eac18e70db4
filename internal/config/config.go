package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spf13/viper"

	"github.com/knobase/kb/internal/constants"
)

// Config is the on-disk CLI configuration. It decides where notes are
// persisted and how the API server runs; the knowledge data itself lives in
// the configured store, not here.
type Config struct {
	DataDir     string `yaml:"datadir"      json:"data_dir"`
	Backend     string `yaml:"backend"      json:"backend"`
	DSN         string `yaml:"dsn"          json:"dsn"`
	ServerAddr  string `yaml:"server_addr"  json:"server_addr"`
	SiteDir     string `yaml:"sitedir"      json:"site_dir"`
	TokenSecret string `yaml:"token_secret" json:"token_secret"`
}

const defaultServerAddr = ":8787"

var ValidBackends = map[string]bool{
	"file":     true,
	"sqlite":   true,
	"postgres": true,
	"memory":   true,
}

func ValidateBackend(backend string) error {
	if _, valid := ValidBackends[backend]; valid {
		return nil
	}
	return fmt.Errorf(
		"invalid backend: %q. Please choose from 'file', 'sqlite', 'postgres', or 'memory'",
		backend,
	)
}

func defaults(home string) *Config {
	return &Config{
		DataDir:    filepath.Join(home, strings.Trim(constants.ConfigDir, "/"), "data"),
		Backend:    "file",
		ServerAddr: defaultServerAddr,
	}
}

func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaults(home)
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ensureDefaults(home)
	if err := ValidateBackend(cfg.Backend); err != nil {
		return nil, err
	}

	cfg.syncViper()
	return cfg, nil
}

func (cfg *Config) ensureDefaults(home string) {
	base := defaults(home)
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = base.DataDir
	}
	if strings.TrimSpace(cfg.Backend) == "" {
		cfg.Backend = base.Backend
	}
	if strings.TrimSpace(cfg.ServerAddr) == "" {
		cfg.ServerAddr = base.ServerAddr
	}
}

// StoreLocation resolves the backend-specific location argument: the data
// directory for file stores, the DSN for database-backed ones.
func (cfg *Config) StoreLocation() string {
	switch cfg.Backend {
	case "sqlite", "postgres":
		return cfg.DSN
	default:
		return cfg.DataDir
	}
}

func (cfg *Config) syncViper() {
	viper.Set("datadir", cfg.DataDir)
	viper.Set("backend", cfg.Backend)
	viper.Set("dsn", cfg.DSN)
	viper.Set("server_addr", cfg.ServerAddr)
	viper.Set("sitedir", cfg.SiteDir)
	viper.Set("token_secret", cfg.TokenSecret)
}

func (cfg *Config) GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

func (cfg *Config) ChangeBackend(backend string) error {
	if err := ValidateBackend(backend); err != nil {
		return err
	}
	cfg.Backend = backend
	return cfg.Save()
}

func (cfg *Config) Save() error {
	if err := ValidateBackend(cfg.Backend); err != nil {
		return err
	}

	cfg.syncViper()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}
