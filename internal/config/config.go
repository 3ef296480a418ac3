package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// StorageBackend selects the durable preference store implementation
type StorageBackend string

const (
	StorageBolt StorageBackend = "bolt"
	StorageFile StorageBackend = "file"
)

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds remote catalog (TMDB) configuration
type CatalogConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	ImageBaseURL      string        `mapstructure:"image_base_url"`
	APIKey            string        `mapstructure:"api_key"`      // v3 key, sent as query param
	AccessToken       string        `mapstructure:"access_token"` // v4 read token, sent as Bearer
	Language          string        `mapstructure:"language"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds preference store configuration
type StorageConfig struct {
	Backend StorageBackend `mapstructure:"backend"`
	Path    string         `mapstructure:"path"` // bolt: db file; file: directory. Empty = memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	ShowOverview bool `mapstructure:"show_overview"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p/w500",
			Language:          "en-US",
			RequestsPerSecond: 20,
			Timeout:           15 * time.Second,
		},
		Storage: StorageConfig{
			Backend: StorageBolt,
			Path:    filepath.Join(defaultDataPath(), "prefs.db"),
		},
		UI: UIConfig{
			ShowOverview: true,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "reel.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the per-user data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return Load("")
}

// Load reads configuration from file (explicit path, or config.yaml in the
// default search paths) with REEL_* environment overrides.
func Load(configFile string) (*Config, error) {
	v := newViper()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newViper builds a viper instance seeded with defaults so that environment
// overrides apply to keys missing from the config file.
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("catalog.base_url", def.Catalog.BaseURL)
	v.SetDefault("catalog.image_base_url", def.Catalog.ImageBaseURL)
	v.SetDefault("catalog.api_key", def.Catalog.APIKey)
	v.SetDefault("catalog.access_token", def.Catalog.AccessToken)
	v.SetDefault("catalog.language", def.Catalog.Language)
	v.SetDefault("catalog.requests_per_second", def.Catalog.RequestsPerSecond)
	v.SetDefault("catalog.timeout", def.Catalog.Timeout)
	v.SetDefault("storage.backend", string(def.Storage.Backend))
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("ui.show_overview", def.UI.ShowOverview)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	// Environment variable overrides, e.g. REEL_CATALOG_API_KEY
	v.SetEnvPrefix("REEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SaveConfig writes the configuration to config.yaml in the default config directory
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, filepath.Join(DefaultConfigPath(), "config.yaml"))
}

// SaveConfigTo writes the configuration to the given file
func SaveConfigTo(cfg *Config, configFile string) error {
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("catalog.base_url", cfg.Catalog.BaseURL)
	v.Set("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	v.Set("catalog.api_key", cfg.Catalog.APIKey)
	v.Set("catalog.access_token", cfg.Catalog.AccessToken)
	v.Set("catalog.language", cfg.Catalog.Language)
	v.Set("catalog.requests_per_second", cfg.Catalog.RequestsPerSecond)
	v.Set("catalog.timeout", cfg.Catalog.Timeout.String())

	v.Set("storage.backend", string(cfg.Storage.Backend))
	v.Set("storage.path", cfg.Storage.Path)

	v.Set("ui.show_overview", cfg.UI.ShowOverview)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if catalog credentials are set
func (c *Config) IsConfigured() bool {
	return c.Catalog.APIKey != "" || c.Catalog.AccessToken != ""
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url is required")
	}
	if c.Catalog.RequestsPerSecond < 0 {
		return fmt.Errorf("catalog.requests_per_second must not be negative")
	}
	switch c.Storage.Backend {
	case StorageBolt, StorageFile:
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}
	return nil
}

// expandHome expands a leading ~ in a path
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
