package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	UI      UIConfig      `mapstructure:"ui"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds book store connection configuration
type ServerConfig struct {
	URL     string        `mapstructure:"url"`     // Store base URL, e.g. http://localhost:8080/api
	Timeout time.Duration `mapstructure:"timeout"` // Per-request timeout
}

// UIConfig holds UI configuration
type UIConfig struct {
	PageSize    int  `mapstructure:"page_size"`    // Books per page
	FuzzySearch bool `mapstructure:"fuzzy_search"` // Typo-tolerant filtering
}

// CacheConfig holds page cache configuration
type CacheConfig struct {
	Dir string `mapstructure:"dir"` // Empty = memory-only cache
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:     "http://localhost:8080/api",
			Timeout: 10 * time.Second,
		},
		UI: UIConfig{
			PageSize:    10,
			FuzzySearch: false,
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "shelftui", "shelftui.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "shelftui", "shelftui.log")
	}
}

// defaultCachePath returns the default page cache directory for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "shelftui", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".cache", "shelftui")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "shelftui")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "shelftui")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("SHELFTUI")
	viper.AutomaticEnv()

	viper.SetDefault("server.url", cfg.Server.URL)
	viper.SetDefault("server.timeout", cfg.Server.Timeout)
	viper.SetDefault("ui.page_size", cfg.UI.PageSize)
	viper.SetDefault("ui.fuzzy_search", cfg.UI.FuzzySearch)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("logging.file", cfg.Logging.File)
	viper.SetDefault("logging.level", cfg.Logging.Level)

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine; defaults apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.UI.PageSize < 1 || cfg.UI.PageSize > 100 {
		cfg.UI.PageSize = 10
	}

	return cfg, nil
}
