// ABOUTME: Configuration management for chirp with JSON config loading.
// ABOUTME: Handles credential resolution, cache settings, and XDG paths.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// TokenEnvVar is the environment variable holding the API bearer token.
// It takes precedence over the config file unconditionally.
const TokenEnvVar = "CHIRP_BEARER_TOKEN"

// Defaults applied when the config file omits a value.
const (
	DefaultCacheTTLMinutes = 15
	DefaultLimit           = 10
)

// Config stores chirp configuration loaded from ~/.config/chirp/config.json.
// Pointer fields distinguish "unset" from an explicit zero value.
type Config struct {
	BearerToken     string `json:"bearerToken,omitempty"`
	CacheEnabled    *bool  `json:"cacheEnabled,omitempty"`
	CacheTTLMinutes int    `json:"cacheTtlMinutes,omitempty"`
	DefaultLimit    int    `json:"defaultLimit,omitempty"`
}

// IsCacheEnabled reports whether result caching is on (default true).
func (c *Config) IsCacheEnabled() bool {
	if c.CacheEnabled == nil {
		return true
	}
	return *c.CacheEnabled
}

// CacheTTL returns the configured entry time-to-live (default 15 minutes).
func (c *Config) CacheTTL() time.Duration {
	if c.CacheTTLMinutes <= 0 {
		return DefaultCacheTTLMinutes * time.Minute
	}
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// Limit returns the default result limit (default 10).
func (c *Config) Limit() int {
	if c.DefaultLimit <= 0 {
		return DefaultLimit
	}
	return c.DefaultLimit
}

// ResolveToken returns the effective bearer token and its provenance:
// "env", "config", or "none". The environment always wins.
func (c *Config) ResolveToken() (token, source string) {
	if v := os.Getenv(TokenEnvVar); v != "" {
		return v, "env"
	}
	if c.BearerToken != "" {
		return c.BearerToken, "config"
	}
	return "", "none"
}

// Get returns the string form of a config value by key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "bearerToken":
		return c.BearerToken, nil
	case "cacheEnabled":
		return strconv.FormatBool(c.IsCacheEnabled()), nil
	case "cacheTtlMinutes":
		return strconv.Itoa(int(c.CacheTTL() / time.Minute)), nil
	case "defaultLimit":
		return strconv.Itoa(c.Limit()), nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

// Set updates a config value from its string form.
func (c *Config) Set(key, value string) error {
	switch key {
	case "bearerToken":
		c.BearerToken = value
		return nil
	case "cacheEnabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cacheEnabled must be true or false, got %q", value)
		}
		c.CacheEnabled = &b
		return nil
	case "cacheTtlMinutes":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("cacheTtlMinutes must be a positive integer, got %q", value)
		}
		c.CacheTTLMinutes = n
		return nil
	case "defaultLimit":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("defaultLimit must be a positive integer, got %q", value)
		}
		c.DefaultLimit = n
		return nil
	}
	return fmt.Errorf("unknown config key %q", key)
}

// Keys lists the valid config keys in display order.
var Keys = []string{"bearerToken", "cacheEnabled", "cacheTtlMinutes", "defaultLimit"}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "chirp", "config.json"), nil
}

// GetCacheFilePath returns the result cache file path.
func GetCacheFilePath() (string, error) {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		cacheDir = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheDir, "chirp", "cache.json"), nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0600)
}
