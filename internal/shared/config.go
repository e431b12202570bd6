package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file,
// with environment variables layered on top.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Providers ProvidersConfig `toml:"providers"`
	Limits    LimitsConfig    `toml:"limits"`
	Log       LogConfig       `toml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	CORSOrigin string `toml:"cors_origin"`
}

// ProvidersConfig contains settings for the two upstream providers.
type ProvidersConfig struct {
	// MusicProxyURL points at the ytmusicapi proxy serving structured metadata.
	MusicProxyURL string `toml:"music_proxy_url"`
	// YTDLPPath is the yt-dlp binary; looked up on PATH when empty.
	YTDLPPath string `toml:"ytdlp_path"`
	// Cookies is an opaque browser cookie header forwarded to yt-dlp.
	Cookies string `toml:"cookies"`
	// RatePerSecond throttles yt-dlp invocations. Zero disables throttling.
	RatePerSecond float64 `toml:"rate_per_second"`
}

// LimitsConfig contains result-count limits applied at the HTTP boundary.
type LimitsConfig struct {
	DefaultResults int `toml:"default_results"`
	MaxResults     int `toml:"max_results"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides config values from environment variables. TOML supplies
// the base; the environment wins where both are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		c.Server.CORSOrigin = v
	}
	if v := os.Getenv("YTMUSIC_PROXY_URL"); v != "" {
		c.Providers.MusicProxyURL = v
	}
	if v := os.Getenv("YTDLP_PATH"); v != "" {
		c.Providers.YTDLPPath = v
	}
	if v := os.Getenv("YOUTUBE_COOKIES"); v != "" {
		c.Providers.Cookies = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
