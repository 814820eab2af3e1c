package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override values from the config file.
const (
	EnvTMDBAPIKey         = "TMDB_API_KEY"
	EnvSpotifyClientID    = "SPOTIFY_CLIENT_ID"
	EnvSpotifyRedirectURI = "SPOTIFY_REDIRECT_URI"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Storage     StorageConfig     `toml:"storage"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	UI          UIConfig          `toml:"ui"`
	HTTP        HTTPConfig        `toml:"http"`
	Logging     LoggingConfig     `toml:"logging"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	TMDB    TMDBConfig    `toml:"tmdb"`
	Spotify SpotifyConfig `toml:"spotify"`
}

// TMDBConfig contains the catalog API key and endpoints.
type TMDBConfig struct {
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
	ImageBaseURL string `toml:"image_base_url"`
}

// SpotifyConfig contains the implicit grant client settings.
//
// No client secret: tokens come back in the redirect fragment.
type SpotifyConfig struct {
	ClientID    string   `toml:"client_id"`
	RedirectURI string   `toml:"redirect_uri"`
	Scopes      []string `toml:"scopes"`
	BaseURL     string   `toml:"base_url"`
}

// StorageConfig selects the backend used to persist the access token pair.
type StorageConfig struct {
	Driver string `toml:"driver"` // file, sqlite or memory
	Path   string `toml:"path"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains settings for the local OAuth callback server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// UIConfig contains interactive view settings.
type UIConfig struct {
	DebounceMS int `toml:"debounce_ms"`
	PageSize   int `toml:"page_size"`
}

// HTTPConfig contains outbound API client settings.
type HTTPConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"` // 0 disables pacing
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Debounce returns the configured search debounce delay.
func (c *Config) Debounce() time.Duration {
	if c.UI.DebounceMS <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(c.UI.DebounceMS) * time.Millisecond
}

// Addr returns the host:port the callback server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks the values a command cannot run without.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.HTTP.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests_per_second must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the configuration to path as TOML.
func SaveConfig(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
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

// LoadEnv loads .env files (missing files are ignored) and applies credential overrides to config.
func LoadEnv(config *Config, paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
	ApplyEnv(config)
}

// ApplyEnv overrides credentials with non-empty environment variables.
func ApplyEnv(config *Config) {
	if v := os.Getenv(EnvTMDBAPIKey); v != "" {
		config.Credentials.TMDB.APIKey = v
	}
	if v := os.Getenv(EnvSpotifyClientID); v != "" {
		config.Credentials.Spotify.ClientID = v
	}
	if v := os.Getenv(EnvSpotifyRedirectURI); v != "" {
		config.Credentials.Spotify.RedirectURI = v
	}
}
