package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Search   SearchConfig   `yaml:"search"`
	Log      LogConfig      `yaml:"log"`
	Audit    AuditConfig    `yaml:"audit"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
	// APIBaseURL is where the server-rendered pages reach the proxy routes.
	// Defaults to the loopback address of this process.
	APIBaseURL string `yaml:"api_base_url"`
	// TrustedProxies are reverse proxies whose X-Forwarded-For is honoured.
	// Loopback is always trusted so the pages keep the visitor's address.
	TrustedProxies []string `yaml:"trusted_proxies"`

	CacheTTL time.Duration `yaml:"-"`
}

// UpstreamConfig describes the third-party social API.
type UpstreamConfig struct {
	BaseURL        string        `yaml:"base_url"`
	APIKey         string        `yaml:"-"` // only ever read from SOCIAL_API_KEY
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"`
	HTTPProxy      string        `yaml:"http_proxy"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"`
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// RedisConfig enables the second cache tier when URL is set.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// SearchConfig bounds free-text search input.
type SearchConfig struct {
	MaxQueryLength int `yaml:"max_query_length"`
}

// LogConfig selects log level and output format (json or console).
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AuditConfig holds the configuration for the lookup audit worker pool.
type AuditConfig struct {
	Enabled   bool `yaml:"enabled"`
	Workers   int  `yaml:"workers"`
	QueueSize int  `yaml:"queue_size"`
}

// Load reads the configuration from the given path, applies environment
// overrides and defaults, and validates required settings. A missing file is
// not an error; the upstream credentials usually come from the environment.
func Load(path string) (*Config, error) {
	var cfg Config
	cfg.Audit.Enabled = true

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SOCIAL_API_BASE_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	cfg.Upstream.APIKey = os.Getenv("SOCIAL_API_KEY")
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	if cfg.Server.APIBaseURL == "" {
		cfg.Server.APIBaseURL = fmt.Sprintf("http://127.0.0.1:%d/api", cfg.Server.Port)
	}
	cfg.Server.APIBaseURL = strings.TrimRight(cfg.Server.APIBaseURL, "/")
	cfg.Server.TrustedProxies = withLoopback(cfg.Server.TrustedProxies)

	cfg.Upstream.BaseURL = strings.TrimRight(cfg.Upstream.BaseURL, "/")
	if cfg.Upstream.TimeoutSeconds > 0 {
		cfg.Upstream.Timeout = time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "file:livecounter.db?cache=shared"
	}

	if cfg.Search.MaxQueryLength <= 0 {
		cfg.Search.MaxQueryLength = 100
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	if cfg.Audit.Workers <= 0 {
		cfg.Audit.Workers = 1
	}
	if cfg.Audit.QueueSize <= 0 {
		cfg.Audit.QueueSize = 256
	}
}

func withLoopback(proxies []string) []string {
	out := append([]string(nil), proxies...)
	for _, lo := range []string{"127.0.0.1", "::1"} {
		if !slices.Contains(out, lo) {
			out = append(out, lo)
		}
	}
	return out
}

// Validate reports startup-time configuration faults.
func (c *Config) Validate() error {
	var missing []string
	if c.Upstream.BaseURL == "" {
		missing = append(missing, "SOCIAL_API_BASE_URL")
	}
	if c.Upstream.APIKey == "" {
		missing = append(missing, "SOCIAL_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required for the postgres driver")
	}
	return nil
}
