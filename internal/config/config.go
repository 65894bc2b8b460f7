// Package config loads daemon configuration from a YAML file, .env files and
// environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"osint-pivot/internal/logger"
)

// Config is the root daemon configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Browser   BrowserConfig   `yaml:"browser"`
	OTX       OTXConfig       `yaml:"otx"`
	Dispatch  DispatchConfig  `yaml:"dispatch"`
	Templates TemplatesConfig `yaml:"templates"`
	Logging   logger.Config   `yaml:"logging"`
}

// ServerConfig configures the HTTP message endpoint.
type ServerConfig struct {
	Port              string        `yaml:"port" env:"OSINT_PORT"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig selects and configures the settings store.
type StoreConfig struct {
	Driver     string      `yaml:"driver" env:"STORE_DRIVER"`
	SQLitePath string      `yaml:"sqlite_path" env:"SQLITE_PATH"`
	Redis      RedisConfig `yaml:"redis"`
}

// RedisConfig configures the Redis settings store.
type RedisConfig struct {
	Address   string `yaml:"address" env:"REDIS_ADDRESS"`
	Password  string `yaml:"password" env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db" env:"REDIS_DB"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX"`
}

// BrowserConfig configures how tabs are launched.
type BrowserConfig struct {
	Command        string   `yaml:"command" env:"BROWSER_COMMAND"`
	Args           []string `yaml:"args" env:"BROWSER_ARGS"`
	DryRun         bool     `yaml:"dry_run" env:"BROWSER_DRY_RUN"`
	OpensPerSecond float64  `yaml:"opens_per_second" env:"BROWSER_OPENS_PER_SECOND"`
	Burst          int      `yaml:"burst"`
}

// OTXConfig configures the paginated OTX job loop.
type OTXConfig struct {
	PageBudget int           `yaml:"page_budget" env:"OTX_PAGE_BUDGET"`
	BudgetStep int           `yaml:"budget_step" env:"OTX_BUDGET_STEP"`
	PageDelay  time.Duration `yaml:"page_delay" env:"OTX_PAGE_DELAY"`
}

// DispatchConfig configures keyword fan-out and the per-host throttle.
// RatePerMinute 0 leaves the throttle off.
type DispatchConfig struct {
	Stagger         time.Duration `yaml:"stagger" env:"DISPATCH_STAGGER"`
	DefaultKeywords []string      `yaml:"default_keywords" env:"DISPATCH_DEFAULT_KEYWORDS"`
	FallbackKeyword string        `yaml:"fallback_keyword"`
	RatePerMinute   int           `yaml:"rate_per_minute" env:"DISPATCH_RATE_PER_MINUTE"`
	Burst           int           `yaml:"burst"`
}

// TemplatesConfig holds values substituted into lookup URLs.
type TemplatesConfig struct {
	VirusTotalAPIKey string `yaml:"virustotal_api_key" env:"VIRUSTOTAL_API_KEY"`
}

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// DefaultKeywords is the built-in keyword list used when no custom list is set.
var DefaultKeywords = []string{
	"password", "secret", "token", "api_key", "apikey",
	"access_key", "client_secret", "private_key", "auth", "credentials",
}

var (
	ErrUnknownDriver = errors.New("unknown store driver")
	ErrInvalidValue  = errors.New("invalid config value")
)

// Load reads path (optional), then .env files, then env overrides, and
// fills in defaults for anything left unset.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles loads ENV_FILE if set, otherwise .env.local and .env.
// Missing files are not an error.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// SetDefaults fills zero values.
func (c *Config) SetDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8765"
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}

	if c.Store.Driver == "" {
		c.Store.Driver = DriverSQLite
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = "osint.db"
	}
	if c.Store.Redis.KeyPrefix == "" {
		c.Store.Redis.KeyPrefix = "osint:settings:"
	}

	if c.Browser.Command == "" {
		c.Browser.Command = "xdg-open"
	}
	if c.Browser.OpensPerSecond == 0 {
		c.Browser.OpensPerSecond = 10
	}
	if c.Browser.Burst == 0 {
		c.Browser.Burst = 5
	}

	if c.OTX.PageBudget == 0 {
		c.OTX.PageBudget = 5
	}
	if c.OTX.BudgetStep == 0 {
		c.OTX.BudgetStep = 5
	}
	if c.OTX.PageDelay == 0 {
		c.OTX.PageDelay = 5 * time.Second
	}

	if c.Dispatch.Stagger == 0 {
		c.Dispatch.Stagger = 300 * time.Millisecond
	}
	// nil means unset; an explicit empty list is kept so the fallback keyword applies.
	if c.Dispatch.DefaultKeywords == nil {
		c.Dispatch.DefaultKeywords = append([]string(nil), DefaultKeywords...)
	}
	if c.Dispatch.FallbackKeyword == "" {
		c.Dispatch.FallbackKeyword = "password"
	}
	if c.Dispatch.Burst == 0 {
		c.Dispatch.Burst = 10
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate rejects configurations the daemon cannot run with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Store.Driver)
	}
	if c.Store.Driver == DriverRedis && c.Store.Redis.Address == "" {
		return fmt.Errorf("%w: store.redis.address is required for the redis driver", ErrInvalidValue)
	}
	if c.OTX.PageBudget < 0 || c.OTX.BudgetStep < 0 || c.OTX.PageDelay < 0 {
		return fmt.Errorf("%w: otx settings must not be negative", ErrInvalidValue)
	}
	if c.Dispatch.Stagger < 0 || c.Dispatch.RatePerMinute < 0 {
		return fmt.Errorf("%w: dispatch settings must not be negative", ErrInvalidValue)
	}
	return nil
}
