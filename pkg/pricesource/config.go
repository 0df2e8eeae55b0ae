package pricesource

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"coinwatch-api/pkg/confkit"
)

const (
	DefaultCurrency = "INR"
	DefaultLimit    = 100
)

// Config describes how to reach the price API and what to request from it.
type Config struct {
	URL      string `yaml:"url"`
	APIKey   string `yaml:"api_key"`
	Currency string `yaml:"currency"`
	Limit    int    `yaml:"limit"`

	TimeoutRaw string        `yaml:"timeout"`
	Timeout    time.Duration `yaml:"-"`
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price source config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// MustLoad reads etc/pricesource.yaml from the project root and panics on error.
func MustLoad() *Config {
	path := confkit.MustProjectPath("etc/pricesource.yaml")
	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfigFromReader constructs a Config from an io.Reader. ${VAR}
// placeholders are expanded from the environment.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	confkit.LoadDotenvOnce()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read price source config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal price source config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	c.URL = strings.TrimSpace(os.ExpandEnv(c.URL))
	c.APIKey = strings.TrimSpace(os.ExpandEnv(c.APIKey))
	c.Currency = strings.ToUpper(strings.TrimSpace(os.ExpandEnv(c.Currency)))
	c.TimeoutRaw = strings.TrimSpace(os.ExpandEnv(c.TimeoutRaw))

	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if c.Limit == 0 {
		c.Limit = DefaultLimit
	}
	if c.TimeoutRaw != "" {
		d, err := time.ParseDuration(c.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("price source: invalid timeout %q: %w", c.TimeoutRaw, err)
		}
		if d <= 0 {
			return fmt.Errorf("price source: timeout must be positive, got %s", d)
		}
		c.Timeout = d
	}
	return nil
}

// Validate ensures the configuration is structurally sound.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("price source config: url is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("price source config: api_key is required")
	}
	if c.Limit < 0 {
		return fmt.Errorf("price source config: limit must be positive, got %d", c.Limit)
	}
	return nil
}

// Request returns the list request the refresh loop sends each tick.
func (c *Config) Request() ListRequest {
	return TopByRank(c.Currency, c.Limit)
}

// BuildClient instantiates a client for this configuration.
func (c *Config) BuildClient() *Client {
	opts := []Option{WithBaseURL(c.URL), WithAPIKey(c.APIKey)}
	if c.Timeout > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: c.Timeout}))
	}
	return NewClient(opts...)
}
