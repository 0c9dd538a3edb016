package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/marmota/failboard/internal/client/httpx"
	"github.com/marmota/failboard/internal/client/session"
	"github.com/marmota/failboard/internal/common"
)

// MemorySessionDB selects the in-memory session store.
const MemorySessionDB = ":memory:"

// Config holds runtime settings for the failboard CLI.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	TokenHeader    string
	TokenPrefix    string
	LoginPath      string
	TokenTTL       time.Duration
	SessionDB      string
	LogLevel       string
	LogFormat      string
	MetricsAddr    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = httpx.DefaultBaseURL
	c.RequestTimeout = httpx.DefaultTimeout
	c.TokenHeader = common.DefaultTokenHeader
	c.TokenPrefix = common.DefaultTokenPrefix
	c.LoginPath = common.LoginPath
	c.TokenTTL = session.DefaultTTL
	c.SessionDB = "session.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.MetricsAddr = ""
}

// LoadConfig applies defaults, then the config file named in args (if any),
// then the flags in args. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base url %q", c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.SessionDB == "" {
		return fmt.Errorf("session db path must not be empty")
	}
	return nil
}

// HTTP returns the settings the API client is built from.
func (c *Config) HTTP() httpx.Config {
	return httpx.Config{
		BaseURL:     c.BaseURL,
		Timeout:     c.RequestTimeout,
		TokenHeader: c.TokenHeader,
		TokenPrefix: c.TokenPrefix,
		LoginPath:   c.LoginPath,
	}
}
