package mockapi

import (
	"flag"
	"io"
	"time"

	"github.com/marmota/failboard/internal/configfile"
	"github.com/marmota/failboard/internal/flagx"
	"github.com/marmota/failboard/internal/timex"
)

// Config holds runtime settings for the fake backend.
type Config struct {
	Addr          string
	SecretKey     string
	TokenValidity time.Duration
	SeedUsername  string
	SeedPassword  string
	SeedName      string
	SeedFailures  bool
	LogLevel      string
}

func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SecretKey = "failboard-dev-secret"
	c.TokenValidity = 60 * time.Minute
	c.SeedUsername = "admin"
	c.SeedPassword = "admin"
	c.SeedName = "Administrador"
	c.SeedFailures = true
	c.LogLevel = "info"
}

type fileConfig struct {
	Addr          string         `json:"addr" yaml:"addr"`
	SecretKey     string         `json:"secret_key" yaml:"secret_key"`
	TokenValidity timex.Duration `json:"token_validity" yaml:"token_validity"`
	SeedUsername  string         `json:"seed_username" yaml:"seed_username"`
	SeedPassword  string         `json:"seed_password" yaml:"seed_password"`
	SeedName      string         `json:"seed_name" yaml:"seed_name"`
	SeedFailures  *bool          `json:"seed_failures" yaml:"seed_failures"`
	LogLevel      string         `json:"log_level" yaml:"log_level"`
}

// LoadConfig applies defaults, then the file given with -c/-config, then
// flags: -a addr, -k secret, -v validity (e.g. 15m), -u/-p seed credentials,
// -l log level.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	var fc fileConfig
	if err := configfile.Load(flagx.ConfigPath(args), &fc); err != nil {
		return nil, err
	}
	overlay(&cfg.Addr, fc.Addr)
	overlay(&cfg.SecretKey, fc.SecretKey)
	overlay(&cfg.SeedUsername, fc.SeedUsername)
	overlay(&cfg.SeedPassword, fc.SeedPassword)
	overlay(&cfg.SeedName, fc.SeedName)
	overlay(&cfg.LogLevel, fc.LogLevel)
	if fc.TokenValidity.Duration > 0 {
		cfg.TokenValidity = fc.TokenValidity.Duration
	}
	if fc.SeedFailures != nil {
		cfg.SeedFailures = *fc.SeedFailures
	}

	fs := flag.NewFlagSet("mockapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "JWT signing key")
	fs.DurationVar(&cfg.TokenValidity, "v", cfg.TokenValidity, "token validity")
	fs.StringVar(&cfg.SeedUsername, "u", cfg.SeedUsername, "seed username")
	fs.StringVar(&cfg.SeedPassword, "p", cfg.SeedPassword, "seed password")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-a", "-k", "-v", "-u", "-p", "-l"})); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
