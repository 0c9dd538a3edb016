package config

import (
	"github.com/marmota/failboard/internal/configfile"
	"github.com/marmota/failboard/internal/flagx"
	"github.com/marmota/failboard/internal/timex"
)

// fileConfig is the on-disk shape of Config. Keys left out of the file keep
// their current value.
type fileConfig struct {
	BaseURL        string         `json:"base_url" yaml:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	TokenHeader    string         `json:"token_header" yaml:"token_header"`
	TokenPrefix    string         `json:"token_prefix" yaml:"token_prefix"`
	LoginPath      string         `json:"login_path" yaml:"login_path"`
	TokenTTL       timex.Duration `json:"token_ttl" yaml:"token_ttl"`
	SessionDB      string         `json:"session_db" yaml:"session_db"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogFormat      string         `json:"log_format" yaml:"log_format"`
	MetricsAddr    string         `json:"metrics_addr" yaml:"metrics_addr"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	var fc fileConfig
	if err := configfile.Load(path, &fc); err != nil {
		return err
	}

	setString(&cfg.BaseURL, fc.BaseURL)
	setString(&cfg.TokenHeader, fc.TokenHeader)
	setString(&cfg.TokenPrefix, fc.TokenPrefix)
	setString(&cfg.LoginPath, fc.LoginPath)
	setString(&cfg.SessionDB, fc.SessionDB)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.TokenTTL.Duration != 0 {
		cfg.TokenTTL = fc.TokenTTL.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
