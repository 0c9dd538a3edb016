// Package config loads runtime configuration for the failboard CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the failures API
//	-t int      request timeout (seconds)
//	-s string   session database path (":memory:" keeps the session in memory)
//	-l string   log level: debug, info, warn, error
//	-m string   address for the Prometheus /metrics endpoint (empty disables it)
//
// # File schema
//
// Durations are strings like "30s" or integer nanoseconds:
//
//	{
//	  "base_url": "http://localhost:8080",
//	  "request_timeout": "30s",
//	  "token_header": "Authorization",
//	  "token_prefix": "Bearer",
//	  "login_path": "/user/login",
//	  "token_ttl": "60m",
//	  "session_db": "session.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "metrics_addr": ""
//	}
package config
