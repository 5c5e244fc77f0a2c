package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	RedisURI         string
	DataspaceAddress string
	OrderRetention   time.Duration
	ShutdownTimeout  time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultShutdownTimeout = 10 * time.Second
	// Orders in redis carry a TTL; zero disables expiry in postgres.
	defaultOrderRetention = 7 * 24 * time.Hour
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		RedisURI:         getString(lookup, "REDIS_URI", ""),
		DataspaceAddress: getString(lookup, "DATASPACE_ADDRESS", ""),
		OrderRetention:   getDuration(lookup, "ORDER_RETENTION", defaultOrderRetention),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("ewhflex", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		retentionStr       = cfg.OrderRetention.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisURI, "redis", cfg.RedisURI, "Redis URI (enables redis order store)")
	fs.StringVar(&cfg.DataspaceAddress, "r", cfg.DataspaceAddress, "Dataspace connector base URL")
	fs.StringVar(&retentionStr, "order-retention", retentionStr, "Order retention period for the redis store")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.OrderRetention, err = time.ParseDuration(retentionStr); err != nil {
		return nil, fmt.Errorf("invalid order retention: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.OrderRetention < 0 {
		cfg.OrderRetention = defaultOrderRetention
	}

	if cfg.DataspaceAddress == "" {
		return nil, fmt.Errorf("dataspace address must be provided")
	}

	if cfg.DatabaseURI == "" && cfg.RedisURI == "" {
		return nil, fmt.Errorf("either database URI or redis URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
