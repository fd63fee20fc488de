package config

import (
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Defaults of keys whose zero value is meaningful: a prefix limit of 0
// scores every blueprint and a non-positive progress interval disables
// progress logging. They are registered with viper so an explicit zero
// in the config file or environment survives.
const (
	DefaultPrefixLimit      = 3
	DefaultProgressInterval = time.Second
)

// setViperDefaults registers the defaults that SetDefaults cannot tell
// apart from an explicit zero
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("optimizer.prefix_limit", DefaultPrefixLimit)
	v.SetDefault("optimizer.progress_interval", DefaultProgressInterval)
}

// SetDefaults fills zero-valued fields with their defaults. Prefix limit
// and progress interval are defaulted through viper instead.
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "blueprint-runs.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "blueprints"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "blueprints"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Optimizer defaults
	if cfg.Optimizer.Workers == 0 {
		cfg.Optimizer.Workers = runtime.NumCPU()
	}
	if cfg.Optimizer.QualityHorizon == 0 {
		cfg.Optimizer.QualityHorizon = 24
	}
	if cfg.Optimizer.ProductHorizon == 0 {
		cfg.Optimizer.ProductHorizon = 32
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
