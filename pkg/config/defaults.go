package config

// ApplyDefaults fills in any configuration fields left unset by the config
// file and environment with sensible defaults.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyDiskDefaults(&cfg.Disk)
	applyMetricsDefaults(&cfg.Metrics)
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyDiskDefaults(cfg *DiskConfig) {
	if cfg.Format == "" {
		cfg.Format = "binary"
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Enabled && cfg.Address == "" {
		cfg.Address = ":9090"
	}
}

// GetDefaultConfig returns a Config with every field set to its default
// value. Useful for generating sample config files and for tests.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Disk: DiskConfig{
			Path:   "swicc.disk",
			Format: "binary",
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
