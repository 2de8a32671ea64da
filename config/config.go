package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

// Config groups configuration of the kernel and every queue-related subsystem.
// Optional subsystems are pointers and disabled when nil.
type Config struct {
	Kernel KernelCfg `yaml:"kernel"`

	// Queue holds defaults applied to every queue created through the facade.
	// If nil, queues are created with zero-value defaults (no checksums).
	Queue *QueueCfg `yaml:"queue"`

	// Telemetry configures periodic statistics logs.
	// If nil, telemetry is disabled.
	Telemetry *TelemetryCfg `yaml:"telemetry"`
}

func (cfg *Config) AdjustConfig() {
	if cfg.Kernel.TickMode == "" {
		cfg.Kernel.TickMode = TickModeTimer
	}
	if cfg.Kernel.TickInterval <= 0 {
		cfg.Kernel.TickInterval = DefaultTickInterval
	}
	cfg.Kernel.IsManual = cfg.Kernel.TickMode == TickModeManual

	if cfg.Telemetry.Enabled() && cfg.Telemetry.Interval <= 0 {
		cfg.Telemetry.Interval = DefaultTelemetryInterval
	}
}

func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.AdjustConfig()

	return cfg, nil
}
