package config

import (
	"errors"
	"fmt"
	"time"

	"airline-sentiment-dashboard/pkg/common"
	"airline-sentiment-dashboard/pkg/config"
)

// Backend holds the aggregation API client configuration.
type Backend struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

// Dashboard holds fetch orchestration settings.
type Dashboard struct {
	RecordLimit  int           `mapstructure:"record_limit"`
	CycleTimeout time.Duration `mapstructure:"cycle_timeout"`
	// Cron expression for a periodic reload. Empty disables it.
	ReloadSchedule string `mapstructure:"reload_schedule"`
}

// Config holds the full configuration for the dashboard service.
type Config struct {
	App       config.App    `mapstructure:"app"`
	Logger    config.Logger `mapstructure:"logger"`
	API       config.API    `mapstructure:"api"`
	Backend   Backend       `mapstructure:"backend"`
	Dashboard Dashboard     `mapstructure:"dashboard"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":                       "airline-sentiment-dashboard",
		"app.env":                        "development",
		"logger.level":                   "info",
		"logger.encoding":                "json",
		"api.host":                       "",
		"api.port":                       8080,
		"api.shutdown_timeout":           "10s",
		"backend.base_url":               "",
		"backend.timeout":                "10s",
		"backend.max_request_per_minute": 0,
		"dashboard.record_limit":         common.DefaultRecordLimit,
		"dashboard.cycle_timeout":        "30s",
		"dashboard.reload_schedule":      "",
	}
}

// Load loads the dashboard configuration from the given path.
func Load(path string) (*Config, error) {
	config.SetDefaults(defaults())

	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the orchestrator cannot run with.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url is required")
	}
	if c.Dashboard.RecordLimit <= 0 {
		return fmt.Errorf("dashboard.record_limit must be positive, got %d", c.Dashboard.RecordLimit)
	}
	return nil
}
