package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the agent configuration
type Config struct {
	// BaseURL of the backend REST API
	BaseURL string `yaml:"base_url"`
	// ListenAddr for the local push webhook and status API
	ListenAddr string `yaml:"listen_addr"`
	// PrefsPath is the sqlite preference store location
	PrefsPath string `yaml:"prefs_path"`
	// RoleContext scopes patrol requests
	RoleContext string `yaml:"role_context"`

	// Location reporting cadence
	ReportBaseInterval time.Duration `yaml:"report_base_interval"`
	ReportMaxInterval  time.Duration `yaml:"report_max_interval"`

	// LocatorCommand is an external program printing a position fix as
	// JSON; empty disables the command-backed provider.
	LocatorCommand string `yaml:"locator_command"`
	// CaptureCommand is an external program writing photo bytes to
	// stdout; empty means selfies come from files.
	CaptureCommand string `yaml:"capture_command"`
}

// Load builds the configuration from the environment, with an optional
// YAML file named by AGENT_CONFIG layered underneath. Environment
// variables win.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:            "http://localhost:8080/api/v1",
		ListenAddr:         ":7710",
		PrefsPath:          "./data/agent/prefs.db",
		ReportBaseInterval: 30 * time.Second,
		ReportMaxInterval:  5 * time.Minute,
	}

	if path := os.Getenv("AGENT_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if v := os.Getenv("AGENT_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("AGENT_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("AGENT_PREFS_PATH"); v != "" {
		cfg.PrefsPath = v
	}
	if v := os.Getenv("AGENT_ROLE"); v != "" {
		cfg.RoleContext = v
	}
	if v := os.Getenv("AGENT_LOCATOR_COMMAND"); v != "" {
		cfg.LocatorCommand = v
	}
	if v := os.Getenv("AGENT_CAPTURE_COMMAND"); v != "" {
		cfg.CaptureCommand = v
	}
	if v := os.Getenv("AGENT_REPORT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid AGENT_REPORT_INTERVAL: %w", err)
		}
		cfg.ReportBaseInterval = d
	}

	return cfg, nil
}
