package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a fieldops configuration file, applies defaults for
// unset sections, then applies environment overrides. An empty path means no
// file: defaults plus environment.
func Load(path string) (FileConfig, error) {
	if path == "" {
		return FromEnvironment(), nil
	}

	cfg := Default()

	// Clean the path to prevent directory traversal attacks
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304 - Config file path is trusted (from admin/user)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// FromEnvironment returns the default configuration with environment
// overrides applied. Used when no file is given.
func FromEnvironment() FileConfig {
	cfg := Default()
	applyEnv(&cfg)
	return cfg
}

// applyEnv layers per-deployment environment variables over the file values.
func applyEnv(cfg *FileConfig) {
	if v := os.Getenv("FIELDOPS_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("CUSTOMER_ADDR"); v != "" {
		cfg.Services.Customer.Addr = v
	}
	if v := os.Getenv("APPOINTMENT_ADDR"); v != "" {
		cfg.Services.Appointment.Addr = v
	}
	if v := os.Getenv("TECHNICIAN_ADDR"); v != "" {
		cfg.Services.Technician.Addr = v
	}
	if v := os.Getenv("STATUSBOARD_ADDR"); v != "" {
		cfg.StatusBoard.Addr = v
	}
	cfg.StatusBoard.PodName = os.Getenv("POD_NAME")
	cfg.StatusBoard.NodeName = os.Getenv("NODE_NAME")
}
