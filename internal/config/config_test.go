package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acmehome/fieldops/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fieldops.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
services:
  customer:
    addr: ":9001"
auth:
  api_key: "demo-key-123"
statusboard:
  namespace: upgrade-demo
  label_selector: app=demo
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9001", cfg.Services.Customer.Addr)
	assert.Equal(t, ":8002", cfg.Services.Appointment.Addr, "unset sections keep defaults")
	assert.Equal(t, "demo-key-123", cfg.Auth.APIKey)
	assert.Equal(t, "upgrade-demo", cfg.StatusBoard.Namespace)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8001", cfg.Services.Customer.Addr)
	assert.Equal(t, "default", cfg.StatusBoard.Namespace)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	_, err := config.Load("/does/not/exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "services: [not a map")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FIELDOPS_API_KEY", "env-key-override")
	t.Setenv("CUSTOMER_ADDR", ":7001")
	t.Setenv("POD_NAME", "demo-abc")
	t.Setenv("NODE_NAME", "node-a")

	cfg := config.FromEnvironment()
	assert.Equal(t, "env-key-override", cfg.Auth.APIKey)
	assert.Equal(t, ":7001", cfg.Services.Customer.Addr)
	assert.Equal(t, "demo-abc", cfg.StatusBoard.PodName)
	assert.Equal(t, "node-a", cfg.StatusBoard.NodeName)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := config.Default()
	require.NoError(t, config.Validate(valid))
	require.NoError(t, valid.Validate(), "method form used by the servers")

	tests := []struct {
		name   string
		mutate func(*config.FileConfig)
	}{
		{"empty customer addr", func(c *config.FileConfig) { c.Services.Customer.Addr = "" }},
		{"addr without port", func(c *config.FileConfig) { c.Services.Technician.Addr = "localhost" }},
		{"short api key", func(c *config.FileConfig) { c.Auth.APIKey = "short" }},
		{"missing namespace", func(c *config.FileConfig) { c.StatusBoard.Namespace = "" }},
		{"bad selector", func(c *config.FileConfig) { c.StatusBoard.LabelSelector = "eks-demo-app" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
