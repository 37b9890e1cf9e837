package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		configPathEnv, portEnv, modelURIEnv, modelTimeoutEnv,
		rateLimitEnabledEnv, rateLimitRPSEnv, rateLimitBurstEnv, slowRequestThresholdEnv,
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "churn.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
port: 9090
modelURI: http://sidecar:5000
modelTimeout: 2s
rateLimit:
  burst: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "http://sidecar:5000", cfg.ModelURI)
	assert.Equal(t, 2*time.Second, cfg.ModelTimeout)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	// untouched keys keep defaults
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30.0, cfg.RateLimit.RPS)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
}

func TestLoadPathFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(configPathEnv, writeConfig(t, "port: 7000\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "port: 9090\nrateLimit:\n  enabled: true\n")
	t.Setenv(portEnv, "8181")
	t.Setenv(modelURIEnv, "file:///srv/model.json")
	t.Setenv(modelTimeoutEnv, "750ms")
	t.Setenv(rateLimitEnabledEnv, "false")
	t.Setenv(slowRequestThresholdEnv, "3s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, "file:///srv/model.json", cfg.ModelURI)
	assert.Equal(t, 750*time.Millisecond, cfg.ModelTimeout)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 3*time.Second, cfg.SlowRequestThreshold)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr string
	}{
		{"missing file", "", nil, "failed to read config file"},
		{"bad yaml", "port: [", nil, "failed to parse config file"},
		{"bad port env", "port: 80", map[string]string{portEnv: "eighty"}, "PORT"},
		{"bad duration env", "port: 80", map[string]string{modelTimeoutEnv: "soon"}, "MODEL_TIMEOUT"},
		{"port out of range", "port: 70000", nil, "out of range"},
		{"empty model", "modelURI: ' '", nil, "model URI is required"},
		{"zero rps", "rateLimit:\n  rps: 0", nil, "rps must be positive"},
		{"negative burst env", "port: 80", map[string]string{rateLimitBurstEnv: "-1"}, "burst must be positive"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "missing.yaml")
			if tc.file != "" {
				path = writeConfig(t, tc.file)
			}

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDisabledRateLimitSkipsLimiterChecks(t *testing.T) {
	cfg := Default()
	cfg.RateLimit = RateLimitConfig{Enabled: false}
	assert.NoError(t, cfg.Validate())
}
