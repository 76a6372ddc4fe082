package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitowners/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "an explicit config path must exist")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, "tree", cfg.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
	assert.False(t, cfg.LogJSON())
}

func TestLoadMalformedDiscoveredConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitowners.yaml"), []byte("workers: [unclosed"), 0o600))
	t.Chdir(dir)

	// A broken config in the search path must surface, not fall back to
	// defaults without a diagnostic.
	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadMalformedExplicitConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: [unclosed"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "gitowners.yaml")
	data := []byte(`
workers: 4
format: json
logging:
  level: debug
  format: json
telemetry:
  otlp_endpoint: localhost:4317
  otlp_insecure: true
  sample_ratio: 0.25
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.LogJSON())
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
	assert.True(t, cfg.Telemetry.OTLPInsecure)
	assert.InDelta(t, 0.25, cfg.Telemetry.SampleRatio, 1e-12)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestValidateRejectsNegativeWorkers(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Workers: -1, Format: "tree"}

	err := cfg.Validate()
	assert.ErrorIs(t, err, config.ErrInvalidWorkers)
}

func TestValidateRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Format: "pdf"}

	err := cfg.Validate()
	assert.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Format: "tree"}
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	assert.ErrorIs(t, err, config.ErrInvalidLogLevel)
}

func TestSlogLevelMapping(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"ERROR":   slog.LevelError,
	}

	for name, want := range cases {
		cfg := &config.Config{Format: "tree"}
		cfg.Logging.Level = name

		level, err := cfg.SlogLevel()
		require.NoError(t, err)
		assert.Equal(t, want, level, "level %q", name)
	}
}
