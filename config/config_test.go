package config

import (
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// TestLoadConfig_Full verifies that every section is decoded.
func TestLoadConfig_Full(t *testing.T) {
	path := writeConfig(t, `
kernel:
  tick_mode: manual
  tick_interval: 10ms
queue:
  checksum: true
telemetry:
  interval: 2s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, TickModeManual, cfg.Kernel.TickMode)
	require.Equal(t, 10*time.Millisecond, cfg.Kernel.TickInterval)
	require.True(t, cfg.Kernel.IsManual)
	require.True(t, cfg.Queue.IsChecksumEnabled())
	require.True(t, cfg.Telemetry.Enabled())
	require.Equal(t, 2*time.Second, cfg.Telemetry.Interval)
}

// TestLoadConfig_Defaults verifies defaults for omitted fields and sections.
func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
telemetry: {}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, TickModeTimer, cfg.Kernel.TickMode)
	require.Equal(t, DefaultTickInterval, cfg.Kernel.TickInterval)
	require.False(t, cfg.Kernel.IsManual)
	require.False(t, cfg.Queue.Enabled())
	require.False(t, cfg.Queue.IsChecksumEnabled())
	require.Equal(t, DefaultTelemetryInterval, cfg.Telemetry.Interval)
}

// TestLoadConfig_Empty verifies that an empty file yields a default config.
func TestLoadConfig_Empty(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, TickModeTimer, cfg.Kernel.TickMode)
	require.False(t, cfg.Telemetry.Enabled())
}

// TestLoadConfig_Errors verifies that missing and malformed files are reported.
func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "kernel: [1, 2"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "kernel:\n  tick_interval: soon\n"))
	require.Error(t, err)
}
