package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "markbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_MissingOptionalFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_MissingRequiredFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), true)
	assert.Error(t, err)
}

func TestLoadConfig_ParsesEveryField(t *testing.T) {
	path := writeConfig(t, `
suite: "000"
duration: 250ms
locale: de-DE
pin_lanes: true
continue_on_error: true
metrics_addr: ":2112"
log_level: debug
`)

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, Config{
		Suite:           "000",
		Duration:        250 * time.Millisecond,
		Locale:          "de-DE",
		PinLanes:        true,
		ContinueOnError: true,
		MetricsAddr:     ":2112",
		LogLevel:        "debug",
	}, cfg)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "locale: plain\n")

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)

	want := DefaultConfig()
	want.Locale = "plain"
	assert.Equal(t, want, cfg)
}

func TestLoadConfig_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed yaml", body: "suite: [unterminated\n"},
		{name: "bad duration", body: "duration: soon\n"},
		{name: "negative duration", body: "duration: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body), true)
			assert.Error(t, err)
		})
	}
}
