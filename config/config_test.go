package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	l, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
log_level = "debug"

[window]
width = 640
title = "sprites"

[renderer]
disable_multi_draw = true

[batch]
layers = true
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unset keys keep defaults")
	assert.Equal(t, "sprites", cfg.Window.Title)
	assert.True(t, cfg.Renderer.DisableMultiDraw)
	assert.True(t, cfg.Batch.Layers)
	assert.True(t, cfg.Batch.Color)
	assert.Equal(t, Default().Batch.MaxQuadsPerDraw, cfg.Batch.MaxQuadsPerDraw)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[window]\nwidht = 10\n"))
	assert.ErrorContains(t, err, "unknown keys")
}

func TestDecodeRejectsSyntaxErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("[window\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, `invalid log level "loud"`},
		{"window size", func(c *Config) { c.Window.Height = 0 }, "invalid window size 1280x0"},
		{"samples", func(c *Config) { c.Window.Samples = -1 }, "invalid sample count"},
		{"texture units", func(c *Config) { c.Renderer.MaxTextureUnits = -2 }, "invalid max texture units"},
		{"uniform buffers", func(c *Config) { c.Renderer.MaxUniformBuffers = -2 }, "invalid max uniform buffers"},
		{"max quads", func(c *Config) { c.Batch.MaxQuadsPerDraw = 0 }, "invalid max quads per draw 0"},
		{"capacity", func(c *Config) { c.Batch.InitialCapacity = -1 }, "invalid initial batch capacity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "loud"
	cfg.Batch.MaxQuadsPerDraw = -1
	err := cfg.Validate()
	assert.ErrorContains(t, err, "invalid log level")
	assert.ErrorContains(t, err, "invalid max quads per draw")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glkit.toml")
	require.NoError(t, os.WriteFile(path, []byte("[batch]\ninitial_capacity = 32\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Batch.InitialCapacity)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Window.Title = "round trip"
	cfg.Renderer.MaxTextureUnits = 8

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))
	assert.Contains(t, buf.String(), "max_texture_units = 8")

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
