// Package config loads the demo's window, renderer and batch settings from
// TOML.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"glkit/batch"
	"glkit/core"
	"glkit/renderer"
)

type Config struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string            `toml:"log_level"`
	Window   core.WindowConfig `toml:"window"`
	Renderer renderer.Options  `toml:"renderer"`
	Batch    batch.Options     `toml:"batch"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Window:   core.DefaultWindowConfig(),
		Batch:    batch.DefaultOptions(),
	}
}

// Load reads the TOML file at path over the defaults. Keys the file does not
// set keep their default values; unknown keys are an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("load config %q: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}

// Validate reports every out of range setting.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.Samples < 0 {
		errs = append(errs, fmt.Errorf("invalid sample count %d", c.Window.Samples))
	}
	if c.Renderer.MaxTextureUnits < 0 {
		errs = append(errs, fmt.Errorf("invalid max texture units %d", c.Renderer.MaxTextureUnits))
	}
	if c.Renderer.MaxUniformBuffers < 0 {
		errs = append(errs, fmt.Errorf("invalid max uniform buffers %d", c.Renderer.MaxUniformBuffers))
	}
	if c.Batch.MaxQuadsPerDraw <= 0 || c.Batch.MaxQuadsPerDraw > (1<<30)-1 {
		errs = append(errs, fmt.Errorf("invalid max quads per draw %d", c.Batch.MaxQuadsPerDraw))
	}
	if c.Batch.InitialCapacity < 0 {
		errs = append(errs, fmt.Errorf("invalid initial batch capacity %d", c.Batch.InitialCapacity))
	}
	return errors.Join(errs...)
}
