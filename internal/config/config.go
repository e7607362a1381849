package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Config holds output paths, subdivision depth and preview settings.
type Config struct {
	OutputDir string `json:"output_dir"`
	Levels    int    `json:"levels"`

	// Preview settings
	PreviewFormat string  `json:"preview_format"`
	RenderSize    int     `json:"render_size"`
	Supersample   int     `json:"supersample"`
	FillRatio     float64 `json:"fill_ratio"`
	Yaw           float64 `json:"yaw"`
	Pitch         float64 `json:"pitch"`

	Workers int `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI overrides and fills the remaining zero fields with
// defaults. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Levels > 0 {
		c.Levels = flags.Levels
	}
	if flags.Preview != "" {
		c.PreviewFormat = flags.Preview
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = "subdivided"
	}
	if c.Levels <= 0 {
		c.Levels = 1
	}
	c.PreviewFormat = strings.ToLower(strings.TrimPrefix(c.PreviewFormat, "."))
	if c.PreviewFormat == "" {
		c.PreviewFormat = "webp"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.FillRatio <= 0 || c.FillRatio > 1 {
		c.FillRatio = 0.8
	}
	// Both zero means no view was configured.
	if c.Yaw == 0 && c.Pitch == 0 {
		c.Yaw, c.Pitch = 30, -20
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir string
	Levels    int
	Preview   string
	Size      int
	Workers   int
}
