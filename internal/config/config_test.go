package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(Flags{})

	want := Config{
		OutputDir:     "subdivided",
		Levels:        1,
		PreviewFormat: "webp",
		RenderSize:    256,
		Supersample:   2,
		FillRatio:     0.8,
		Yaw:           30,
		Pitch:         -20,
		Workers:       runtime.NumCPU(),
	}
	if c != want {
		t.Errorf("Resolve() = %+v, want %+v", c, want)
	}
}

func TestLoadAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"output_dir": "out", "levels": 3, "preview_format": ".TGA", "yaw": 45, "workers": 2}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.Resolve(Flags{Levels: 2, Size: 128})

	if c.OutputDir != "out" {
		t.Errorf("OutputDir = %q", c.OutputDir)
	}
	if c.Levels != 2 {
		t.Errorf("Levels = %d, want flag value 2", c.Levels)
	}
	if c.PreviewFormat != "tga" {
		t.Errorf("PreviewFormat = %q, want tga", c.PreviewFormat)
	}
	if c.RenderSize != 128 {
		t.Errorf("RenderSize = %d", c.RenderSize)
	}
	if c.Yaw != 45 || c.Pitch != 0 {
		t.Errorf("camera = (%v, %v), want (45, 0)", c.Yaw, c.Pitch)
	}
	if c.Workers != 2 {
		t.Errorf("Workers = %d", c.Workers)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file: expected error")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{levels:"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed JSON: expected error")
	}
}
