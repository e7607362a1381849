package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mesh-subdivider/internal/batch"
	"mesh-subdivider/internal/config"
	"mesh-subdivider/internal/halfedge"
	"mesh-subdivider/internal/preview"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	levels := flag.Int("levels", 0, "Subdivision passes per mesh (default: 1)")
	outputDir := flag.String("output", "", "Output directory (default: subdivided)")
	previewFmt := flag.String("preview", "", "Preview format: webp, tga, png or none (default: webp)")
	size := flag.Int("size", 0, "Preview size in pixels (default: 256)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	primitive := flag.String("primitive", "", "Subdivide a built-in mesh instead of files: cube, tetra or grid")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: subdivide [flags] <file.obj|dir>...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Levels:    *levels,
		Preview:   *previewFmt,
		Size:      *size,
		Workers:   *workers,
	})

	if cfg.PreviewFormat != "none" && !preview.Supported(cfg.PreviewFormat) {
		fmt.Fprintf(os.Stderr, "Error: unknown preview format %q (want %s or none)\n",
			cfg.PreviewFormat, strings.Join(preview.Formats, ", "))
		os.Exit(1)
	}

	var inputs []batch.Input
	if *primitive != "" {
		in, err := primitiveInput(*primitive)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		inputs = append(inputs, in)
	}
	if flag.NArg() > 0 {
		found, err := batch.CollectInputs(flag.Args())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error collecting inputs: %v\n", err)
			os.Exit(1)
		}
		inputs = append(inputs, found...)
	}

	if len(inputs) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	fmt.Printf("Mesh subdivider → %d level(s), preview: %s\n", cfg.Levels, cfg.PreviewFormat)
	fmt.Printf("Meshes: %d, Workers: %d\n", len(inputs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:     cfg.OutputDir,
		Levels:        cfg.Levels,
		PreviewFormat: cfg.PreviewFormat,
		RenderSize:    cfg.RenderSize,
		Supersample:   cfg.Supersample,
		FillRatio:     cfg.FillRatio,
		Yaw:           cfg.Yaw,
		Pitch:         cfg.Pitch,
		Workers:       cfg.Workers,
	}, inputs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	var failures []batch.Result
	for _, r := range results {
		if !r.Success {
			failures = append(failures, r)
			continue
		}
		fmt.Printf("  %s: %d→%d faces, %d→%d vertices (%s)\n",
			r.Name, r.Before.Faces, r.After.Faces, r.Before.Vertices, r.After.Vertices,
			r.Elapsed.Round(time.Millisecond))
	}

	fmt.Printf("Subdivided: %d/%d\n", len(results)-len(failures), len(results))

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failures))
		limit := min(len(failures), 20)
		for _, e := range failures[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failures) > 0 {
		os.Exit(1)
	}
}

func primitiveInput(name string) (batch.Input, error) {
	switch strings.ToLower(name) {
	case "cube":
		return batch.Input{Name: "cube", Data: halfedge.Cube()}, nil
	case "tetra", "tetrahedron":
		return batch.Input{Name: "tetrahedron", Data: halfedge.Tetrahedron()}, nil
	case "grid":
		return batch.Input{Name: "grid", Data: halfedge.Grid(4)}, nil
	}
	return batch.Input{}, fmt.Errorf("unknown primitive %q", name)
}
