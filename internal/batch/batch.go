package batch

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mesh-subdivider/internal/halfedge"
	"mesh-subdivider/internal/objio"
	"mesh-subdivider/internal/postprocess"
	"mesh-subdivider/internal/preview"
	"mesh-subdivider/internal/raster"
	"mesh-subdivider/internal/subdivision"
	"mesh-subdivider/internal/viewmatrix"
)

// Config holds the shared settings for a batch run.
type Config struct {
	OutputDir     string
	Levels        int
	PreviewFormat string // "none" disables previews
	RenderSize    int
	Supersample   int
	FillRatio     float64
	Yaw, Pitch    float64
	Workers       int
}

// Input is one mesh to subdivide. Data is used when Path is empty.
type Input struct {
	Name string
	Path string
	Data halfedge.MeshData
}

// Counts summarizes a mesh's size.
type Counts struct {
	Vertices int `json:"vertices"`
	Edges    int `json:"edges"`
	Faces    int `json:"faces"`
}

// Result holds the outcome of processing one input.
type Result struct {
	Name    string
	Input   string
	Output  string
	Preview string
	Before  Counts
	After   Counts
	Elapsed time.Duration
	Success bool
	Error   string
}

// Run processes all inputs using a worker pool.
func Run(cfg Config, inputs []Input) []Result {
	total := len(inputs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f meshes/sec\n", p, total, rate)
				}
			}
		}
	}()

	workers := max(cfg.Workers, 1)
	inputChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range inputChan {
				results[idx] = processInput(cfg, inputs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range inputs {
		inputChan <- i
	}
	close(inputChan)

	wg.Wait()
	close(done)

	return results
}

func processInput(cfg Config, in Input) Result {
	start := time.Now()
	res := Result{Name: in.Name, Input: in.Path}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Elapsed = time.Since(start)
		return res
	}

	data, objName := in.Data, in.Name
	if in.Path != "" {
		var info objio.Info
		var err error
		data, info, err = objio.Read(in.Path)
		if err != nil {
			return fail(err)
		}
		if info.Name != "" {
			objName = info.Name
		}
	}

	mesh, err := halfedge.Build(data)
	if err != nil {
		return fail(fmt.Errorf("build %s: %w", in.Name, err))
	}
	res.Before = countsOf(mesh)

	for level := 1; level <= cfg.Levels; level++ {
		mesh, err = subdivision.Subdivide(mesh)
		if err != nil {
			return fail(fmt.Errorf("level %d: %w", level, err))
		}
	}
	res.After = countsOf(mesh)

	stem := fmt.Sprintf("%s_sub%d", in.Name, cfg.Levels)
	res.Output = filepath.Join(cfg.OutputDir, stem+".obj")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fail(err)
	}
	if err := objio.Write(res.Output, mesh.Data(), objName); err != nil {
		return fail(err)
	}

	if cfg.PreviewFormat != "" && cfg.PreviewFormat != "none" {
		res.Preview = filepath.Join(cfg.OutputDir, stem+"."+cfg.PreviewFormat)
		if err := preview.Write(res.Preview, renderPreview(cfg, mesh)); err != nil {
			return fail(err)
		}
	}

	res.Success = true
	res.Elapsed = time.Since(start)
	return res
}

func renderPreview(cfg Config, m *halfedge.Mesh) image.Image {
	img := raster.RenderMesh(m, viewmatrix.Camera(cfg.Yaw, cfg.Pitch), cfg.RenderSize, cfg.Supersample)

	// Post-processing: supersample downsample
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}
	return postprocess.Frame(img, cfg.RenderSize, cfg.FillRatio)
}

func countsOf(m *halfedge.Mesh) Counts {
	return Counts{Vertices: len(m.Vertices), Edges: len(m.Edges), Faces: len(m.Faces)}
}

// CollectInputs expands args into OBJ inputs. Directories are walked
// recursively for *.obj files; plain files are taken as given.
func CollectInputs(args []string) ([]Input, error) {
	var inputs []Input
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("batch: %w", err)
		}
		if !info.IsDir() {
			inputs = append(inputs, fileInput(arg))
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".obj") {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("batch: scan %s: %w", arg, err)
		}
		sort.Strings(found)
		for _, path := range found {
			inputs = append(inputs, fileInput(path))
		}
	}
	return inputs, nil
}

func fileInput(path string) Input {
	base := filepath.Base(path)
	return Input{Name: strings.TrimSuffix(base, filepath.Ext(base)), Path: path}
}
