package main

import (
	"fmt"
	"os"
	"sort"

	"mesh-subdivider/internal/halfedge"
	"mesh-subdivider/internal/objio"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: inspect <file.obj>...")
		os.Exit(1)
	}

	failed := false
	for _, path := range os.Args[1:] {
		if err := inspect(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(path string) error {
	data, info, err := objio.Read(path)
	if err != nil {
		return err
	}
	m, err := halfedge.Build(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Printf("%s", path)
	if info.Name != "" {
		fmt.Printf(" (object %q)", info.Name)
	}
	fmt.Println()
	if len(info.Groups) > 0 {
		fmt.Printf("  Groups: %v\n", info.Groups)
	}
	if info.Skipped > 0 {
		fmt.Printf("  Skipped statements: %d\n", info.Skipped)
	}

	fmt.Printf("  V=%d E=%d F=%d HE=%d\n", len(m.Vertices), len(m.Edges), len(m.Faces), len(m.HalfEdges))
	fmt.Printf("  Boundary: %d edges in %d loops\n", m.BoundaryEdgeCount(), len(m.Boundaries))
	fmt.Printf("  Euler characteristic: %d, components: %d\n", m.EulerCharacteristic(), m.Components())

	lo, hi := m.Bounds()
	fmt.Printf("  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])

	degrees := map[int]int{}
	for f := range m.Faces {
		degrees[m.Degree(f)]++
	}
	printHistogram("Face degrees", degrees)

	valences := map[int]int{}
	for v := range m.Vertices {
		valences[m.Valence(v)]++
	}
	printHistogram("Valences", valences)

	if err := m.Check(); err != nil {
		fmt.Printf("  Check: FAIL %v\n", err)
	} else {
		fmt.Println("  Check: ok")
	}
	return nil
}

func printHistogram(label string, h map[int]int) {
	keys := make([]int, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	fmt.Printf("  %s:", label)
	for _, k := range keys {
		fmt.Printf(" %d×%d", k, h[k])
	}
	fmt.Println()
}
