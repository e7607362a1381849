package objio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"mesh-subdivider/internal/halfedge"
)

// Write stores data as an OBJ file, creating or truncating path.
func Write(path string, data halfedge.MeshData, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("objio: create %s: %w", path, err)
	}
	if err := Encode(f, data, name); err != nil {
		f.Close()
		return fmt.Errorf("objio: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("objio: close %s: %w", path, err)
	}
	return nil
}

// Encode writes data as OBJ text with 1-based face indices. Coordinates use
// the shortest representation that parses back to the same float64.
func Encode(w io.Writer, data halfedge.MeshData, name string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d vertices, %d faces\n", len(data.Positions), len(data.Faces))
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}

	buf := make([]byte, 0, 64)
	for _, p := range data.Positions {
		buf = append(buf[:0], 'v')
		for _, x := range p {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	for _, face := range data.Faces {
		buf = append(buf[:0], 'f')
		for _, idx := range face {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(idx+1), 10)
		}
		buf = append(buf, '\n')
		bw.Write(buf)
	}
	return bw.Flush()
}
