// Package objio reads and writes polygon meshes in Wavefront OBJ format.
package objio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"mesh-subdivider/internal/halfedge"
	"mesh-subdivider/internal/mathutil"

	"golang.org/x/text/encoding/charmap"
)

// Info holds the non-geometric content of an OBJ file.
type Info struct {
	Name    string   // first "o" statement
	Groups  []string // "g" statements in file order
	Skipped int      // statements ignored (vt, vn, usemtl, ...)
}

// Read parses an OBJ file.
func Read(path string) (halfedge.MeshData, Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return halfedge.MeshData{}, Info{}, fmt.Errorf("objio: open %s: %w", path, err)
	}
	defer f.Close()

	data, info, err := Decode(f)
	if err != nil {
		return halfedge.MeshData{}, Info{}, fmt.Errorf("objio: %s: %w", path, err)
	}
	return data, info, nil
}

// Decode parses OBJ text. Only positions and polygon faces are kept; texture
// and normal references on face corners are dropped.
func Decode(r io.Reader) (halfedge.MeshData, Info, error) {
	var data halfedge.MeshData
	var info Info

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return data, info, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			var p mathutil.Vec3
			for k := 0; k < 3; k++ {
				x, err := strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					return data, info, fmt.Errorf("line %d: %w", line, err)
				}
				p[k] = x
			}
			data.Positions = append(data.Positions, p)
		case "f":
			if len(fields) < 4 {
				return data, info, fmt.Errorf("line %d: face needs 3 corners", line)
			}
			face := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := parseIndex(tok, len(data.Positions))
				if err != nil {
					return data, info, fmt.Errorf("line %d: %w", line, err)
				}
				face = append(face, idx)
			}
			data.Faces = append(data.Faces, face)
		case "o":
			if info.Name == "" {
				info.Name = decodeName(strings.Join(fields[1:], " "))
			}
		case "g":
			info.Groups = append(info.Groups, decodeName(strings.Join(fields[1:], " ")))
		default:
			info.Skipped++
		}
	}
	if err := sc.Err(); err != nil {
		return data, info, fmt.Errorf("line %d: %w", line+1, err)
	}
	return data, info, nil
}

// parseIndex resolves a face corner token ("7", "7/2", "7//3", "-1/2/3") to
// a zero-based position index. Negative indices count back from the last
// position read so far.
func parseIndex(tok string, n int) (int, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	idx, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q", tok)
	}
	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx += n
	default:
		return 0, fmt.Errorf("face index 0")
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("face index %s refers past %d vertices", tok, n)
	}
	return idx, nil
}

// decodeName returns s unchanged when it is UTF-8 and otherwise decodes it
// as Windows-1252, which older exporters write.
func decodeName(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, err := charmap.Windows1252.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return decoded
}
