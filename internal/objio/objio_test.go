package objio

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"mesh-subdivider/internal/halfedge"
	"mesh-subdivider/internal/mathutil"
)

const squareOBJ = `# exported square
mtllib square.mtl
o Square
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0 1.0
vt 0 0
vn 0 0 1
g top
usemtl paint
s off
f 1/1/1 2/1/1 3//1
f -4 -2 -1   # relative
`

func TestDecode(t *testing.T) {
	data, info, err := Decode(strings.NewReader(squareOBJ))
	if err != nil {
		t.Fatal(err)
	}
	wantPos := []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	if !reflect.DeepEqual(data.Positions, wantPos) {
		t.Errorf("positions = %v", data.Positions)
	}
	wantFaces := [][]int{{0, 1, 2}, {0, 2, 3}}
	if !reflect.DeepEqual(data.Faces, wantFaces) {
		t.Errorf("faces = %v", data.Faces)
	}
	if info.Name != "Square" {
		t.Errorf("name = %q", info.Name)
	}
	if !reflect.DeepEqual(info.Groups, []string{"top"}) {
		t.Errorf("groups = %v", info.Groups)
	}
	if info.Skipped != 5 {
		t.Errorf("skipped = %d, want 5", info.Skipped)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"short vertex", "v 1 2\n", "line 1: vertex needs 3 coordinates"},
		{"bad float", "v 1 2 x\n", "line 1:"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", "line 3: face needs 3 corners"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 0 1 2\n", "line 4: face index 0"},
		{"forward reference", "v 0 0 0\nf 1 2 3\nv 1 0 0\nv 1 1 0\n", "line 2: face index 2 refers past 1 vertices"},
		{"relative underflow", "v 0 0 0\nf -1 -2 -3\n", "line 2:"},
		{"garbage index", "v 0 0 0\nf a b c\n", `bad face index "a"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(strings.NewReader(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Decode error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestDecodeLegacyName(t *testing.T) {
	_, info, err := Decode(strings.NewReader("o Caf\xe9\ng D\xfcse\n"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Name != "Café" {
		t.Errorf("name = %q, want %q", info.Name, "Café")
	}
	if len(info.Groups) != 1 || info.Groups[0] != "Düse" {
		t.Errorf("groups = %q", info.Groups)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := halfedge.Cube()
	data.Positions[3] = mathutil.Vec3{0.1, -1e-9, 123456.789}

	var buf bytes.Buffer
	if err := Encode(&buf, data, "cube"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "# 8 vertices, 6 faces\no cube\nv -1 -1 -1\n") {
		t.Errorf("unexpected header:\n%s", buf.String())
	}

	got, info, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if info.Name != "cube" {
		t.Errorf("name = %q", info.Name)
	}
	if !reflect.DeepEqual(got, data) {
		t.Errorf("round trip = %v, want %v", got, data)
	}
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.obj")
	data := halfedge.Grid(2)
	if err := Write(path, data, ""); err != nil {
		t.Fatal(err)
	}
	got, _, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, data) {
		t.Errorf("read back %v, want %v", got, data)
	}

	if _, _, err := Read(filepath.Join(t.TempDir(), "missing.obj")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Read missing file error = %v", err)
	}
}
