package halfedge

import (
	"errors"
	"reflect"
	"testing"

	"mesh-subdivider/internal/mathutil"
)

func mustBuild(t *testing.T, data MeshData) *Mesh {
	t.Helper()
	m, err := Build(data)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := m.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
	return m
}

func TestBuildClosedMeshes(t *testing.T) {
	tests := []struct {
		name      string
		data      MeshData
		v, e, f   int
		valence   int
		halfEdges int
	}{
		{"cube", Cube(), 8, 12, 6, 3, 24},
		{"tetrahedron", Tetrahedron(), 4, 6, 4, 3, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustBuild(t, tt.data)
			if len(m.Vertices) != tt.v || len(m.Edges) != tt.e || len(m.Faces) != tt.f {
				t.Errorf("V/E/F = %d/%d/%d, want %d/%d/%d",
					len(m.Vertices), len(m.Edges), len(m.Faces), tt.v, tt.e, tt.f)
			}
			if len(m.HalfEdges) != tt.halfEdges {
				t.Errorf("half-edges = %d, want %d", len(m.HalfEdges), tt.halfEdges)
			}
			if len(m.Boundaries) != 0 || m.BoundaryEdgeCount() != 0 {
				t.Errorf("closed mesh has %d boundary loops", len(m.Boundaries))
			}
			if got := m.EulerCharacteristic(); got != 2 {
				t.Errorf("Euler characteristic = %d, want 2", got)
			}
			for v := range m.Vertices {
				if got := m.Valence(v); got != tt.valence {
					t.Errorf("valence(%d) = %d, want %d", v, got, tt.valence)
				}
				if m.IsBoundaryVertex(v) {
					t.Errorf("vertex %d reported on boundary", v)
				}
			}
		})
	}
}

func TestBuildGridBoundary(t *testing.T) {
	m := mustBuild(t, Grid(2))

	if len(m.Vertices) != 9 || len(m.Edges) != 12 || len(m.Faces) != 4 {
		t.Fatalf("V/E/F = %d/%d/%d", len(m.Vertices), len(m.Edges), len(m.Faces))
	}
	if len(m.Boundaries) != 1 {
		t.Fatalf("boundary loops = %d, want 1", len(m.Boundaries))
	}
	if got := m.BoundaryEdgeCount(); got != 8 {
		t.Errorf("boundary edges = %d, want 8", got)
	}
	if got := m.EulerCharacteristic(); got != 1 {
		t.Errorf("Euler characteristic = %d, want 1", got)
	}

	wantValence := []int{1, 2, 1, 2, 4, 2, 1, 2, 1}
	for v, want := range wantValence {
		if got := m.Valence(v); got != want {
			t.Errorf("valence(%d) = %d, want %d", v, got, want)
		}
		if got := m.IsBoundaryVertex(v); got != (v != 4) {
			t.Errorf("IsBoundaryVertex(%d) = %v", v, got)
		}
	}

	// Face half-edges are never flagged, boundary ones always have a face twin.
	for i, h := range m.HalfEdges {
		if h.OnBoundary != (i >= 16) {
			t.Errorf("half-edge %d OnBoundary = %v", i, h.OnBoundary)
		}
		if h.OnBoundary && m.HalfEdges[h.Flip].OnBoundary {
			t.Errorf("half-edge %d twin is also on boundary", i)
		}
	}

	// The boundary loop walks all eight rim vertices.
	start := m.Boundaries[0].HalfEdge
	seen := map[int]bool{}
	for h := start; ; {
		seen[m.HalfEdges[h].Vertex] = true
		h = m.HalfEdges[h].Next
		if h == start {
			break
		}
	}
	if len(seen) != 8 || seen[4] {
		t.Errorf("boundary loop visits %v", seen)
	}
}

func TestBuildErrors(t *testing.T) {
	pts := []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {2, 0, 0}, {2, 1, 0}, {3, 3, 3}}
	tests := []struct {
		name string
		data MeshData
		want error
	}{
		{"empty", MeshData{}, ErrEmptyMesh},
		{"index range", MeshData{Positions: pts[:3], Faces: [][]int{{0, 1, 5}}}, ErrIndexRange},
		{"negative index", MeshData{Positions: pts[:3], Faces: [][]int{{0, -1, 2}}}, ErrIndexRange},
		{"two corners", MeshData{Positions: pts[:3], Faces: [][]int{{0, 1}}}, ErrDegenerateFace},
		{"repeated corner", MeshData{Positions: pts[:4], Faces: [][]int{{0, 1, 2, 1}}}, ErrDegenerateFace},
		{"isolated", MeshData{Positions: pts[:4], Faces: [][]int{{0, 1, 2}}}, ErrIsolatedVertex},
		{"flipped neighbour", MeshData{Positions: pts[:4], Faces: [][]int{{0, 1, 2}, {0, 1, 3}}}, ErrNonManifoldEdge},
		{"three faces on an edge", MeshData{
			Positions: pts[:6],
			Faces:     [][]int{{0, 1, 2}, {1, 0, 3}, {0, 1, 4}},
		}, ErrNonManifoldEdge},
		{"bowtie", MeshData{
			Positions: []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {-1, 0, 0}, {0, -1, 0}},
			Faces:     [][]int{{0, 1, 2}, {0, 3, 4}},
		}, ErrNonManifoldVertex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.data)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Build error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	a := mustBuild(t, Grid(3))
	b := mustBuild(t, Grid(3))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two builds of the same data differ")
	}
}

func TestDataRoundTrip(t *testing.T) {
	for _, data := range []MeshData{Cube(), Tetrahedron(), Grid(2)} {
		m := mustBuild(t, data)
		if got := m.Data(); !reflect.DeepEqual(got, data) {
			t.Errorf("Data() = %v, want %v", got, data)
		}
	}
}

func TestFaceQueries(t *testing.T) {
	m := mustBuild(t, MeshData{
		Positions: []mathutil.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 1, 0}, {1, 2, 0}, {0, 1, 0}, {-1, 1, 0}},
		Faces:     [][]int{{0, 1, 2, 3, 4}, {0, 4, 5}},
	})
	if got := m.Degree(0); got != 5 {
		t.Errorf("Degree(0) = %d, want 5", got)
	}
	if got := m.Degree(1); got != 3 {
		t.Errorf("Degree(1) = %d, want 3", got)
	}
	if got := m.FaceVertices(1); !reflect.DeepEqual(got, []int{0, 4, 5}) {
		t.Errorf("FaceVertices(1) = %v", got)
	}
	if got := m.Components(); got != 1 {
		t.Errorf("Components = %d, want 1", got)
	}
	min, max := m.Bounds()
	if min != (mathutil.Vec3{-1, 0, 0}) || max != (mathutil.Vec3{2, 2, 0}) {
		t.Errorf("Bounds = %v %v", min, max)
	}
}

func TestComponents(t *testing.T) {
	cube := Cube()
	tet := Tetrahedron()
	data := MeshData{Positions: append(append([]mathutil.Vec3{}, cube.Positions...), tet.Positions...)}
	data.Faces = append(data.Faces, cube.Faces...)
	for _, f := range tet.Faces {
		shifted := make([]int, len(f))
		for i, v := range f {
			shifted[i] = v + len(cube.Positions)
		}
		data.Faces = append(data.Faces, shifted)
	}
	m := mustBuild(t, data)
	if got := m.Components(); got != 2 {
		t.Errorf("Components = %d, want 2", got)
	}
	if got := m.EulerCharacteristic(); got != 4 {
		t.Errorf("Euler characteristic = %d, want 4", got)
	}
}

func TestCheckDetectsCorruption(t *testing.T) {
	m := mustBuild(t, Cube())
	m.HalfEdges[3].Flip = 3
	if err := m.Check(); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("Check = %v, want ErrInconsistent", err)
	}

	m = mustBuild(t, Grid(1))
	m.HalfEdges[0].Face = 7
	if err := m.Check(); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("Check = %v, want ErrInconsistent", err)
	}
}

func TestBuilderKeepsMesh(t *testing.T) {
	var b Builder
	if err := b.BuildMesh(Tetrahedron()); err != nil {
		t.Fatal(err)
	}
	if b.Mesh == nil || len(b.Mesh.Faces) != 4 {
		t.Fatalf("Builder.Mesh = %+v", b.Mesh)
	}
	if err := b.BuildMesh(MeshData{}); err == nil {
		t.Fatal("BuildMesh accepted empty data")
	}
}
