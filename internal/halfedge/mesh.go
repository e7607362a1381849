// Package halfedge holds an index-based half-edge mesh and the builder that
// derives its connectivity from raw positions and face index lists.
package halfedge

import (
	"math"

	"mesh-subdivider/internal/mathutil"
)

// MeshData is raw polygon geometry: a flat position list plus, per face, the
// ordered indices of its corners in Positions.
type MeshData struct {
	Positions []mathutil.Vec3
	Faces     [][]int
}

// HalfEdge is one directed side of an edge. All references are indices into
// the owning Mesh.
//
// Vertex is the vertex the half-edge leaves from, so walking Next from a
// face's half-edge visits its corners in order. OnBoundary is set only on the
// half-edges that run along an open boundary outside the surface; their Face
// indexes Mesh.Boundaries instead of Mesh.Faces.
type HalfEdge struct {
	Next       int
	Flip       int
	Vertex     int
	Edge       int
	Face       int
	OnBoundary bool
}

// Vertex holds a position and one outgoing half-edge.
type Vertex struct {
	Position mathutil.Vec3
	HalfEdge int
}

// Edge refers to one of its two half-edges.
type Edge struct {
	HalfEdge int
}

// Face refers to one half-edge of its loop. Used for both faces and
// boundary loops.
type Face struct {
	HalfEdge int
}

// Mesh is a manifold, consistently oriented half-edge mesh, possibly with
// boundary. Entities are identified by their position in their slice.
type Mesh struct {
	HalfEdges  []HalfEdge
	Vertices   []Vertex
	Edges      []Edge
	Faces      []Face
	Boundaries []Face
}

// Head returns the vertex half-edge h points to.
func (m *Mesh) Head(h int) int {
	return m.HalfEdges[m.HalfEdges[h].Next].Vertex
}

// Degree returns the number of corners of face f.
func (m *Mesh) Degree(f int) int {
	start := m.Faces[f].HalfEdge
	n := 0
	for h := start; ; {
		n++
		h = m.HalfEdges[h].Next
		if h == start {
			break
		}
	}
	return n
}

// FaceVertices returns the corner vertices of face f in loop order.
func (m *Mesh) FaceVertices(f int) []int {
	start := m.Faces[f].HalfEdge
	var vs []int
	for h := start; ; {
		vs = append(vs, m.HalfEdges[h].Vertex)
		h = m.HalfEdges[h].Next
		if h == start {
			break
		}
	}
	return vs
}

// outgoing calls fn for every half-edge leaving v, boundary ones included.
func (m *Mesh) outgoing(v int, fn func(h int)) {
	start := m.Vertices[v].HalfEdge
	for h := start; ; {
		fn(h)
		h = m.HalfEdges[m.HalfEdges[h].Flip].Next
		if h == start {
			break
		}
	}
}

// Valence returns the number of non-boundary half-edges leaving v, which is
// the number of faces incident to v.
func (m *Mesh) Valence(v int) int {
	k := 0
	m.outgoing(v, func(h int) {
		if !m.HalfEdges[h].OnBoundary {
			k++
		}
	})
	return k
}

// IsBoundaryVertex reports whether v lies on an open boundary.
func (m *Mesh) IsBoundaryVertex(v int) bool {
	onBoundary := false
	m.outgoing(v, func(h int) {
		if m.HalfEdges[h].OnBoundary {
			onBoundary = true
		}
	})
	return onBoundary
}

// BoundaryEdgeCount returns the number of edges with a single incident face.
func (m *Mesh) BoundaryEdgeCount() int {
	n := 0
	for _, h := range m.HalfEdges {
		if h.OnBoundary {
			n++
		}
	}
	return n
}

// EulerCharacteristic returns V - E + F.
func (m *Mesh) EulerCharacteristic() int {
	return len(m.Vertices) - len(m.Edges) + len(m.Faces)
}

// Components returns the number of edge-connected pieces of the mesh.
func (m *Mesh) Components() int {
	parent := make([]int, len(m.Vertices))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	n := len(m.Vertices)
	for _, e := range m.Edges {
		a := find(m.HalfEdges[e.HalfEdge].Vertex)
		b := find(m.Head(e.HalfEdge))
		if a != b {
			parent[a] = b
			n--
		}
	}
	return n
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
func (m *Mesh) Bounds() (min, max mathutil.Vec3) {
	min = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Vertices {
		min = min.Min(v.Position)
		max = max.Max(v.Position)
	}
	return min, max
}

// Data converts the mesh back into raw geometry. Faces keep their order and
// start at the corner their stored half-edge leaves from.
func (m *Mesh) Data() MeshData {
	data := MeshData{
		Positions: make([]mathutil.Vec3, len(m.Vertices)),
		Faces:     make([][]int, len(m.Faces)),
	}
	for i, v := range m.Vertices {
		data.Positions[i] = v.Position
	}
	for f := range m.Faces {
		data.Faces[f] = m.FaceVertices(f)
	}
	return data
}
