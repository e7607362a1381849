package halfedge

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMesh         = errors.New("halfedge: empty mesh")
	ErrIndexRange        = errors.New("halfedge: vertex index out of range")
	ErrDegenerateFace    = errors.New("halfedge: degenerate face")
	ErrNonManifoldEdge   = errors.New("halfedge: non-manifold edge")
	ErrNonManifoldVertex = errors.New("halfedge: non-manifold vertex")
	ErrIsolatedVertex    = errors.New("halfedge: isolated vertex")
)

type dirEdge struct {
	tail, head int
}

// Build constructs a half-edge mesh from raw geometry. Faces must be
// consistently oriented and the result must be a manifold, possibly with
// boundary. Every open boundary gets a loop of OnBoundary half-edges.
//
// Entities are numbered deterministically: face half-edges in face order,
// edges in order of first appearance, boundary half-edges after all face
// half-edges.
func Build(data MeshData) (*Mesh, error) {
	if len(data.Positions) == 0 || len(data.Faces) == 0 {
		return nil, ErrEmptyMesh
	}

	nv := len(data.Positions)
	total := 0
	for _, face := range data.Faces {
		total += len(face)
	}

	m := &Mesh{
		HalfEdges: make([]HalfEdge, 0, total+total/4),
		Vertices:  make([]Vertex, nv),
		Edges:     make([]Edge, 0, total/2+total/8),
		Faces:     make([]Face, 0, len(data.Faces)),
	}
	for i, p := range data.Positions {
		m.Vertices[i] = Vertex{Position: p, HalfEdge: -1}
	}

	directed := make(map[dirEdge]int, total)

	for fi, face := range data.Faces {
		n := len(face)
		if n < 3 {
			return nil, fmt.Errorf("%w: face %d has %d corners", ErrDegenerateFace, fi, n)
		}
		for j, v := range face {
			if v < 0 || v >= nv {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrIndexRange, fi, v, nv)
			}
			for _, w := range face[:j] {
				if w == v {
					return nil, fmt.Errorf("%w: face %d repeats vertex %d", ErrDegenerateFace, fi, v)
				}
			}
		}

		base := len(m.HalfEdges)
		for j, v := range face {
			k := dirEdge{v, face[(j+1)%n]}
			if _, dup := directed[k]; dup {
				return nil, fmt.Errorf("%w: %d->%d is used by more than one face", ErrNonManifoldEdge, k.tail, k.head)
			}
			directed[k] = base + j
			m.HalfEdges = append(m.HalfEdges, HalfEdge{
				Next:   base + (j+1)%n,
				Flip:   -1,
				Vertex: v,
				Edge:   -1,
				Face:   fi,
			})
			if m.Vertices[v].HalfEdge < 0 {
				m.Vertices[v].HalfEdge = base + j
			}
		}
		m.Faces = append(m.Faces, Face{HalfEdge: base})
	}

	for i, v := range m.Vertices {
		if v.HalfEdge < 0 {
			return nil, fmt.Errorf("%w: vertex %d", ErrIsolatedVertex, i)
		}
	}

	// Pair twins; unmatched half-edges get a boundary twin.
	faceHalfEdges := len(m.HalfEdges)
	boundaryFrom := make(map[int]int)
	for h := 0; h < faceHalfEdges; h++ {
		if m.HalfEdges[h].Flip >= 0 {
			continue
		}
		tail := m.HalfEdges[h].Vertex
		head := m.Head(h)

		e := len(m.Edges)
		m.Edges = append(m.Edges, Edge{HalfEdge: h})
		m.HalfEdges[h].Edge = e

		if t, ok := directed[dirEdge{head, tail}]; ok {
			m.HalfEdges[h].Flip = t
			m.HalfEdges[t].Flip = h
			m.HalfEdges[t].Edge = e
			continue
		}

		if _, dup := boundaryFrom[head]; dup {
			return nil, fmt.Errorf("%w: vertex %d joins more than one boundary", ErrNonManifoldVertex, head)
		}
		b := len(m.HalfEdges)
		boundaryFrom[head] = b
		m.HalfEdges = append(m.HalfEdges, HalfEdge{
			Next:       -1,
			Flip:       h,
			Vertex:     head,
			Edge:       e,
			Face:       -1,
			OnBoundary: true,
		})
		m.HalfEdges[h].Flip = b
	}

	// Link boundary half-edges into loops. A boundary half-edge ends where
	// its twin starts, and the loop continues from there.
	for b := faceHalfEdges; b < len(m.HalfEdges); b++ {
		end := m.HalfEdges[m.HalfEdges[b].Flip].Vertex
		next, ok := boundaryFrom[end]
		if !ok {
			return nil, fmt.Errorf("%w: boundary stops at vertex %d", ErrNonManifoldVertex, end)
		}
		m.HalfEdges[b].Next = next
	}
	for b := faceHalfEdges; b < len(m.HalfEdges); b++ {
		if m.HalfEdges[b].Face >= 0 {
			continue
		}
		loop := len(m.Boundaries)
		m.Boundaries = append(m.Boundaries, Face{HalfEdge: b})
		for h := b; m.HalfEdges[h].Face < 0; h = m.HalfEdges[h].Next {
			m.HalfEdges[h].Face = loop
		}
	}

	if err := m.checkFans(); err != nil {
		return nil, err
	}
	return m, nil
}

// checkFans verifies that the half-edges leaving each vertex form a single
// ring, which rules out vertices where separate fans touch.
func (m *Mesh) checkFans() error {
	leaving := make([]int, len(m.Vertices))
	for _, h := range m.HalfEdges {
		leaving[h.Vertex]++
	}
	for v := range m.Vertices {
		start := m.Vertices[v].HalfEdge
		n := 0
		for h := start; ; {
			n++
			if n > leaving[v] {
				break
			}
			h = m.HalfEdges[m.HalfEdges[h].Flip].Next
			if h == start {
				break
			}
		}
		if n != leaving[v] {
			return fmt.Errorf("%w: vertex %d has %d half-edges but its ring has %d", ErrNonManifoldVertex, v, leaving[v], n)
		}
	}
	return nil
}

// Builder materializes MeshData into a Mesh and keeps the result.
type Builder struct {
	Mesh *Mesh
}

// BuildMesh builds data and stores the mesh on success.
func (b *Builder) BuildMesh(data MeshData) error {
	m, err := Build(data)
	if err != nil {
		return err
	}
	b.Mesh = m
	return nil
}
