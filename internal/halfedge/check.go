package halfedge

import (
	"errors"
	"fmt"
)

var ErrInconsistent = errors.New("halfedge: inconsistent mesh")

// Check verifies the connectivity invariants of m and returns the first
// violation found.
func (m *Mesh) Check() error {
	nh := len(m.HalfEdges)
	inRange := func(i, n int) bool { return i >= 0 && i < n }

	for i, h := range m.HalfEdges {
		if !inRange(h.Next, nh) || !inRange(h.Flip, nh) {
			return fmt.Errorf("%w: half-edge %d has next %d flip %d", ErrInconsistent, i, h.Next, h.Flip)
		}
		if !inRange(h.Vertex, len(m.Vertices)) || !inRange(h.Edge, len(m.Edges)) {
			return fmt.Errorf("%w: half-edge %d has vertex %d edge %d", ErrInconsistent, i, h.Vertex, h.Edge)
		}
		loops := len(m.Faces)
		if h.OnBoundary {
			loops = len(m.Boundaries)
		}
		if !inRange(h.Face, loops) {
			return fmt.Errorf("%w: half-edge %d has face %d", ErrInconsistent, i, h.Face)
		}

		t := m.HalfEdges[h.Flip]
		if h.Flip == i || t.Flip != i {
			return fmt.Errorf("%w: half-edge %d flip is not an involution", ErrInconsistent, i)
		}
		if t.Edge != h.Edge {
			return fmt.Errorf("%w: half-edge %d and its flip disagree on edge", ErrInconsistent, i)
		}
		if h.OnBoundary && t.OnBoundary {
			return fmt.Errorf("%w: edge %d has no face", ErrInconsistent, h.Edge)
		}
		if m.Head(i) != t.Vertex {
			return fmt.Errorf("%w: half-edge %d ends at %d but its flip starts at %d", ErrInconsistent, i, m.Head(i), t.Vertex)
		}
	}

	for e, edge := range m.Edges {
		if !inRange(edge.HalfEdge, nh) || m.HalfEdges[edge.HalfEdge].Edge != e {
			return fmt.Errorf("%w: edge %d", ErrInconsistent, e)
		}
	}
	for v, vert := range m.Vertices {
		if !inRange(vert.HalfEdge, nh) || m.HalfEdges[vert.HalfEdge].Vertex != v {
			return fmt.Errorf("%w: vertex %d", ErrInconsistent, v)
		}
	}

	if err := m.checkLoops(m.Faces, false); err != nil {
		return err
	}
	return m.checkLoops(m.Boundaries, true)
}

func (m *Mesh) checkLoops(loops []Face, boundary bool) error {
	for f, loop := range loops {
		start := loop.HalfEdge
		if start < 0 || start >= len(m.HalfEdges) {
			return fmt.Errorf("%w: loop %d starts at %d", ErrInconsistent, f, start)
		}
		h := start
		for n := 0; ; n++ {
			if n > len(m.HalfEdges) {
				return fmt.Errorf("%w: loop %d does not close", ErrInconsistent, f)
			}
			he := m.HalfEdges[h]
			if he.Face != f || he.OnBoundary != boundary {
				return fmt.Errorf("%w: half-edge %d is not part of loop %d", ErrInconsistent, h, f)
			}
			h = he.Next
			if h == start {
				break
			}
		}
	}
	return nil
}
