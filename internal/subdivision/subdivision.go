// Package subdivision refines a half-edge mesh by one level of
// Catmull–Clark subdivision with cubic B-spline boundary rules.
//
// The refined mesh has one point per source face, edge and vertex, stored in
// that order, so face f, edge e and vertex v of the source become output
// vertices f, |F|+e and |F|+|E|+v. Every source face of degree n becomes n
// quads around its face point.
package subdivision

import (
	"math"

	"mesh-subdivider/internal/halfedge"
	"mesh-subdivider/internal/mathutil"
)

// Sink receives the refined geometry.
type Sink interface {
	BuildMesh(data halfedge.MeshData) error
}

// vertexState follows a source vertex through the passes. count is the
// number of face corners at the vertex; boundary marks a vertex whose point
// was fixed by the boundary mask and is excluded from interior averaging.
type vertexState struct {
	count    int
	boundary bool
}

// thetaK weights the pull of a vertex with k incident faces on the edge
// points next to an open boundary.
func thetaK(k int) float64 {
	switch k {
	case 2:
		return 0
	case 3:
		return 0.5
	default:
		return math.Cos(math.Pi / float64(k))
	}
}

// Build computes the control points and quad connectivity of one
// refinement of src. src must be a valid mesh as produced by halfedge.Build;
// it is not modified.
func Build(src *halfedge.Mesh) halfedge.MeshData {
	hes := src.HalfEdges
	verts := src.Vertices
	nf, ne, nv := len(src.Faces), len(src.Edges), len(verts)

	positions := make([]mathutil.Vec3, nf+ne+nv)
	facePts := positions[:nf]
	edgePts := positions[nf : nf+ne]
	vertPts := positions[nf+ne:]

	degree := make([]int, nf)
	state := make([]vertexState, nv)

	// Face points.
	for _, h := range hes {
		if h.OnBoundary {
			continue
		}
		facePts[h.Face].AddTo(verts[h.Vertex].Position)
		degree[h.Face]++
		state[h.Vertex].count++
	}
	for f := range facePts {
		facePts[f] = facePts[f].Div(float64(degree[f]))
	}

	// Edge sums, and face plus neighbour sums for interior vertices.
	for _, h := range hes {
		edgePts[h.Edge].AddTo(verts[h.Vertex].Position)
		if h.OnBoundary {
			continue
		}
		next := hes[h.Next]
		if !hes[h.Flip].OnBoundary {
			fp := facePts[h.Face]
			edgePts[h.Edge].AddTo(fp)
			vertPts[h.Vertex].AddTo(fp.Add(verts[next.Vertex].Position))
			continue
		}
		// h lies along the boundary: correct the edge leaving its far end.
		tip := verts[next.Vertex].Position
		far := verts[hes[next.Next].Vertex].Position
		edgePts[next.Edge].AddTo(tip.Sub(far).Scale(thetaK(state[next.Vertex].count)))
	}

	// Each face half-edge halves its edge, so interior edges end up divided
	// by four and boundary edges by two. Boundary vertices take the cubic
	// B-spline curve mask of their two boundary neighbours.
	for _, h := range hes {
		if !h.OnBoundary {
			edgePts[h.Edge] = edgePts[h.Edge].Div(2)
			continue
		}
		mid := hes[h.Next]
		v0 := verts[h.Vertex].Position
		v1 := verts[mid.Vertex].Position
		v2 := verts[hes[mid.Next].Vertex].Position
		vertPts[mid.Vertex] = v0.Add(v1.Scale(6)).Add(v2).Div(8)
		state[mid.Vertex].boundary = true
	}

	// Interior vertices: (ΣF + ΣR)/k² + (k-2)/k·P.
	for v, s := range state {
		if s.boundary || s.count <= 0 {
			continue
		}
		k := float64(s.count)
		vertPts[v] = vertPts[v].Div(k * k).Add(verts[v].Position.Scale((k - 2) / k))
	}

	// One quad per face corner: face point, incoming edge point, corner
	// point, outgoing edge point.
	quads := make([][]int, 0, len(hes)-src.BoundaryEdgeCount())
	for f, face := range src.Faces {
		h := face.HalfEdge
		for {
			he := hes[h]
			next := hes[he.Next]
			quads = append(quads, []int{f, nf + he.Edge, nf + ne + next.Vertex, nf + next.Edge})
			h = he.Next
			if h == face.HalfEdge {
				break
			}
		}
	}

	return halfedge.MeshData{Positions: positions, Faces: quads}
}

// Refine computes one refinement of src and hands it to dst.
func Refine(src *halfedge.Mesh, dst Sink) error {
	return dst.BuildMesh(Build(src))
}

// Subdivide returns the refined mesh of src. Errors come only from
// rebuilding connectivity and indicate that src violated the manifold
// precondition.
func Subdivide(src *halfedge.Mesh) (*halfedge.Mesh, error) {
	return halfedge.Build(Build(src))
}
