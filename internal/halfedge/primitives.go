package halfedge

import "mesh-subdivider/internal/mathutil"

// Cube returns the closed cube [-1,1]³ as six outward-facing quads.
func Cube() MeshData {
	return MeshData{
		Positions: []mathutil.Vec3{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		},
		Faces: [][]int{
			{0, 3, 2, 1},
			{4, 5, 6, 7},
			{0, 1, 5, 4},
			{2, 3, 7, 6},
			{0, 4, 7, 3},
			{1, 2, 6, 5},
		},
	}
}

// Tetrahedron returns a closed regular tetrahedron inscribed in [-1,1]³.
func Tetrahedron() MeshData {
	return MeshData{
		Positions: []mathutil.Vec3{
			{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1},
		},
		Faces: [][]int{
			{0, 1, 2},
			{0, 3, 1},
			{0, 2, 3},
			{1, 3, 2},
		},
	}
}

// Grid returns an open n×n patch of unit quads covering [0,n]² in the z=0
// plane, facing +z. Vertex (x, y) has index y*(n+1)+x.
func Grid(n int) MeshData {
	var data MeshData
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			data.Positions = append(data.Positions, mathutil.Vec3{float64(x), float64(y), 0})
		}
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := y*(n+1) + x
			data.Faces = append(data.Faces, []int{i, i + 1, i + n + 2, i + n + 1})
		}
	}
	return data
}
