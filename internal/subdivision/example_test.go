package subdivision_test

import (
	"fmt"

	"mesh-subdivider/internal/halfedge"
	"mesh-subdivider/internal/subdivision"
)

func ExampleSubdivide() {
	cube, err := halfedge.Build(halfedge.Cube())
	if err != nil {
		panic(err)
	}
	refined, err := subdivision.Subdivide(cube)
	if err != nil {
		panic(err)
	}
	fmt.Println(len(refined.Vertices), len(refined.Edges), len(refined.Faces))
	fmt.Printf("%.4f\n", refined.Vertices[len(refined.Vertices)-1].Position)
	// Output:
	// 26 48 24
	// [-0.5556 0.5556 0.5556]
}
