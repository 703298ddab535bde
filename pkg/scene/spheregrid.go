package scene

import (
	"math/rand"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere grid layout
const (
	GridSphereRadius = 1.0
	GridDepth        = -50.0
)

// NewSphereGrid creates a rows x cols grid of unit spheres facing the camera.
// Each sphere's depth is jittered by -1, 0 or +1 using random.
func NewSphereGrid(rows, cols int, random *rand.Rand) *Scene {
	s := New()
	green := core.NewVec3(0, 255, 0)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			// Spheres are spaced four radii apart, centered on the view axis
			x := 2 * float64(j*2-cols) * GridSphereRadius
			y := 2 * float64(i*2-rows) * GridSphereRadius
			z := GridDepth + float64(random.Intn(3)-1)

			s.AddSphere(core.NewVec3(x, y, z), GridSphereRadius, green)
		}
	}

	return s
}
