package scene

import (
	"math/rand"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle wall layout
const (
	wallCells = 5
	wallScale = 20
	wallDepth = -100.0
)

// DefaultLights returns the two point lights above and in front of the grid
func DefaultLights() []core.Vec3 {
	return []core.Vec3{
		core.NewVec3(2, 5, -4),
		core.NewVec3(-2, 5, -4),
	}
}

// NewTriangleWall creates a backdrop of 5x5 square cells, each split into two
// randomly colored triangles whose normals face the camera.
func NewTriangleWall(random *rand.Rand) *Scene {
	s := New()

	for i := 0; i < wallCells; i++ {
		for j := 0; j < wallCells; j++ {
			// Integer division keeps the cells on the same lattice as the grid
			x := float64((j*2 - wallCells) / 2 * wallScale)
			y := float64((i*2 - wallCells) / 2 * wallScale)

			s.AddTriangle(
				core.NewVec3(x, y, wallDepth),
				core.NewVec3(x-wallScale, y, wallDepth),
				core.NewVec3(x, y-wallScale, wallDepth),
				randomColor(random),
			)
			s.AddTriangle(
				core.NewVec3(x, y-wallScale, wallDepth),
				core.NewVec3(x-wallScale, y, wallDepth),
				core.NewVec3(x-wallScale, y-wallScale, wallDepth),
				randomColor(random),
			)
		}
	}

	return s
}

// NewDefaultScene creates the sphere grid in front of the triangle wall, lit
// by the default lights. The same seed always produces the same scene.
func NewDefaultScene(rows, cols int, seed int64) *Scene {
	random := rand.New(rand.NewSource(seed))

	s := New()
	s.Lights = DefaultLights()
	s.Merge(NewSphereGrid(rows, cols, random))
	s.Merge(NewTriangleWall(random))
	return s
}

// NewMirrorScene creates two spheres facing each other so that rays bounce
// between them until the depth limit stops the recursion.
func NewMirrorScene() *Scene {
	s := New()
	s.Lights = DefaultLights()
	s.AddSphere(core.NewVec3(-1.05, 0, -4), 1, core.NewVec3(200, 200, 255))
	s.AddSphere(core.NewVec3(1.05, 0, -4), 1, core.NewVec3(255, 200, 200))
	return s
}

// NewShadowScene creates a floor triangle pair under a single light with an
// opaque triangle blocking part of the light.
func NewShadowScene() *Scene {
	s := New()
	s.AddLight(core.NewVec3(0, 10, -5))

	gray := core.NewVec3(180, 180, 180)
	s.AddTriangle(core.NewVec3(-10, -2, 0), core.NewVec3(10, -2, 0), core.NewVec3(10, -2, -20), gray)
	s.AddTriangle(core.NewVec3(-10, -2, 0), core.NewVec3(10, -2, -20), core.NewVec3(-10, -2, -20), gray)

	// Occluder hanging between the light and the floor, facing down
	red := core.NewVec3(255, 40, 40)
	s.AddTriangle(core.NewVec3(-3, 3, -2), core.NewVec3(0, 3, -9), core.NewVec3(3, 3, -2), red)
	s.AddSphere(core.NewVec3(3, -1, -8), 1, core.NewVec3(60, 60, 255))
	return s
}

// NewEmptyScene creates a scene with lights but no primitives
func NewEmptyScene() *Scene {
	s := New()
	s.Lights = DefaultLights()
	return s
}

func randomColor(random *rand.Rand) core.Vec3 {
	return core.NewVec3(
		float64(random.Intn(256)),
		float64(random.Intn(256)),
		float64(random.Intn(256)),
	)
}
