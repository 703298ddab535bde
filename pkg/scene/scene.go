package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering. A scene is built
// once and must not be modified while a render is using it; every worker
// reads it concurrently.
type Scene struct {
	Triangles []geometry.Triangle // Opaque diffuse primitives
	Spheres   []geometry.Sphere   // Dielectric primitives
	Lights    []core.Vec3         // Point light positions
}

// New creates an empty scene
func New() *Scene {
	return &Scene{}
}

// AddTriangle appends a triangle to the scene
func (s *Scene) AddTriangle(p1, p2, p3, color core.Vec3) {
	s.Triangles = append(s.Triangles, geometry.NewTriangle(p1, p2, p3, color))
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, color core.Vec3) {
	s.Spheres = append(s.Spheres, geometry.NewSphere(center, radius, color))
}

// AddLight appends a point light to the scene
func (s *Scene) AddLight(position core.Vec3) {
	s.Lights = append(s.Lights, position)
}

// Merge appends all primitives and lights of other after the ones already in s
func (s *Scene) Merge(other *Scene) {
	if other == nil {
		return
	}
	s.Triangles = append(s.Triangles, other.Triangles...)
	s.Spheres = append(s.Spheres, other.Spheres...)
	s.Lights = append(s.Lights, other.Lights...)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Triangles) + len(s.Spheres)
}

// IsEmpty reports whether the scene has no primitives
func (s *Scene) IsEmpty() bool {
	return s.GetPrimitiveCount() == 0
}
