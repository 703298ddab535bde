package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Intersection thresholds. Tuning these trades shadow acne against
// missing thin features.
const (
	// ParallelEpsilon rejects rays whose direction is nearly parallel to a
	// triangle's plane
	ParallelEpsilon = 1e-4
	// SelfHitEpsilon is the smallest sphere root accepted as a hit, which
	// keeps rays leaving a surface from hitting it again
	SelfHitEpsilon = 1e-3
)

// Shape is a primitive that can be intersected by a ray
type Shape interface {
	// Intersect returns the ray parameter and point of the nearest valid
	// intersection, or ok=false when the ray misses
	Intersect(ray core.Ray) (t float64, point core.Vec3, ok bool)
	// NormalAt returns the outward surface normal at a point on the shape
	NormalAt(point core.Vec3) core.Vec3
	// Albedo returns the flat surface color
	Albedo() core.Vec3
}
