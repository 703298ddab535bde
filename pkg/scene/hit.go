package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// HitKind identifies which class of primitive a ray hit
type HitKind uint8

const (
	HitNone HitKind = iota
	HitTriangle
	HitSphere
)

func (k HitKind) String() string {
	switch k {
	case HitNone:
		return "none"
	case HitTriangle:
		return "triangle"
	case HitSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Hit is the result of a closest-hit query. Index and Point are only
// meaningful when Kind is not HitNone.
type Hit struct {
	Kind     HitKind
	Index    int       // Index into Scene.Triangles or Scene.Spheres
	Point    core.Vec3 // Intersection point
	Distance float64   // Ray parameter of the intersection
}

// Ok reports whether the query hit anything
func (h Hit) Ok() bool {
	return h.Kind != HitNone
}

// ClosestHit scans every triangle and then every sphere and returns the
// nearest intersection along the ray. When the nearest triangle and the
// nearest sphere are at exactly the same distance the triangle wins.
func (s *Scene) ClosestHit(ray core.Ray) Hit {
	triIndex, triDist, triPoint := nearest(s.Triangles, ray)
	sphIndex, sphDist, sphPoint := nearest(s.Spheres, ray)

	switch {
	case triIndex < 0 && sphIndex < 0:
		return Hit{Kind: HitNone}
	case sphIndex < 0 || (triIndex >= 0 && triDist <= sphDist):
		return Hit{Kind: HitTriangle, Index: triIndex, Point: triPoint, Distance: triDist}
	default:
		return Hit{Kind: HitSphere, Index: sphIndex, Point: sphPoint, Distance: sphDist}
	}
}

// Occluded reports whether the ray hits any primitive at all. Shadow rays
// use it, so there is no distance cutoff.
func (s *Scene) Occluded(ray core.Ray) bool {
	return anyHit(s.Triangles, ray) || anyHit(s.Spheres, ray)
}

// Normal returns the outward surface normal at the hit point
func (s *Scene) Normal(h Hit) core.Vec3 {
	switch h.Kind {
	case HitTriangle:
		return s.Triangles[h.Index].NormalAt(h.Point)
	case HitSphere:
		return s.Spheres[h.Index].NormalAt(h.Point)
	default:
		return core.Vec3{}
	}
}

// Color returns the flat color of the primitive that was hit
func (s *Scene) Color(h Hit) core.Vec3 {
	switch h.Kind {
	case HitTriangle:
		return s.Triangles[h.Index].Albedo()
	case HitSphere:
		return s.Spheres[h.Index].Albedo()
	default:
		return core.Vec3{}
	}
}

// nearest returns the index, distance and point of the closest shape the ray
// hits, or index -1 when it hits none. Ties keep the earlier shape.
func nearest[S geometry.Shape](shapes []S, ray core.Ray) (int, float64, core.Vec3) {
	index := -1
	closest := math.Inf(1)
	var point core.Vec3

	for i, shape := range shapes {
		if t, p, ok := shape.Intersect(ray); ok && t < closest {
			index, closest, point = i, t, p
		}
	}

	return index, closest, point
}

func anyHit[S geometry.Shape](shapes []S, ray core.Ray) bool {
	for _, shape := range shapes {
		if _, _, ok := shape.Intersect(ray); ok {
			return true
		}
	}
	return false
}
