package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a flat-colored sphere
type Sphere struct {
	Center core.Vec3
	Radius float64
	Color  core.Vec3 // Flat color, channels in [0, 255]
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, color core.Vec3) Sphere {
	return Sphere{Center: center, Radius: radius, Color: color}
}

// NormalAt returns the outward normal at a point on the sphere
func (s Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// Albedo returns the sphere's flat color
func (s Sphere) Albedo() core.Vec3 {
	return s.Color
}

// Roots solves |O + tD - C|^2 = r^2 and returns both roots ordered so that
// t0 <= t1. ok is false when the ray misses the sphere entirely.
func (s Sphere) Roots(ray core.Ray) (t0, t1 float64, ok bool) {
	if s.Radius <= 0 {
		return 0, 0, false
	}

	// Quadratic equation coefficients: at² + bt + c = 0
	l := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(l)
	c := l.Dot(l) - s.Radius*s.Radius

	if a == 0 {
		return 0, 0, false
	}

	discriminant := b*b - 4*a*c
	switch {
	case discriminant < 0:
		return 0, 0, false
	case discriminant == 0:
		t0 = -0.5 * b / a
		t1 = t0
	default:
		// Stable form avoids cancellation when b is close to sqrt(discriminant)
		var q float64
		if b > 0 {
			q = -0.5 * (b + math.Sqrt(discriminant))
		} else {
			q = -0.5 * (b - math.Sqrt(discriminant))
		}
		t0 = q / a
		t1 = c / q
	}

	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}

// Intersect returns the nearest root beyond SelfHitEpsilon and its point
func (s Sphere) Intersect(ray core.Ray) (float64, core.Vec3, bool) {
	t0, t1, ok := s.Roots(ray)
	if !ok {
		return 0, core.Vec3{}, false
	}

	// Roots at or behind the origin, or too close to it, do not count
	if t0 <= SelfHitEpsilon {
		t0 = t1
		if t0 <= SelfHitEpsilon {
			return 0, core.Vec3{}, false
		}
	}

	return t0, ray.At(t0), true
}
