package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Reflect returns the mirror reflection of incident about normal.
// r = i - 2*dot(i,n)*n
func Reflect(incident, normal core.Vec3) core.Vec3 {
	return incident.Subtract(normal.Multiply(2 * incident.Dot(normal)))
}

// Refract returns the Snell's law refraction of incident through a surface
// with outward normal and index of refraction ior. The side of the surface
// the ray comes from is taken from the sign of dot(incident, normal). Total
// internal reflection and a non-positive ior return the zero vector.
func Refract(incident, normal core.Vec3, ior float64) core.Vec3 {
	if ior <= 0 {
		return core.Vec3{}
	}

	cosi := clamp(incident.Dot(normal), -1, 1)
	etai, etat := 1.0, ior
	n := normal
	if cosi < 0 {
		// Entering: the incident ray opposes the outward normal
		cosi = -cosi
	} else {
		etai, etat = etat, etai
		n = normal.Negate()
	}

	eta := etai / etat
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return core.Vec3{}
	}

	return incident.Multiply(eta).Add(n.Multiply(eta*cosi - math.Sqrt(k)))
}

// Fresnel returns the fraction of light reflected at a dielectric boundary
// using the exact Fresnel equations for unpolarized light. Transmittance is
// 1 - kr. Total internal reflection and guarded degenerate inputs return 1.
func Fresnel(incident, normal core.Vec3, ior float64) float64 {
	if ior <= 0 {
		return 1
	}

	cosi := clamp(incident.Dot(normal), -1, 1)
	etai, etat := 1.0, ior
	if cosi > 0 {
		// Leaving the medium
		etai, etat = etat, etai
	}

	sint := etai / etat * math.Sqrt(math.Max(0, 1-cosi*cosi))
	if sint >= 1 {
		return 1
	}

	cost := math.Sqrt(math.Max(0, 1-sint*sint))
	cosi = math.Abs(cosi)

	rsDenom := etat*cosi + etai*cost
	rpDenom := etai*cosi + etat*cost
	if rsDenom < denominatorEpsilon || rpDenom < denominatorEpsilon {
		return 1
	}

	rs := (etat*cosi - etai*cost) / rsDenom
	rp := (etai*cosi - etat*cost) / rpDenom
	return (rs*rs + rp*rp) / 2
}

// denominatorEpsilon guards the Fresnel quotients against grazing rays
const denominatorEpsilon = 1e-12

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
