package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config holds the shading constants of the Whitted tracer
type Config struct {
	MaxDepth          int       // Deepest recursion level that may still hit geometry
	IndexOfRefraction float64   // Index of refraction of every dielectric sphere
	Diffuse           float64   // Lambertian weight (Kd)
	Specular          float64   // Phong weight (Ks)
	SpecularExponent  float64   // Phong exponent, larger gives smaller highlights
	Background        core.Vec3 // Color returned for rays that escape the scene
	ShadowBias        float64   // Offset of shadow ray origins along the surface normal
}

// DefaultConfig returns the shading constants of the classic renderer
func DefaultConfig() Config {
	return Config{
		MaxDepth:          3,
		IndexOfRefraction: 0.2,
		Diffuse:           0.7,
		Specular:          0.3,
		SpecularExponent:  20,
		Background:        core.Vec3{},
		ShadowBias:        1e-4,
	}
}

// TraceStats counts the work done for one primary ray
type TraceStats struct {
	Rays       int // Scene queries for primary, reflected and refracted rays
	ShadowRays int // Shadow probes toward lights
	MaxDepth   int // Deepest recursion level that was entered
}

// Add accumulates other into s
func (s *TraceStats) Add(other TraceStats) {
	s.Rays += other.Rays
	s.ShadowRays += other.ShadowRays
	s.MaxDepth = max(s.MaxDepth, other.MaxDepth)
}

// Whitted is a recursive ray tracer with direct Lambert/Phong lighting, hard
// shadows and Fresnel-weighted reflection and refraction on spheres. It only
// reads the scene, so one instance may be shared by every worker.
type Whitted struct {
	scene  *scene.Scene
	config Config
}

// NewWhitted creates a tracer for the given scene
func NewWhitted(s *scene.Scene, config Config) *Whitted {
	return &Whitted{scene: s, config: config}
}

// Config returns the shading constants the tracer was created with
func (w *Whitted) Config() Config {
	return w.config
}

// CastRay returns the color seen along direction from origin. depth is the
// current recursion level; primary rays start at 0.
func (w *Whitted) CastRay(origin, direction core.Vec3, depth int) core.Vec3 {
	var stats TraceStats
	return w.castRay(core.NewRay(origin, direction), depth, &stats)
}

// Trace returns the color of a primary ray along with the work it took
func (w *Whitted) Trace(ray core.Ray) (core.Vec3, TraceStats) {
	var stats TraceStats
	color := w.castRay(ray, 0, &stats)
	return color, stats
}

func (w *Whitted) castRay(ray core.Ray, depth int, stats *TraceStats) core.Vec3 {
	if depth > w.config.MaxDepth {
		return w.config.Background
	}

	stats.Rays++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	hit := w.scene.ClosestHit(ray)
	if !hit.Ok() {
		return w.config.Background
	}

	normal := w.scene.Normal(hit)
	albedo := w.scene.Color(hit)

	if depth < w.config.MaxDepth && isDielectric(hit.Kind) {
		return w.transmit(ray, hit, normal, depth, stats).ClampColor()
	}

	return w.directLight(ray, hit.Point, normal, albedo, stats)
}

// isDielectric reports whether a primitive reflects and refracts. Spheres are
// glass; triangles are opaque and diffuse.
func isDielectric(kind scene.HitKind) bool {
	return kind == scene.HitSphere
}

// directLight sums the Lambert and Phong contribution of every visible light
func (w *Whitted) directLight(ray core.Ray, point, normal, albedo core.Vec3, stats *TraceStats) core.Vec3 {
	var color core.Vec3

	for _, light := range w.scene.Lights {
		toLight := light.Subtract(point).Normalize()

		diffuse := math.Max(0, normal.Dot(toLight))
		if diffuse == 0 {
			// Facing away, the light adds nothing even when unoccluded
			continue
		}

		reflected := Reflect(toLight.Negate(), normal)
		specular := math.Pow(math.Max(0, reflected.Dot(ray.Direction.Negate())), w.config.SpecularExponent)

		stats.ShadowRays++
		shadow := core.NewRay(w.offsetOrigin(point, normal, toLight), toLight)
		if w.scene.Occluded(shadow) {
			continue
		}

		contribution := albedo.Multiply(specular * w.config.Specular).Add(albedo.Multiply(w.config.Diffuse))
		color = color.Add(contribution.Multiply(diffuse)).ClampColor()
	}

	return color
}

// transmit blends the reflected and refracted colors by the Fresnel terms
func (w *Whitted) transmit(ray core.Ray, hit scene.Hit, normal core.Vec3, depth int, stats *TraceStats) core.Vec3 {
	kr := Fresnel(ray.Direction, normal, w.config.IndexOfRefraction)

	var refraction core.Vec3
	if kr < 1 {
		direction := Refract(ray.Direction, normal, w.config.IndexOfRefraction)
		if direction.IsZero() {
			kr = 1
		} else {
			refraction = w.castRay(core.NewRay(hit.Point, direction), depth+1, stats)
		}
	}
	kt := 1 - kr

	reflection := w.castRay(core.NewRay(hit.Point, Reflect(ray.Direction, normal)), depth+1, stats)

	return refraction.Multiply(kt).Add(reflection.Multiply(kr))
}

// offsetOrigin moves point off the surface toward the side direction leaves from
func (w *Whitted) offsetOrigin(point, normal, direction core.Vec3) core.Vec3 {
	if normal.Dot(direction) < 0 {
		normal = normal.Negate()
	}
	return point.Add(normal.Multiply(w.config.ShadowBias))
}
