package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera generates primary rays from a fixed origin looking down -Z. The
// image plane sits one unit in front of the camera.
type Camera struct {
	origin core.Vec3
	width  int
	height int
	scale  float64 // tan(fov/2)
	aspect float64
}

// NewCamera creates a camera for a width x height canvas
func NewCamera(width, height int, fov float64, origin core.Vec3) *Camera {
	return &Camera{
		origin: origin,
		width:  width,
		height: height,
		scale:  math.Tan(fov * 0.5 * math.Pi / 180),
		aspect: float64(width) / float64(height),
	}
}

// GetRay returns the primary ray through the center of pixel (x, y), where
// (0, 0) is the top-left pixel
func (c *Camera) GetRay(x, y int) core.Ray {
	px := (2*(float64(x)+0.5)/float64(c.width) - 1) * c.scale * c.aspect
	py := (1 - 2*(float64(y)+0.5)/float64(c.height)) * c.scale
	return core.NewRay(c.origin, core.NewVec3(px, py, -1))
}
