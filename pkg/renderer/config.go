package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// ErrInvalidConfig is wrapped by every configuration validation error
var ErrInvalidConfig = errors.New("invalid render config")

// PixelLayout fixes the channel order of framebuffer pixels
type PixelLayout int

const (
	LayoutRGB  PixelLayout = iota // 3 bytes: red, green, blue
	LayoutRGBA                    // 4 bytes: red, green, blue, alpha
	LayoutBGRA                    // 4 bytes: blue, green, red, alpha
)

// Channels returns the number of bytes per pixel
func (l PixelLayout) Channels() int {
	if l == LayoutRGB {
		return 3
	}
	return 4
}

func (l PixelLayout) String() string {
	switch l {
	case LayoutRGB:
		return "rgb"
	case LayoutRGBA:
		return "rgba"
	case LayoutBGRA:
		return "bgra"
	default:
		return fmt.Sprintf("PixelLayout(%d)", int(l))
	}
}

// ParsePixelLayout parses "rgb", "rgba" or "bgra", ignoring case
func ParsePixelLayout(s string) (PixelLayout, error) {
	switch strings.ToLower(s) {
	case "rgb":
		return LayoutRGB, nil
	case "rgba":
		return LayoutRGBA, nil
	case "bgra":
		return LayoutBGRA, nil
	default:
		return 0, fmt.Errorf("%w: unknown pixel layout %q", ErrInvalidConfig, s)
	}
}

// Config contains everything needed to render a scene
type Config struct {
	Width  int     // Canvas width in pixels
	Height int     // Canvas height in pixels
	FOV    float64 // Vertical field of view in degrees

	CameraOrigin core.Vec3 // Fixed camera position, looking down -Z

	MaxDepth          int       // Reflection/refraction recursion limit
	IndexOfRefraction float64   // Index of refraction of spheres
	Diffuse           float64   // Lambertian weight
	Specular          float64   // Phong weight
	SpecularExponent  float64   // Phong exponent
	Background        core.Vec3 // Color of rays that escape the scene

	Layout   PixelLayout // Framebuffer channel order
	TileSize int         // Size of each square tile (64 recommended)
	Workers  int         // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns the settings of the classic 1440p render
func DefaultConfig() Config {
	shading := integrator.DefaultConfig()
	return Config{
		Width:             2560,
		Height:            1440,
		FOV:               90,
		CameraOrigin:      core.NewVec3(0, 0, 3),
		MaxDepth:          shading.MaxDepth,
		IndexOfRefraction: shading.IndexOfRefraction,
		Diffuse:           shading.Diffuse,
		Specular:          shading.Specular,
		SpecularExponent:  shading.SpecularExponent,
		Background:        shading.Background,
		Layout:            LayoutBGRA,
		TileSize:          64,
		Workers:           0,
	}
}

// Validate reports the first problem that would prevent rendering
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: field of view %g must be in (0, 180)", ErrInvalidConfig, c.FOV)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d must not be negative", ErrInvalidConfig, c.MaxDepth)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d must be positive", ErrInvalidConfig, c.TileSize)
	case c.Workers < 0:
		return fmt.Errorf("%w: worker count %d must not be negative", ErrInvalidConfig, c.Workers)
	case c.Layout < LayoutRGB || c.Layout > LayoutBGRA:
		return fmt.Errorf("%w: unknown pixel layout %d", ErrInvalidConfig, int(c.Layout))
	}
	return nil
}

// NumWorkers returns the effective worker count
func (c Config) NumWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Shading returns the tracer settings carried by the render config
func (c Config) Shading() integrator.Config {
	shading := integrator.DefaultConfig()
	shading.MaxDepth = c.MaxDepth
	shading.IndexOfRefraction = c.IndexOfRefraction
	shading.Diffuse = c.Diffuse
	shading.Specular = c.Specular
	shading.SpecularExponent = c.SpecularExponent
	shading.Background = c.Background
	return shading
}
