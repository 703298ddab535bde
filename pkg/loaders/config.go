package loaders

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// RenderConfigFile mirrors renderer.Config in YAML. Absent keys leave the
// base configuration untouched.
type RenderConfigFile struct {
	Width             *int      `yaml:"width"`
	Height            *int      `yaml:"height"`
	FOV               *float64  `yaml:"fov"`
	CameraOrigin      []float64 `yaml:"camera_origin"`
	MaxDepth          *int      `yaml:"max_depth"`
	IndexOfRefraction *float64  `yaml:"index_of_refraction"`
	Diffuse           *float64  `yaml:"diffuse"`
	Specular          *float64  `yaml:"specular"`
	SpecularExponent  *float64  `yaml:"specular_exponent"`
	Background        []float64 `yaml:"background"`
	Layout            *string   `yaml:"layout"`
	TileSize          *int      `yaml:"tile_size"`
	Workers           *int      `yaml:"workers"`
}

// LoadRenderConfig reads a YAML render configuration and applies it on top
// of base. The result is validated.
func LoadRenderConfig(filename string, base renderer.Config) (renderer.Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := ParseRenderConfig(data, base)
	if err != nil {
		return base, fmt.Errorf("while loading %s: %w", filename, err)
	}
	return config, nil
}

// ParseRenderConfig applies YAML data on top of base and validates the result
func ParseRenderConfig(data []byte, base renderer.Config) (renderer.Config, error) {
	var file RenderConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return base, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config, err := file.Apply(base)
	if err != nil {
		return base, err
	}
	if err := config.Validate(); err != nil {
		return base, err
	}
	return config, nil
}

// Apply overrides the fields of config that are present in the file
func (f RenderConfigFile) Apply(config renderer.Config) (renderer.Config, error) {
	setInt(&config.Width, f.Width)
	setInt(&config.Height, f.Height)
	setFloat(&config.FOV, f.FOV)
	setInt(&config.MaxDepth, f.MaxDepth)
	setFloat(&config.IndexOfRefraction, f.IndexOfRefraction)
	setFloat(&config.Diffuse, f.Diffuse)
	setFloat(&config.Specular, f.Specular)
	setFloat(&config.SpecularExponent, f.SpecularExponent)
	setInt(&config.TileSize, f.TileSize)
	setInt(&config.Workers, f.Workers)

	if f.CameraOrigin != nil {
		origin, err := vec3Field("camera_origin", f.CameraOrigin)
		if err != nil {
			return config, err
		}
		config.CameraOrigin = origin
	}
	if f.Background != nil {
		background, err := vec3Field("background", f.Background)
		if err != nil {
			return config, err
		}
		config.Background = background.ClampColor()
	}
	if f.Layout != nil {
		layout, err := renderer.ParsePixelLayout(*f.Layout)
		if err != nil {
			return config, err
		}
		config.Layout = layout
	}

	return config, nil
}

func vec3Field(name string, v []float64) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: %s needs 3 values, got %d", renderer.ErrInvalidConfig, name, len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
