package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Index        int                    `json:"index"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	PixelColor   [3]uint8               `json:"pixelColor"`
	Rays         int                    `json:"rays"`
	Depth        int                    `json:"depth"`
	Properties   map[string]interface{} `json:"properties"`
}

// handleInspect traces the primary ray through pixel (x, y) and describes
// the primitive it hits and the color the pixel renders to
func (s *Server) handleInspect(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
	}

	x, errX := strconv.Atoi(c.QueryParam("x"))
	y, errY := strconv.Atoi(c.QueryParam("y"))
	if errX != nil || errY != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid pixel coordinates"})
	}
	if x < 0 || x >= req.Width || y < 0 || y >= req.Height {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("Pixel (%d, %d) outside %dx%d image", x, y, req.Width, req.Height),
		})
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	config := req.renderConfig()
	camera := renderer.NewCamera(config.Width, config.Height, config.FOV, config.CameraOrigin)
	ray := camera.GetRay(x, y)

	color, trace := integrator.NewWhitted(sceneObj, config.Shading()).Trace(ray)
	response := InspectResponse{
		PixelColor: color.ToRGB(),
		Rays:       trace.Rays,
		Depth:      trace.MaxDepth,
		Properties: map[string]interface{}{},
	}

	hit := sceneObj.ClosestHit(ray)
	if !hit.Ok() {
		return c.JSON(http.StatusOK, response)
	}

	normal := sceneObj.Normal(hit)
	albedo := sceneObj.Color(hit)
	response.Hit = true
	response.GeometryType = hit.Kind.String()
	response.Index = hit.Index
	response.Point = vecArray(hit.Point)
	response.Normal = vecArray(normal)
	response.Distance = hit.Distance
	response.Properties["color"] = hexColor(albedo)

	switch hit.Kind {
	case scene.HitSphere:
		sphere := sceneObj.Spheres[hit.Index]
		response.MaterialType = "dielectric"
		response.Properties["center"] = vecArray(sphere.Center)
		response.Properties["radius"] = sphere.Radius
		response.Properties["refractiveIndex"] = config.IndexOfRefraction
	case scene.HitTriangle:
		tri := sceneObj.Triangles[hit.Index]
		response.MaterialType = "diffuse"
		response.Properties["vertices"] = [3][3]float64{vecArray(tri.P1), vecArray(tri.P2), vecArray(tri.P3)}
	}

	return c.JSON(http.StatusOK, response)
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	rgb := c.ToRGB()
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
