package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Server handles web requests for the Whitted raytracer
type Server struct {
	port      int
	scenesDir string
	echo      *echo.Echo
}

// NewServer creates a new web server. Scene files are discovered in scenesDir.
func NewServer(port int, scenesDir string) *Server {
	s := &Server{port: port, scenesDir: scenesDir}

	e := echo.New()
	e.HideBanner = true
	e.Use(corsMiddleware)

	// API endpoints
	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/scene-config", s.handleSceneConfig)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/render/stream", s.handleRenderStream)
	e.GET("/api/inspect", s.handleInspect)

	s.echo = e
	return s
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	glog.Infof("Starting web server on http://localhost%s", addr)
	return s.echo.Start(addr)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusNoContent)
		}
		return next(c)
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene             string  `json:"scene"`             // Scene ID (e.g., "default" or "file:glass-row")
	Width             int     `json:"width"`             // Image width
	Height            int     `json:"height"`            // Image height
	FOV               float64 `json:"fov"`               // Vertical field of view in degrees
	MaxDepth          int     `json:"maxDepth"`          // Reflection/refraction recursion limit
	IndexOfRefraction float64 `json:"indexOfRefraction"` // Index of refraction of spheres
	Rows              int     `json:"rows"`              // Sphere grid rows
	Cols              int     `json:"cols"`              // Sphere grid columns
	Seed              int64   `json:"seed"`              // Seed for procedural scenes
}

// intLimit bounds an integer query parameter
type intLimit struct {
	Default int `json:"default"`
	Min     int `json:"min"`
	Max     int `json:"max"`
}

// floatLimit bounds a float query parameter
type floatLimit struct {
	Default float64 `json:"default"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

var (
	widthLimit    = intLimit{Default: 400, Min: 16, Max: 2560}
	heightLimit   = intLimit{Default: 300, Min: 16, Max: 1440}
	maxDepthLimit = intLimit{Default: 3, Min: 0, Max: 10}
	rowsLimit     = intLimit{Default: 10, Min: 0, Max: 100}
	colsLimit     = intLimit{Default: 10, Min: 0, Max: 100}
	fovLimit      = floatLimit{Default: 90, Min: 1, Max: 179}
	iorLimit      = floatLimit{Default: 0.2, Min: 0.01, Max: 5}
)

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "default"}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", widthLimit); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", heightLimit); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", maxDepthLimit); err != nil {
		return nil, err
	}
	if req.Rows, err = parseIntParam(values, "rows", rowsLimit); err != nil {
		return nil, err
	}
	if req.Cols, err = parseIntParam(values, "cols", colsLimit); err != nil {
		return nil, err
	}
	if req.FOV, err = parseFloatParam(values, "fov", fovLimit); err != nil {
		return nil, err
	}
	if req.IndexOfRefraction, err = parseFloatParam(values, "ior", iorLimit); err != nil {
		return nil, err
	}

	req.Seed = scene.DefaultOptions().Seed
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	if req.Width*req.Height > 1280*720 && req.Rows*req.Cols > 2500 {
		glog.Warningf("Render warning: large image with %d spheres may render slowly", req.Rows*req.Cols)
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, limit intLimit) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < limit.Min || parsed > limit.Max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, limit.Min, limit.Max, parsed)
		}
		return parsed, nil
	}
	return limit.Default, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, limit floatLimit) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < limit.Min || parsed > limit.Max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, limit.Min, limit.Max, parsed)
		}
		return parsed, nil
	}
	return limit.Default, nil
}

// renderConfig turns a validated request into a renderer configuration
func (req *RenderRequest) renderConfig() renderer.Config {
	config := renderer.DefaultConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.FOV = req.FOV
	config.MaxDepth = req.MaxDepth
	config.IndexOfRefraction = req.IndexOfRefraction
	config.Layout = renderer.LayoutRGBA
	return config
}

// createScene builds a built-in scene or loads a discovered scene file
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	if !strings.HasPrefix(req.Scene, "file:") {
		return scene.ByName(req.Scene, scene.Options{Rows: req.Rows, Cols: req.Cols, Seed: req.Seed})
	}

	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		return nil, fmt.Errorf("while listing scene files: %w", err)
	}
	for _, info := range files {
		if info.ID == req.Scene {
			return loaders.LoadScene(info.FilePath)
		}
	}
	return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, req.Scene)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files grouped for the UI
func (s *Server) handleScenes(c echo.Context) error {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		glog.Errorf("Failed to list scenes: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list scenes"})
	}
	return c.JSON(http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	req := &RenderRequest{Scene: sceneName}
	opts := scene.DefaultOptions()
	req.Rows, req.Cols, req.Seed = opts.Rows, opts.Cols, opts.Seed
	sceneObj, err := s.createScene(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown scene: " + sceneName})
	}

	response := map[string]interface{}{
		"scene": sceneName,
		"stats": map[string]int{
			"triangles": len(sceneObj.Triangles),
			"spheres":   len(sceneObj.Spheres),
			"lights":    len(sceneObj.Lights),
		},
		"defaults": map[string]interface{}{
			"width":             widthLimit.Default,
			"height":            heightLimit.Default,
			"fov":               fovLimit.Default,
			"maxDepth":          maxDepthLimit.Default,
			"indexOfRefraction": iorLimit.Default,
			"rows":              opts.Rows,
			"cols":              opts.Cols,
			"seed":              opts.Seed,
		},
		"limits": map[string]interface{}{
			"width":             widthLimit,
			"height":            heightLimit,
			"fov":               fovLimit,
			"maxDepth":          maxDepthLimit,
			"indexOfRefraction": iorLimit,
			"rows":              rowsLimit,
			"cols":              colsLimit,
		},
	}

	return c.JSON(http.StatusOK, response)
}
