package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int             // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle // Pixel bounds of the tile
	TileImage *image.RGBA     // Image data for just this tile

	// Progress information
	TileNumber int // Number of tiles finished so far, including this one
	TotalTiles int // Total number of tiles in the image
}

// Renderer renders a scene into a framebuffer tile by tile. The scene is
// only read, so it must not change while Render runs.
type Renderer struct {
	config Config
	scene  *scene.Scene
	logger core.Logger
}

// NewRenderer creates a renderer. A nil logger logs through glog.
func NewRenderer(config Config, s *scene.Scene, logger core.Logger) *Renderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Renderer{config: config, scene: s, logger: logger}
}

// Render renders a full frame. The configuration is validated before any
// work starts. onTile, when non-nil, is called from the calling goroutine
// once per tile as soon as that tile's pixels are final.
func (r *Renderer) Render(onTile func(TileCompletionResult)) (*Framebuffer, RenderStats, error) {
	if err := r.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if r.scene == nil {
		return nil, RenderStats{}, fmt.Errorf("%w: no scene", ErrInvalidConfig)
	}

	start := time.Now()
	fb := NewFramebuffer(r.config.Width, r.config.Height, r.config.Layout)
	camera := NewCamera(r.config.Width, r.config.Height, r.config.FOV, r.config.CameraOrigin)
	tracer := integrator.NewWhitted(r.scene, r.config.Shading())
	tiles := NewTileGrid(r.config.Width, r.config.Height, r.config.TileSize)

	pool := NewWorkerPool(r.config.NumWorkers(), len(tiles), func(tile *Tile) RenderStats {
		return RenderTile(fb, camera, tracer, tile.Bounds)
	})

	r.logger.Printf("Rendering %dx%d: %d primitives, %d lights, %d tiles, %d workers\n",
		r.config.Width, r.config.Height, r.scene.GetPrimitiveCount(), len(r.scene.Lights),
		len(tiles), pool.GetNumWorkers())

	pool.Start()
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile})
	}

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	var renderErr error
	tilesX := (r.config.Width + r.config.TileSize - 1) / r.config.TileSize

	// Collect every result before stopping so no worker blocks on a send
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}

		stats.Merge(result.Stats)

		if onTile != nil && renderErr == nil {
			tile := result.Tile
			onTile(TileCompletionResult{
				TileX:      tile.ID % tilesX,
				TileY:      tile.ID / tilesX,
				Bounds:     tile.Bounds,
				TileImage:  fb.SubImage(tile.Bounds),
				TileNumber: i + 1,
				TotalTiles: len(tiles),
			})
		}
	}

	if err := pool.Stop(); err != nil && renderErr == nil {
		renderErr = err
	}
	if renderErr != nil {
		return nil, RenderStats{}, renderErr
	}

	stats.Elapsed = time.Since(start)
	r.logger.Printf("Render completed in %v: %d rays (%.2f per pixel), %d shadow rays, max depth %d\n",
		stats.Elapsed, stats.Rays, stats.RaysPerPixel(), stats.ShadowRays, stats.MaxDepth)

	return fb, stats, nil
}

// RenderTile traces every pixel inside bounds sequentially and writes the
// results into fb. Callers running tiles concurrently must pass disjoint
// bounds.
func RenderTile(fb *Framebuffer, camera *Camera, tracer *integrator.Whitted, bounds image.Rectangle) RenderStats {
	stats := RenderStats{Tiles: 1}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color, trace := tracer.Trace(camera.GetRay(x, y))
			fb.Set(x, y, color)
			stats.AddTrace(trace)
		}
	}

	return stats
}

// Render renders scene with config and returns the finished framebuffer
func Render(config Config, s *scene.Scene) (*Framebuffer, error) {
	fb, _, err := NewRenderer(config, s, nil).Render(nil)
	return fb, err
}
