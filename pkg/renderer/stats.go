package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	Tiles       int           // Number of tiles rendered
	Workers     int           // Number of parallel workers
	Rays        int           // Primary and secondary rays traced
	ShadowRays  int           // Shadow probes toward lights
	MaxDepth    int           // Deepest recursion level reached by any pixel
	Elapsed     time.Duration // Wall time of the whole render
}

// AddTrace accumulates the work of one primary ray
func (s *RenderStats) AddTrace(trace integrator.TraceStats) {
	s.TotalPixels++
	s.Rays += trace.Rays
	s.ShadowRays += trace.ShadowRays
	s.MaxDepth = max(s.MaxDepth, trace.MaxDepth)
}

// Merge accumulates the statistics of one tile
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.Tiles += other.Tiles
	s.Rays += other.Rays
	s.ShadowRays += other.ShadowRays
	s.MaxDepth = max(s.MaxDepth, other.MaxDepth)
}

// RaysPerPixel returns the average number of rays traced per pixel
func (s RenderStats) RaysPerPixel() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.Rays) / float64(s.TotalPixels)
}
