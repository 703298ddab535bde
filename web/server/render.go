package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// TileUpdate represents a single completed tile sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	X          int    `json:"x"` // Pixel offset of the tile
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"` // Base64 encoded PNG
	TileNumber int    `json:"tileNumber"`
	TotalTiles int    `json:"totalTiles"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels  int     `json:"totalPixels"`
	Tiles        int     `json:"tiles"`
	Workers      int     `json:"workers"`
	Rays         int     `json:"rays"`
	ShadowRays   int     `json:"shadowRays"`
	RaysPerPixel float64 `json:"raysPerPixel"`
	MaxDepth     int     `json:"maxDepth"`
	ElapsedMs    int64   `json:"elapsedMs"`
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:  stats.TotalPixels,
		Tiles:        stats.Tiles,
		Workers:      stats.Workers,
		Rays:         stats.Rays,
		ShadowRays:   stats.ShadowRays,
		RaysPerPixel: stats.RaysPerPixel(),
		MaxDepth:     stats.MaxDepth,
		ElapsedMs:    stats.Elapsed.Milliseconds(),
	}
}

// SSEEvent is one server-sent event queued for the writer goroutine
type SSEEvent struct {
	Event string
	Data  string
}

// handleRender renders a whole frame and responds with a PNG
func (s *Server) handleRender(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	logger := NewWebLogger(fmt.Sprintf("render-%d", time.Now().UnixNano()), nil)
	fb, stats, err := renderer.NewRenderer(req.renderConfig(), sceneObj, logger).Render(nil)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Render error: %v", err)})
	}

	var buf bytes.Buffer
	if err := loaders.EncodePNG(&buf, fb); err != nil {
		glog.Errorf("Failed to encode render: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to encode image"})
	}

	c.Response().Header().Set("X-Render-Rays", fmt.Sprint(stats.Rays))
	c.Response().Header().Set("X-Render-Time-Ms", fmt.Sprint(stats.Elapsed.Milliseconds()))
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// handleRenderStream renders a frame and streams finished tiles with SSE
func (s *Server) handleRenderStream(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	w := c.Response()
	s.setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	// Use request context to detect client disconnection
	ctx := c.Request().Context()

	// Only the writer goroutine touches the response from here on
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()

	consoleChan := make(chan ConsoleMessage, 100)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	logger := NewWebLogger(fmt.Sprintf("render-%d", time.Now().UnixNano()), consoleChan)
	_, stats, err := renderer.NewRenderer(req.renderConfig(), sceneObj, logger).Render(func(tile renderer.TileCompletionResult) {
		s.handleTileUpdate(ctx, sseEventChan, tile)
	})

	// Forward remaining console output before the final event
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Render error: %v", err))
	} else {
		data, _ := json.Marshal(newStats(stats))
		s.sendEvent(ctx, sseEventChan, SSEEvent{Event: "complete", Data: string(data)})
	}

	close(sseEventChan)
	<-writerDone
	return nil
}

// setSSEHeaders sets the headers for an event stream
func (s *Server) setSSEHeaders(w *echo.Response) {
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// writeSSEEvents writes queued events until the channel closes or the client goes away
func (s *Server) writeSSEEvents(ctx context.Context, w *echo.Response, events <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, event.Data)
			w.Flush()
		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards logger output as console events
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, events chan<- SSEEvent) {
	for msg := range consoleChan {
		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		select {
		case events <- SSEEvent{Event: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Writer is behind, drop console output rather than stall the render
		}
	}
}

// handleTileUpdate encodes a finished tile and queues it
func (s *Server) handleTileUpdate(ctx context.Context, events chan<- SSEEvent, tile renderer.TileCompletionResult) {
	imageData, err := imageToBase64PNG(tile.TileImage)
	if err != nil {
		glog.Errorf("Failed to encode tile %d: %v", tile.TileNumber, err)
		return
	}

	update := TileUpdate{
		TileX:      tile.TileX,
		TileY:      tile.TileY,
		X:          tile.Bounds.Min.X,
		Y:          tile.Bounds.Min.Y,
		Width:      tile.Bounds.Dx(),
		Height:     tile.Bounds.Dy(),
		ImageData:  imageData,
		TileNumber: tile.TileNumber,
		TotalTiles: tile.TotalTiles,
	}

	data, err := json.Marshal(update)
	if err != nil {
		glog.Errorf("Failed to marshal tile update: %v", err)
		return
	}
	s.sendEvent(ctx, events, SSEEvent{Event: "tile", Data: string(data)})
}

// handleError queues an error event
func (s *Server) handleError(ctx context.Context, events chan<- SSEEvent, message string) {
	glog.Warning(message)
	s.sendEvent(ctx, events, SSEEvent{Event: "error", Data: message})
}

// sendEvent blocks until the writer accepts the event or the client disconnects
func (s *Server) sendEvent(ctx context.Context, events chan<- SSEEvent, event SSEEvent) {
	select {
	case events <- event:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := loaders.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
