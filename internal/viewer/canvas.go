// Package viewer presents a render in a desktop window while tiles finish.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ErrClosedEarly is returned when the window is closed before the render finished
var ErrClosedEarly = errors.New("window closed before render finished")

// Canvas collects finished tiles from the render goroutine and hands
// consistent snapshots to the window's draw loop
type Canvas struct {
	mu       sync.Mutex
	img      *image.RGBA
	dirty    bool
	tiles    int
	total    int
	finished bool
	err      error
}

// NewCanvas creates a black canvas of the given size
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Bounds returns the canvas size
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// DrawTile copies a finished tile onto the canvas
func (c *Canvas) DrawTile(result renderer.TileCompletionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	draw.Draw(c.img, result.Bounds, result.TileImage, image.Point{}, draw.Src)
	c.dirty = true
	c.tiles = result.TileNumber
	c.total = result.TotalTiles
}

// Finish records the outcome of the render
func (c *Canvas) Finish(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.finished = true
	c.err = err
}

// Snapshot copies the canvas pixels into dst when they changed since the
// last snapshot and reports whether it did. dst must hold 4*width*height bytes.
func (c *Canvas) Snapshot(dst []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return false
	}
	copy(dst, c.img.Pix)
	c.dirty = false
	return true
}

// Title returns a window title showing render progress
func (c *Canvas) Title(base string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.finished && c.err != nil:
		return base + " (failed)"
	case c.finished:
		return base + " (done)"
	case c.total > 0:
		return fmt.Sprintf("%s (%d/%d tiles)", base, c.tiles, c.total)
	default:
		return base
	}
}

// Result returns the render error once the render finished, or
// ErrClosedEarly while it is still running
func (c *Canvas) Result() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.finished {
		return ErrClosedEarly
	}
	return c.err
}
