//go:build cgo

package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// RenderFunc renders a frame, calling onTile as each tile finishes
type RenderFunc func(onTile func(renderer.TileCompletionResult)) error

// Run opens a window the size of the canvas, starts render in the background
// and shows tiles as they complete. It blocks until the window is closed and
// then returns the render's error, or ErrClosedEarly if it was still running.
func Run(title string, width, height int, render RenderFunc) error {
	canvas := NewCanvas(width, height)

	go func() {
		canvas.Finish(render(canvas.DrawTile))
	}()

	g := &game{
		canvas:  canvas,
		title:   title,
		scratch: make([]byte, 4*width*height),
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(windowSize(width, height))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)

	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return canvas.Result()
}

type game struct {
	canvas    *Canvas
	title     string
	lastTitle string
	fbImg     *ebiten.Image
	scratch   []byte
}

func (g *game) Update() error {
	if title := g.canvas.Title(g.title); title != g.lastTitle {
		ebiten.SetWindowTitle(title)
		g.lastTitle = title
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	bounds := g.canvas.Bounds()
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(bounds.Dx(), bounds.Dy())
	}

	if g.canvas.Snapshot(g.scratch) {
		g.fbImg.WritePixels(g.scratch)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	bounds := g.canvas.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// windowSize halves large canvases until they fit a typical desktop
func windowSize(width, height int) (int, int) {
	for width > 1600 || height > 900 {
		width, height = width/2, height/2
	}
	return max(width, 1), max(height, 1)
}
