//go:build !cgo

package viewer

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// RenderFunc renders a frame, calling onTile as each tile finishes
type RenderFunc func(onTile func(renderer.TileCompletionResult)) error

// Run always fails without cgo; callers fall back to writing the image
func Run(_ string, _, _ int, _ RenderFunc) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
