package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Framebuffer holds the rendered pixels row-major, top row first. It
// implements image.Image so it can be handed to any encoder.
type Framebuffer struct {
	Width  int
	Height int
	Layout PixelLayout
	Pix    []byte // Width*Height*Layout.Channels() bytes
}

// NewFramebuffer allocates a zeroed framebuffer
func NewFramebuffer(width, height int, layout PixelLayout) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Layout: layout,
		Pix:    make([]byte, width*height*layout.Channels()),
	}
}

// Offset returns the index of the first byte of pixel (x, y)
func (fb *Framebuffer) Offset(x, y int) int {
	return (y*fb.Width + x) * fb.Layout.Channels()
}

// Set writes a color with channels in [0, 255]. Alpha is always opaque.
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	rgb := c.ToRGB()
	i := fb.Offset(x, y)
	switch fb.Layout {
	case LayoutRGB:
		fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2] = rgb[0], rgb[1], rgb[2]
	case LayoutRGBA:
		fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3] = rgb[0], rgb[1], rgb[2], 255
	case LayoutBGRA:
		fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3] = rgb[2], rgb[1], rgb[0], 255
	}
}

// RGBAAt returns the pixel at (x, y) regardless of layout
func (fb *Framebuffer) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(fb.Bounds())) {
		return color.RGBA{}
	}

	i := fb.Offset(x, y)
	p := fb.Pix[i : i+fb.Layout.Channels()]
	switch fb.Layout {
	case LayoutRGB:
		return color.RGBA{R: p[0], G: p[1], B: p[2], A: 255}
	case LayoutRGBA:
		return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	default:
		return color.RGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
	}
}

// ColorModel implements image.Image
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image
func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.RGBAAt(x, y)
}

// ToRGBA copies the framebuffer into a new RGBA image
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	return fb.SubImage(fb.Bounds())
}

// SubImage copies the pixels inside r into a new RGBA image whose origin is
// (0, 0). r is clipped to the framebuffer.
func (fb *Framebuffer) SubImage(r image.Rectangle) *image.RGBA {
	r = r.Intersect(fb.Bounds())
	img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x-r.Min.X, y-r.Min.Y, fb.RGBAAt(x, y))
		}
	}

	return img
}
