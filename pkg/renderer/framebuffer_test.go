package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/google/go-cmp/cmp"
)

func TestFramebuffer_Layouts(t *testing.T) {
	tests := []struct {
		layout PixelLayout
		want   []byte
	}{
		{LayoutRGB, []byte{10, 20, 30}},
		{LayoutRGBA, []byte{10, 20, 30, 255}},
		{LayoutBGRA, []byte{30, 20, 10, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.layout.String(), func(t *testing.T) {
			fb := NewFramebuffer(3, 2, tt.layout)
			if len(fb.Pix) != 3*2*tt.layout.Channels() {
				t.Fatalf("Expected %d bytes, got %d", 3*2*tt.layout.Channels(), len(fb.Pix))
			}

			fb.Set(2, 1, core.NewVec3(10.7, 20, 30))

			i := fb.Offset(2, 1)
			if diff := cmp.Diff(fb.Pix[i:i+tt.layout.Channels()], tt.want); diff != "" {
				t.Errorf("Unexpected pixel bytes (-got +want):\n%s", diff)
			}

			want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
			if got := fb.RGBAAt(2, 1); got != want {
				t.Errorf("Expected %v, got %v", want, got)
			}
		})
	}
}

func TestFramebuffer_SetClamps(t *testing.T) {
	fb := NewFramebuffer(1, 1, LayoutRGBA)
	fb.Set(0, 0, core.NewVec3(-20, 300, 128))

	if diff := cmp.Diff(fb.Pix, []byte{0, 255, 128, 255}); diff != "" {
		t.Errorf("Unexpected pixel bytes (-got +want):\n%s", diff)
	}
}

func TestFramebuffer_SubImage(t *testing.T) {
	fb := NewFramebuffer(8, 8, LayoutBGRA)
	fb.Set(5, 6, core.NewVec3(1, 2, 3))

	sub := fb.SubImage(image.Rect(4, 4, 12, 12))
	if sub.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("Expected clipped bounds 4x4 at origin, got %v", sub.Bounds())
	}
	if got := sub.RGBAAt(1, 2); got != (color.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("Unexpected pixel in sub image: %v", got)
	}

	full := fb.ToRGBA()
	if got := full.RGBAAt(5, 6); got != (color.RGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("Unexpected pixel in full image: %v", got)
	}
}

func TestFramebuffer_AtOutOfBounds(t *testing.T) {
	fb := NewFramebuffer(2, 2, LayoutRGB)
	if got := fb.RGBAAt(5, 0); got != (color.RGBA{}) {
		t.Errorf("Expected transparent black outside the image, got %v", got)
	}
}
