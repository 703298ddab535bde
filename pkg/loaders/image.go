package loaders

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// EncodePNG writes img to w as a PNG
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// EncodePPM writes img to w as a plain-text "P3" portable pixmap with a
// maximum channel value of 255. Alpha is dropped.
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "P3\n%d %d 255\n", bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if x > bounds.Min.X {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%d %d %d", c.R, c.G, c.B)
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}

// SavePNG writes img to filename as a PNG
func SavePNG(filename string, img image.Image) error {
	return saveWith(filename, img, EncodePNG)
}

// SaveImage writes img to filename, choosing the format from the extension:
// ".ppm" for a plain pixmap, ".png" for PNG
func SaveImage(filename string, img image.Image) error {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".png":
		return saveWith(filename, img, EncodePNG)
	case ".ppm":
		return saveWith(filename, img, EncodePPM)
	default:
		return fmt.Errorf("unsupported image format %q", ext)
	}
}

func saveWith(filename string, img image.Image, encode func(io.Writer, image.Image) error) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := encode(file, img); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close image file: %w", err)
	}
	return nil
}
