package renderer

import (
	"image"
	"testing"
)

func TestNewTileGrid(t *testing.T) {
	// Test tile grid generation for a 400x225 image with 64x64 tiles
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize)

	expectedTilesX := (width + tileSize - 1) / tileSize   // 7 tiles
	expectedTilesY := (height + tileSize - 1) / tileSize  // 4 tiles
	expectedTotalTiles := expectedTilesX * expectedTilesY // 28 tiles

	if len(tiles) != expectedTotalTiles {
		t.Errorf("Expected %d tiles, got %d", expectedTotalTiles, len(tiles))
	}

	// Tiles must cover the entire image without gaps or overlaps
	covered := make([][]bool, height)
	for y := range covered {
		covered[y] = make([]bool, width)
	}

	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if x >= width || y >= height {
					t.Errorf("Tile %d extends beyond image bounds at (%d,%d)", tile.ID, x, y)
				}
				if covered[y][x] {
					t.Errorf("Pixel (%d,%d) is covered by multiple tiles", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !covered[y][x] {
				t.Errorf("Pixel (%d,%d) is not covered by any tile", x, y)
			}
		}
	}
}

func TestNewTileGrid_RowMajorIDs(t *testing.T) {
	tiles := NewTileGrid(10, 5, 4)

	// 3 tiles across, 2 down; the last one is clipped on both axes
	if len(tiles) != 6 {
		t.Fatalf("Expected 6 tiles, got %d", len(tiles))
	}
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Expected tile %d to have ID %d, got %d", i, i, tile.ID)
		}
	}
	if want := image.Rect(8, 4, 10, 5); tiles[5].Bounds != want {
		t.Errorf("Expected last tile bounds %v, got %v", want, tiles[5].Bounds)
	}
}
