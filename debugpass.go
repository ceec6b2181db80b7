package vtrace

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/vtrace/internal/polyutil"
)

// DebugPreviewPNG composites a debug-pass polygon list onto a width×height
// RGBA preview image: background white, polygon edges drawn in black.
// Intended for quick visual inspection of intermediate pipeline stages
// without an SVG viewer.
func DebugPreviewPNG(polys []polyutil.Polygon, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	black := &image.Uniform{C: color.Black}
	for _, poly := range polys {
		for i := 0; i < len(poly)-1; i++ {
			drawLine(img, black, poly[i].X, poly[i].Y, poly[i+1].X, poly[i+1].Y)
		}
	}
	return img
}

// drawLine rasterizes a single-pixel-wide line via a basic Bresenham
// walk, compositing black onto img with draw.Draw one pixel at a time —
// deliberately simple, since this preview exists only for debugging, not
// as a production rasterizer (the pipeline's real output is the SVG/
// curve list, not this preview).
func drawLine(img *image.RGBA, src *image.Uniform, x0, y0, x1, y1 float64) {
	ix0, iy0 := int(x0), int(y0)
	ix1, iy1 := int(x1), int(y1)

	dx := abs(ix1 - ix0)
	dy := -abs(iy1 - iy0)
	sx, sy := 1, 1
	if ix0 > ix1 {
		sx = -1
	}
	if iy0 > iy1 {
		sy = -1
	}
	err := dx + dy

	for {
		draw.Draw(img, image.Rect(ix0, iy0, ix0+1, iy0+1), src, image.Point{}, draw.Src)
		if ix0 == ix1 && iy0 == iy1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ix0 += sx
		}
		if e2 <= dx {
			err += dx
			iy0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
