package detection

import (
	"image"
	"math"
)

// edgeThreshold is the minimum grayscale step between neighbors that counts as an edge.
const edgeThreshold = 30.0

// edgeMap marks edge pixels, indexed [y][x] relative to the image origin.
type edgeMap [][]bool

// detectEdges marks pixels whose right or lower neighbor differs in luminance by
// more than edgeThreshold. Border pixels are never edges.
func detectEdges(img *image.RGBA) edgeMap {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	edges := make(edgeMap, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		if y == 0 || y == height-1 {
			continue
		}
		for x := 1; x < width-1; x++ {
			c := luma(img, bounds.Min.X+x, bounds.Min.Y+y)
			right := luma(img, bounds.Min.X+x+1, bounds.Min.Y+y)
			below := luma(img, bounds.Min.X+x, bounds.Min.Y+y+1)

			if math.Abs(c-right) > edgeThreshold || math.Abs(c-below) > edgeThreshold {
				edges[y][x] = true
			}
		}
	}
	return edges
}

// luma returns the ITU-R BT.601 luminance of a pixel on a 0-255 scale.
func luma(img *image.RGBA, x, y int) float64 {
	i := img.PixOffset(x, y)
	px := img.Pix[i : i+3 : i+3]
	return 0.299*float64(px[0]) + 0.587*float64(px[1]) + 0.114*float64(px[2])
}

// count returns the number of edge pixels in the w×h window at (x, y).
func (e edgeMap) count(x, y, w, h int) int {
	n := 0
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if e[row][col] {
				n++
			}
		}
	}
	return n
}

// horizontalScore returns the share of edge runs in the window that are found by
// scanning rows rather than columns. Glyph strokes along a line of text cross each
// row many times, so text windows score high; a lone horizontal rule scores low.
func (e edgeMap) horizontalScore(x, y, w, h int) float64 {
	rowRuns := 0
	for row := y; row < y+h; row++ {
		inRun := false
		for col := x; col < x+w; col++ {
			if e[row][col] && !inRun {
				rowRuns++
			}
			inRun = e[row][col]
		}
	}

	colRuns := 0
	for col := x; col < x+w; col++ {
		inRun := false
		for row := y; row < y+h; row++ {
			if e[row][col] && !inRun {
				colRuns++
			}
			inRun = e[row][col]
		}
	}

	if rowRuns+colRuns == 0 {
		return 0
	}
	return float64(rowRuns) / float64(rowRuns+colRuns)
}
