package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// CropRegion maps a canvas-space crop rectangle onto the pixels of an image.
//
// imageBounds is where the image is displayed on the canvas (origin plus scaled
// size) and scale is the image's uniform scale factor. The crop rectangle is
// intersected with the displayed bounds, translated to the image origin and divided
// by scale. Edges are rounded to the nearest pixel.
//
// The second result is false when there is nothing to extract: the rectangles do
// not overlap, the overlap is degenerate, or the scale is not positive.
func CropRegion(crop, imageBounds Rect, scale float64) (image.Rectangle, bool) {
	if scale <= 0 {
		return image.Rectangle{}, false
	}

	overlap := crop.Intersect(imageBounds)
	if overlap.Empty() {
		return image.Rectangle{}, false
	}

	x0 := (overlap.Left - imageBounds.Left) / scale
	y0 := (overlap.Top - imageBounds.Top) / scale
	x1 := x0 + overlap.Width/scale
	y1 := y0 + overlap.Height/scale

	r := image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x1)), int(math.Round(y1)),
	)
	if r.Empty() {
		return image.Rectangle{}, false
	}
	return r, true
}

// ExtractRegion copies the pixels of r out of img into a new raster whose bounds
// start at (0,0). The part of r outside img is dropped.
func ExtractRegion(img *image.NRGBA, r image.Rectangle) (*image.NRGBA, error) {
	bounds := img.Bounds()
	clipped := r.Intersect(bounds)
	if clipped.Empty() {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	return imaging.Crop(img, clipped), nil
}
