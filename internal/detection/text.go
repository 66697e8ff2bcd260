package detection

import (
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/clone"
)

// Region is an area of an image that is likely to contain text.
type Region struct {
	// Bounds is the region in image coordinates.
	Bounds image.Rectangle `json:"bounds"`

	// Confidence combines edge density and horizontal structure (0.0 to 1.0).
	Confidence float64 `json:"confidence"`
}

// windowSizes are the scan windows, roughly one line of text at common sizes.
var windowSizes = []image.Point{
	{X: 100, Y: 30},
	{X: 150, Y: 40},
	{X: 200, Y: 50},
	{X: 80, Y: 25},
}

const (
	minDensity    = 0.05
	maxDensity    = 0.4
	targetDensity = 0.2
)

// FindTextRegions returns the regions of img that look like text, sorted by
// descending confidence. Windows scoring below minConfidence are discarded before
// merging. Images smaller than the smallest window yield no regions.
func FindTextRegions(img image.Image, minConfidence float64) []Region {
	src := clone.AsRGBA(img)
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	edges := detectEdges(src)

	candidates := make([]Region, 0)
	for _, ws := range windowSizes {
		stepX, stepY := ws.X/2, ws.Y/2

		for y := 0; y+ws.Y <= height; y += stepY {
			for x := 0; x+ws.X <= width; x += stepX {
				density := float64(edges.count(x, y, ws.X, ws.Y)) / float64(ws.X*ws.Y)
				if density < minDensity || density > maxDensity {
					continue
				}

				confidence := edges.horizontalScore(x, y, ws.X, ws.Y) *
					(1 - math.Abs(density-targetDensity)/targetDensity)
				if confidence < minConfidence {
					continue
				}

				candidates = append(candidates, Region{
					Bounds:     image.Rect(x, y, x+ws.X, y+ws.Y).Add(bounds.Min),
					Confidence: math.Round(confidence*1000) / 1000,
				})
			}
		}
	}

	merged := mergeOverlapping(candidates)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})
	return merged
}

// mergeOverlapping folds each region into the first earlier region it overlaps,
// keeping the union of the bounds and the higher confidence.
func mergeOverlapping(regions []Region) []Region {
	merged := make([]Region, 0, len(regions))

	for _, r := range regions {
		folded := false
		for i := range merged {
			if r.Bounds.Overlaps(merged[i].Bounds) {
				merged[i].Bounds = merged[i].Bounds.Union(r.Bounds)
				merged[i].Confidence = math.Max(merged[i].Confidence, r.Confidence)
				folded = true
				break
			}
		}
		if !folded {
			merged = append(merged, r)
		}
	}
	return merged
}
