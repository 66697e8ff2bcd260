package detection

import (
	"image"
	"image/color"
	"testing"
)

// createBlankImage returns a uniformly white image.
func createBlankImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// createGlyphRowImage draws a row of 2px vertical black strokes every 6px inside
// block, imitating a line of text.
func createGlyphRowImage(w, h int, block image.Rectangle) *image.NRGBA {
	img := createBlankImage(w, h)
	black := color.NRGBA{0, 0, 0, 255}
	for y := block.Min.Y; y < block.Max.Y; y++ {
		for x := block.Min.X; x < block.Max.X; x++ {
			if (x-block.Min.X)%6 < 2 {
				img.SetNRGBA(x, y, black)
			}
		}
	}
	return img
}

func TestFindTextRegions_Blank(t *testing.T) {
	regions := FindTextRegions(createBlankImage(300, 120), 0.1)
	if len(regions) != 0 {
		t.Errorf("blank image produced %d regions, want 0", len(regions))
	}
}

func TestFindTextRegions_TooSmall(t *testing.T) {
	regions := FindTextRegions(createBlankImage(40, 10), 0)
	if len(regions) != 0 {
		t.Errorf("image smaller than every window produced %d regions", len(regions))
	}
}

func TestFindTextRegions_GlyphRow(t *testing.T) {
	block := image.Rect(30, 40, 270, 55)
	img := createGlyphRowImage(300, 120, block)

	regions := FindTextRegions(img, 0.3)
	if len(regions) == 0 {
		t.Fatal("expected at least one region over the glyph row")
	}

	found := false
	for _, r := range regions {
		if r.Bounds.Overlaps(block) {
			found = true
		}
		if r.Confidence < 0.3 || r.Confidence > 1 {
			t.Errorf("region %v confidence %v outside [0.3, 1]", r.Bounds, r.Confidence)
		}
		if !r.Bounds.In(img.Bounds()) {
			t.Errorf("region %v outside image bounds", r.Bounds)
		}
	}
	if !found {
		t.Errorf("no region overlaps the glyph row %v: %v", block, regions)
	}

	for i := 1; i < len(regions); i++ {
		if regions[i].Confidence > regions[i-1].Confidence {
			t.Errorf("regions not sorted by confidence at %d", i)
		}
	}
}

func TestFindTextRegions_ConfidenceFilter(t *testing.T) {
	img := createGlyphRowImage(300, 120, image.Rect(30, 40, 270, 55))

	low := FindTextRegions(img, 0.1)
	high := FindTextRegions(img, 1.01)
	if len(high) != 0 {
		t.Errorf("threshold above 1 produced %d regions", len(high))
	}
	if len(low) == 0 {
		t.Error("low threshold produced no regions")
	}
}

func TestFindTextRegions_OffsetBounds(t *testing.T) {
	base := createGlyphRowImage(300, 120, image.Rect(30, 40, 270, 55))
	shifted := base.SubImage(image.Rect(0, 10, 300, 120)).(*image.NRGBA)

	for _, r := range FindTextRegions(shifted, 0.3) {
		if !r.Bounds.In(shifted.Bounds()) {
			t.Errorf("region %v outside sub-image bounds %v", r.Bounds, shifted.Bounds())
		}
	}
}

func TestMergeOverlapping(t *testing.T) {
	tests := []struct {
		name    string
		regions []Region
		want    []Region
	}{
		{
			name:    "empty",
			regions: nil,
			want:    []Region{},
		},
		{
			name: "disjoint kept",
			regions: []Region{
				{Bounds: image.Rect(0, 0, 10, 10), Confidence: 0.5},
				{Bounds: image.Rect(20, 20, 30, 30), Confidence: 0.6},
			},
			want: []Region{
				{Bounds: image.Rect(0, 0, 10, 10), Confidence: 0.5},
				{Bounds: image.Rect(20, 20, 30, 30), Confidence: 0.6},
			},
		},
		{
			name: "overlap unioned",
			regions: []Region{
				{Bounds: image.Rect(0, 0, 10, 10), Confidence: 0.5},
				{Bounds: image.Rect(5, 5, 15, 15), Confidence: 0.7},
			},
			want: []Region{
				{Bounds: image.Rect(0, 0, 15, 15), Confidence: 0.7},
			},
		},
		{
			name: "touching edges stay separate",
			regions: []Region{
				{Bounds: image.Rect(0, 0, 10, 10), Confidence: 0.5},
				{Bounds: image.Rect(10, 0, 20, 10), Confidence: 0.5},
			},
			want: []Region{
				{Bounds: image.Rect(0, 0, 10, 10), Confidence: 0.5},
				{Bounds: image.Rect(10, 0, 20, 10), Confidence: 0.5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeOverlapping(tt.regions)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d regions, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("region %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHorizontalScore(t *testing.T) {
	vertical := createGlyphRowImage(60, 20, image.Rect(5, 5, 55, 15))
	horizontal := createBlankImage(60, 20)
	for x := 0; x < 60; x++ {
		horizontal.SetNRGBA(x, 10, color.NRGBA{0, 0, 0, 255})
		horizontal.SetNRGBA(x, 11, color.NRGBA{0, 0, 0, 255})
	}

	v := detectEdges(toRGBA(vertical)).horizontalScore(0, 0, 60, 20)
	h := detectEdges(toRGBA(horizontal)).horizontalScore(0, 0, 60, 20)
	if v <= h {
		t.Errorf("vertical strokes score %v, want above horizontal rule %v", v, h)
	}
	if s := detectEdges(toRGBA(createBlankImage(60, 20))).horizontalScore(0, 0, 60, 20); s != 0 {
		t.Errorf("blank score = %v, want 0", s)
	}
}

func TestDetectEdges_BordersNeverMarked(t *testing.T) {
	img := createGlyphRowImage(30, 30, image.Rect(0, 0, 30, 30))
	edges := detectEdges(toRGBA(img))
	for x := 0; x < 30; x++ {
		if edges[0][x] || edges[29][x] {
			t.Fatalf("border row marked at x=%d", x)
		}
	}
	for y := 0; y < 30; y++ {
		if edges[y][0] || edges[y][29] {
			t.Fatalf("border column marked at y=%d", y)
		}
	}
}

func toRGBA(img *image.NRGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}
