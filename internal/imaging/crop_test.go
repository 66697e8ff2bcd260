package imaging

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestRect_Intersect(t *testing.T) {
	a := Rect{Left: 0, Top: 0, Width: 100, Height: 100}
	b := Rect{Left: 50, Top: 25, Width: 100, Height: 50}

	got := a.Intersect(b)
	want := Rect{Left: 50, Top: 25, Width: 50, Height: 50}
	if got != want {
		t.Errorf("Intersect: got %+v, want %+v", got, want)
	}

	disjoint := a.Intersect(Rect{Left: 200, Top: 200, Width: 10, Height: 10})
	if !disjoint.Empty() {
		t.Errorf("disjoint intersection should be empty, got %+v", disjoint)
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{Left: 10, Top: 10, Width: 20, Height: 20}

	if !r.Contains(Point{10, 10}) || !r.Contains(Point{30, 30}) || !r.Contains(Point{20, 15}) {
		t.Error("Contains should include interior and edges")
	}
	if r.Contains(Point{9, 20}) || r.Contains(Point{20, 31}) {
		t.Error("Contains should exclude outside points")
	}
}

func TestCropRegion(t *testing.T) {
	// A 400x200 image displayed at half size
	imageBounds := Rect{Left: 100, Top: 50, Width: 200, Height: 100}

	tests := []struct {
		name string
		crop Rect
		want image.Rectangle
	}{
		{"full bounds", imageBounds, image.Rect(0, 0, 400, 200)},
		{"interior", Rect{Left: 150, Top: 75, Width: 50, Height: 50}, image.Rect(100, 50, 200, 150)},
		{"overlaps top-left", Rect{Left: 50, Top: 25, Width: 100, Height: 50}, image.Rect(0, 0, 100, 50)},
		{"covers everything", Rect{Left: 0, Top: 0, Width: 800, Height: 500}, image.Rect(0, 0, 400, 200)},
		{"fractional edges", Rect{Left: 100.2, Top: 50.2, Width: 10.1, Height: 10.1}, image.Rect(0, 0, 21, 21)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CropRegion(tt.crop, imageBounds, 0.5)
			if !ok {
				t.Fatal("CropRegion reported no overlap")
			}
			if got != tt.want {
				t.Errorf("CropRegion: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCropRegion_NoOverlap(t *testing.T) {
	imageBounds := Rect{Left: 100, Top: 50, Width: 200, Height: 100}

	tests := []struct {
		name  string
		crop  Rect
		scale float64
	}{
		{"entirely outside", Rect{Left: 0, Top: 0, Width: 50, Height: 40}, 0.5},
		{"touching right edge", Rect{Left: 300, Top: 50, Width: 10, Height: 10}, 0.5},
		{"zero width", Rect{Left: 150, Top: 75, Width: 0, Height: 10}, 0.5},
		{"negative height", Rect{Left: 150, Top: 75, Width: 10, Height: -10}, 0.5},
		{"zero scale", Rect{Left: 150, Top: 75, Width: 10, Height: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r, ok := CropRegion(tt.crop, imageBounds, tt.scale); ok {
				t.Errorf("CropRegion should report no overlap, got %v", r)
			}
		})
	}
}

func TestExtractRegion_VerifyContent(t *testing.T) {
	img := createPatternRaster(100, 100)

	// Top-right quadrant is green
	cropped, err := ExtractRegion(img, image.Rect(50, 0, 100, 50))
	if err != nil {
		t.Fatalf("ExtractRegion failed: %v", err)
	}

	if cropped.Bounds() != image.Rect(0, 0, 50, 50) {
		t.Errorf("bounds: got %v, want (0,0)-(50,50)", cropped.Bounds())
	}
	if got := cropped.NRGBAAt(25, 25); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("cropped color: got %v, want green", got)
	}
}

func TestExtractRegion_FullImageIsIdentical(t *testing.T) {
	img := createCheckerRaster(37, 23)

	region, ok := CropRegion(
		Rect{Left: 10, Top: 20, Width: 37 * 0.75, Height: 23 * 0.75},
		Rect{Left: 10, Top: 20, Width: 37 * 0.75, Height: 23 * 0.75},
		0.75,
	)
	if !ok {
		t.Fatal("CropRegion reported no overlap")
	}

	cropped, err := ExtractRegion(img, region)
	if err != nil {
		t.Fatalf("ExtractRegion failed: %v", err)
	}
	if cropped.Bounds() != img.Bounds() {
		t.Fatalf("bounds: got %v, want %v", cropped.Bounds(), img.Bounds())
	}
	if !bytes.Equal(cropped.Pix, img.Pix) {
		t.Error("full-bounds crop is not pixel-identical to the source")
	}
}

func TestExtractRegion_ClipsAndRejects(t *testing.T) {
	img := createTestRaster(20, 20, color.NRGBA{1, 2, 3, 255})

	cropped, err := ExtractRegion(img, image.Rect(10, 10, 40, 40))
	if err != nil {
		t.Fatalf("ExtractRegion failed: %v", err)
	}
	if cropped.Bounds().Dx() != 10 || cropped.Bounds().Dy() != 10 {
		t.Errorf("clipped size: got %v, want 10x10", cropped.Bounds())
	}

	if _, err := ExtractRegion(img, image.Rect(30, 30, 40, 40)); err == nil {
		t.Error("ExtractRegion should fail outside the image")
	}
}
