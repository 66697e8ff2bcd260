package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
	"github.com/ironsheep/image-editor-mcp/internal/scene"
)

// createTestRaster returns a solid w×h raster.
func createTestRaster(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// countInk returns the number of pixels in r that differ from bg.
func countInk(img *image.NRGBA, r image.Rectangle, bg color.NRGBA) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.NRGBAAt(x, y) != bg {
				n++
			}
		}
	}
	return n
}

var white = color.NRGBA{255, 255, 255, 255}

func TestCompose_Background(t *testing.T) {
	c := NewCompositor(80, 50)
	out, err := c.Compose(scene.New("#f0f0f0"))
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if out.Bounds() != image.Rect(0, 0, 80, 50) {
		t.Errorf("bounds = %v, want 80x50", out.Bounds())
	}
	if got := out.NRGBAAt(40, 25); got != (color.NRGBA{0xf0, 0xf0, 0xf0, 255}) {
		t.Errorf("background pixel = %v", got)
	}
}

func TestCompose_InvalidBackground(t *testing.T) {
	c := NewCompositor(10, 10)
	if _, err := c.Compose(scene.New("not-a-color")); err == nil {
		t.Error("expected error for invalid background")
	}
}

func TestCompose_Image(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}
	sc := scene.New("#ffffff")
	img := scene.NewImage(createTestRaster(20, 10, red))
	img.Left, img.Top = 30, 15
	sc.Add(img)

	out, err := NewCompositor(100, 50).Compose(sc)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if got := out.NRGBAAt(30, 15); got != red {
		t.Errorf("image top-left = %v, want %v", got, red)
	}
	if got := out.NRGBAAt(49, 24); got != red {
		t.Errorf("image bottom-right = %v, want %v", got, red)
	}
	if got := out.NRGBAAt(50, 15); got != white {
		t.Errorf("pixel right of image = %v, want background", got)
	}
}

func TestCompose_ScaledImage(t *testing.T) {
	blue := color.NRGBA{0, 0, 255, 255}
	sc := scene.New("#ffffff")
	img := scene.NewImage(createTestRaster(40, 20, blue))
	img.ScaleX, img.ScaleY = 0.5, 0.5
	sc.Add(img)

	out, err := NewCompositor(100, 50).Compose(sc)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if got := out.NRGBAAt(10, 5); got != blue {
		t.Errorf("inside scaled image = %v, want %v", got, blue)
	}
	if got := out.NRGBAAt(25, 5); got != white {
		t.Errorf("outside scaled image = %v, want background", got)
	}
}

func TestCompose_Stroke(t *testing.T) {
	sc := scene.New("#ffffff")
	sc.Add(scene.NewStroke([]edimg.Point{{X: 10, Y: 50}, {X: 90, Y: 50}}, "#ff0000", 10))

	out, err := NewCompositor(100, 100).Compose(sc)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if got := out.NRGBAAt(50, 50); got.R < 200 || got.G > 50 || got.B > 50 {
		t.Errorf("pixel on stroke = %v, want red", got)
	}
	if got := out.NRGBAAt(50, 80); got != white {
		t.Errorf("pixel off stroke = %v, want background", got)
	}
}

func TestCompose_Dot(t *testing.T) {
	sc := scene.New("#ffffff")
	sc.Add(scene.NewStroke([]edimg.Point{{X: 50, Y: 50}}, "#000000", 20))

	out, err := NewCompositor(100, 100).Compose(sc)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if got := out.NRGBAAt(50, 50); got.R > 50 {
		t.Errorf("dot center = %v, want dark", got)
	}
	if got := out.NRGBAAt(80, 80); got != white {
		t.Errorf("far from dot = %v, want background", got)
	}
}

func TestCompose_Text(t *testing.T) {
	sc := scene.New("#ffffff")
	sc.Add(scene.NewText("HHHH", 10, 10, 24, "#000000", "Go Regular"))

	out, err := NewCompositor(200, 100).Compose(sc)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if n := countInk(out, image.Rect(10, 10, 110, 40), white); n == 0 {
		t.Error("no text pixels drawn")
	}
	if n := countInk(out, image.Rect(0, 60, 200, 100), white); n != 0 {
		t.Errorf("%d pixels drawn below the text", n)
	}
}

func TestCompose_InvalidTextFill(t *testing.T) {
	sc := scene.New("#ffffff")
	sc.Add(scene.NewText("x", 0, 0, 12, "bogus", "Go Regular"))

	if _, err := NewCompositor(20, 20).Compose(sc); err == nil {
		t.Error("expected error for invalid text fill")
	}
}

func TestCompose_CropRectNotDrawn(t *testing.T) {
	sc := scene.New("#ffffff")
	sc.Add(scene.NewCropRect(edimg.Rect{Left: 0, Top: 0, Width: 50, Height: 50}))

	out, err := NewCompositor(50, 50).Compose(sc)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if n := countInk(out, out.Bounds(), white); n != 0 {
		t.Errorf("crop overlay drew %d pixels", n)
	}
}

func TestExportPNG(t *testing.T) {
	sc := scene.New("#336699")
	sc.Add(scene.NewImage(createTestRaster(10, 10, white)))

	var buf bytes.Buffer
	if err := NewCompositor(64, 32).ExportPNG(&buf, sc); err != nil {
		t.Fatalf("ExportPNG failed: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 64 || decoded.Bounds().Dy() != 32 {
		t.Errorf("exported size = %v, want 64x32", decoded.Bounds())
	}
}
