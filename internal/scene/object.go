package scene

import (
	"image"

	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// Kind names an object variant. The values match the "type" field of snapshot records.
type Kind string

const (
	KindImage    Kind = "image"
	KindStroke   Kind = "path"
	KindText     Kind = "i-text"
	KindCropRect Kind = "rect"
)

// Placement is the canvas transform and interaction state shared by all objects.
type Placement struct {
	Left   float64
	Top    float64
	ScaleX float64
	ScaleY float64

	// Selectable objects can be picked and dragged on the surface.
	Selectable bool
	// Evented objects receive pointer events.
	Evented bool
}

func defaultPlacement(left, top float64) Placement {
	return Placement{
		Left:       left,
		Top:        top,
		ScaleX:     1,
		ScaleY:     1,
		Selectable: true,
		Evented:    true,
	}
}

// Object is one element of a Scene.
type Object interface {
	Kind() Kind
	// Common returns the object's placement for in-place modification.
	Common() *Placement
}

// Image is a raster placed on the canvas.
type Image struct {
	Placement
	Raster *image.NRGBA
}

// NewImage places raster at the origin with unit scale.
func NewImage(raster *image.NRGBA) *Image {
	return &Image{Placement: defaultPlacement(0, 0), Raster: raster}
}

func (i *Image) Kind() Kind         { return KindImage }
func (i *Image) Common() *Placement { return &i.Placement }

// Width returns the raster width in pixels.
func (i *Image) Width() int { return i.Raster.Bounds().Dx() }

// Height returns the raster height in pixels.
func (i *Image) Height() int { return i.Raster.Bounds().Dy() }

// Scale returns the image's uniform scale factor. Images are always scaled
// uniformly, so ScaleX is authoritative; a zero scale reads as 1.
func (i *Image) Scale() float64 {
	if i.ScaleX == 0 {
		return 1
	}
	return i.ScaleX
}

// Bounds returns where the image is displayed on the canvas.
func (i *Image) Bounds() edimg.Rect {
	s := i.Scale()
	return edimg.Rect{
		Left:   i.Left,
		Top:    i.Top,
		Width:  float64(i.Width()) * s,
		Height: float64(i.Height()) * s,
	}
}

// ToImageSpace maps a canvas point onto the raster's pixel grid.
func (i *Image) ToImageSpace(p edimg.Point) edimg.Point {
	s := i.Scale()
	return edimg.Point{X: (p.X - i.Left) / s, Y: (p.Y - i.Top) / s}
}

// FitToCanvas scales the image down to fit a w×h canvas, never up, and centers it.
func (i *Image) FitToCanvas(w, h int) {
	iw, ih := float64(i.Width()), float64(i.Height())
	if iw == 0 || ih == 0 {
		return
	}
	scale := min(1, float64(w)/iw, float64(h)/ih)
	i.ScaleX, i.ScaleY = scale, scale
	i.Left = (float64(w) - iw*scale) / 2
	i.Top = (float64(h) - ih*scale) / 2
}

// Stroke is a freehand polyline. Points are relative to Left/Top and are scaled by
// ScaleX/ScaleY when drawn.
type Stroke struct {
	Placement
	Points []edimg.Point
	Color  string
	Width  float64
}

// NewStroke builds a stroke from canvas-space points. The placement origin is the
// top-left corner of the points' bounding box.
func NewStroke(points []edimg.Point, color string, width float64) *Stroke {
	var left, top float64
	for n, p := range points {
		if n == 0 || p.X < left {
			left = p.X
		}
		if n == 0 || p.Y < top {
			top = p.Y
		}
	}

	rel := make([]edimg.Point, len(points))
	for n, p := range points {
		rel[n] = edimg.Point{X: p.X - left, Y: p.Y - top}
	}
	return &Stroke{
		Placement: defaultPlacement(left, top),
		Points:    rel,
		Color:     color,
		Width:     width,
	}
}

func (s *Stroke) Kind() Kind         { return KindStroke }
func (s *Stroke) Common() *Placement { return &s.Placement }

// CanvasPoints returns the stroke's points in canvas space.
func (s *Stroke) CanvasPoints() []edimg.Point {
	out := make([]edimg.Point, len(s.Points))
	for n, p := range s.Points {
		out[n] = edimg.Point{X: s.Left + p.X*s.ScaleX, Y: s.Top + p.Y*s.ScaleY}
	}
	return out
}

// Text is an editable text label anchored at its top-left corner.
type Text struct {
	Placement
	Content    string
	FontFamily string
	FontSize   float64
	Fill       string
}

// NewText places content at (left, top).
func NewText(content string, left, top, size float64, fill, family string) *Text {
	return &Text{
		Placement:  defaultPlacement(left, top),
		Content:    content,
		FontFamily: family,
		FontSize:   size,
		Fill:       fill,
	}
}

func (t *Text) Kind() Kind         { return KindText }
func (t *Text) Common() *Placement { return &t.Placement }

// CropRect is the crop selection overlay.
type CropRect struct {
	Placement
	Width  float64
	Height float64
}

// NewCropRect creates an overlay covering r.
func NewCropRect(r edimg.Rect) *CropRect {
	return &CropRect{
		Placement: defaultPlacement(r.Left, r.Top),
		Width:     r.Width,
		Height:    r.Height,
	}
}

func (c *CropRect) Kind() Kind         { return KindCropRect }
func (c *CropRect) Common() *Placement { return &c.Placement }

// Bounds returns the displayed rectangle, with scale applied.
func (c *CropRect) Bounds() edimg.Rect {
	sx, sy := c.ScaleX, c.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return edimg.Rect{Left: c.Left, Top: c.Top, Width: c.Width * sx, Height: c.Height * sy}
}

// SetBounds moves and resizes the overlay to r and resets its scale.
func (c *CropRect) SetBounds(r edimg.Rect) {
	c.Left, c.Top = r.Left, r.Top
	c.Width, c.Height = r.Width, r.Height
	c.ScaleX, c.ScaleY = 1, 1
}
