package render

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
	"github.com/ironsheep/image-editor-mcp/internal/scene"
)

// Compositor flattens scenes onto a fixed-size canvas.
type Compositor struct {
	Width  int
	Height int
	Fonts  *FontSet
}

// NewCompositor returns a compositor for a w×h canvas.
func NewCompositor(w, h int) *Compositor {
	return &Compositor{Width: w, Height: h, Fonts: NewFontSet()}
}

// Compose draws every object of sc, in order, over its background.
//
// # Errors
//
//   - Returns error if the background, a stroke color or a text fill cannot be parsed
//   - Returns error if a text face cannot be created
func (c *Compositor) Compose(sc *scene.Scene) (*image.NRGBA, error) {
	bg, err := edimg.ParseColor(sc.Background)
	if err != nil {
		return nil, fmt.Errorf("failed to parse background: %w", err)
	}
	dst := imaging.New(c.Width, c.Height, bg)

	for _, obj := range sc.Objects() {
		switch o := obj.(type) {
		case *scene.Image:
			dst = c.drawImage(dst, o)
		case *scene.Stroke:
			if err := c.drawStroke(dst, o); err != nil {
				return nil, err
			}
		case *scene.Text:
			if err := c.drawText(dst, o); err != nil {
				return nil, err
			}
		}
	}
	return dst, nil
}

// ExportPNG composes sc and writes it to w as PNG.
func (c *Compositor) ExportPNG(w io.Writer, sc *scene.Scene) error {
	img, err := c.Compose(sc)
	if err != nil {
		return err
	}
	return edimg.EncodePNG(w, img)
}

func (c *Compositor) drawImage(dst *image.NRGBA, o *scene.Image) *image.NRGBA {
	if o.Raster == nil || o.Raster.Bounds().Empty() {
		return dst
	}

	bounds := o.Bounds()
	w := int(math.Round(bounds.Width))
	h := int(math.Round(bounds.Height))
	if w <= 0 || h <= 0 {
		return dst
	}

	var src image.Image = o.Raster
	if w != o.Width() || h != o.Height() {
		src = imaging.Resize(o.Raster, w, h, imaging.Lanczos)
	}
	pos := image.Pt(int(math.Round(bounds.Left)), int(math.Round(bounds.Top)))
	return imaging.Overlay(dst, src, pos, 1.0)
}

func (c *Compositor) drawStroke(dst *image.NRGBA, o *scene.Stroke) error {
	col, err := edimg.ParseColor(o.Color)
	if err != nil {
		return fmt.Errorf("failed to parse stroke color: %w", err)
	}
	points := o.CanvasPoints()
	if len(points) == 0 {
		return nil
	}

	width := o.Width * (math.Abs(o.ScaleX) + math.Abs(o.ScaleY)) / 2
	if width <= 0 {
		return nil
	}

	scanner := rasterx.NewScannerGV(c.Width, c.Height, dst, dst.Bounds())

	// A single point is a dot of the brush diameter.
	if len(points) == 1 {
		filler := rasterx.NewFiller(c.Width, c.Height, scanner)
		rasterx.AddCircle(points[0].X, points[0].Y, width/2, filler)
		filler.SetColor(col)
		filler.Draw()
		return nil
	}

	stroker := rasterx.NewStroker(c.Width, c.Height, scanner)
	stroker.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(4*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round)
	stroker.Start(rasterx.ToFixedP(points[0].X, points[0].Y))
	for _, p := range points[1:] {
		stroker.Line(rasterx.ToFixedP(p.X, p.Y))
	}
	stroker.Stop(false)
	stroker.SetColor(col)
	stroker.Draw()
	return nil
}

func (c *Compositor) drawText(dst *image.NRGBA, o *scene.Text) error {
	col, err := edimg.ParseColor(o.Fill)
	if err != nil {
		return fmt.Errorf("failed to parse text fill: %w", err)
	}

	scale := o.ScaleY
	if scale <= 0 {
		scale = 1
	}
	face, err := c.Fonts.Face(o.FontFamily, o.FontSize*scale)
	if err != nil {
		return err
	}

	layout := Layout(face, o.Content)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	for n, line := range layout.Lines {
		baseline := o.Top + layout.Ascent + float64(n)*layout.LineHeight
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(o.Left * 64),
			Y: fixed.Int26_6(baseline * 64),
		}
		d.DrawString(line)
	}
	return nil
}
