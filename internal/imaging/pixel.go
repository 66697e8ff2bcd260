package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// PixelBuffer reads and writes rectangular blocks of a raster.
//
// It is the only type in the editor that touches raw pixel storage; everything
// else addresses pixels through block operations.
type PixelBuffer struct {
	img *image.NRGBA
}

// NewPixelBuffer wraps img. Writes through the buffer modify img in place.
func NewPixelBuffer(img *image.NRGBA) *PixelBuffer {
	return &PixelBuffer{img: img}
}

// Image returns the underlying raster.
func (b *PixelBuffer) Image() *image.NRGBA { return b.img }

// Bounds returns the raster bounds.
func (b *PixelBuffer) Bounds() image.Rectangle { return b.img.Bounds() }

// Contains reports whether r lies entirely inside the raster.
func (b *PixelBuffer) Contains(r image.Rectangle) bool {
	return !r.Empty() && r.In(b.img.Bounds())
}

// Mean returns the arithmetic mean of each channel over r, rounded down. The part
// of r outside the raster is ignored; an empty overlap yields transparent black.
func (b *PixelBuffer) Mean(r image.Rectangle) color.NRGBA {
	r = r.Intersect(b.img.Bounds())
	if r.Empty() {
		return color.NRGBA{}
	}

	var sr, sg, sb, sa uint64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := b.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			px := b.img.Pix[i : i+4 : i+4]
			sr += uint64(px[0])
			sg += uint64(px[1])
			sb += uint64(px[2])
			sa += uint64(px[3])
			i += 4
		}
	}

	n := uint64(r.Dx() * r.Dy())
	return color.NRGBA{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n), A: uint8(sa / n)}
}

// Fill overwrites every pixel of r with c.
func (b *PixelBuffer) Fill(r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(b.img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := b.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			b.img.Pix[i+0] = c.R
			b.img.Pix[i+1] = c.G
			b.img.Pix[i+2] = c.B
			b.img.Pix[i+3] = c.A
			i += 4
		}
	}
}

// FillDisc composites c over the disc inscribed in r. Pixels of r outside the disc
// keep their value.
func (b *PixelBuffer) FillDisc(r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(b.img.Bounds())
	if r.Empty() {
		return
	}
	mask := newDiscMask(r)
	draw.DrawMask(b.img, r, image.NewUniform(c), image.Point{}, mask, r.Min, draw.Over)
}

// discMask is an alpha mask that is opaque inside the disc inscribed in its bounds.
// A pixel belongs to the disc when its center does.
type discMask struct {
	bounds image.Rectangle
	cx, cy float64
	r2     float64
}

func newDiscMask(r image.Rectangle) *discMask {
	radius := float64(min(r.Dx(), r.Dy())) / 2
	return &discMask{
		bounds: r,
		cx:     float64(r.Min.X) + float64(r.Dx())/2,
		cy:     float64(r.Min.Y) + float64(r.Dy())/2,
		r2:     radius * radius,
	}
}

func (m *discMask) ColorModel() color.Model { return color.AlphaModel }

func (m *discMask) Bounds() image.Rectangle { return m.bounds }

func (m *discMask) At(x, y int) color.Color {
	dx := float64(x) + 0.5 - m.cx
	dy := float64(y) + 0.5 - m.cy
	if dx*dx+dy*dy <= m.r2 {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}
