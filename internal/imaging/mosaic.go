package imaging

import (
	"fmt"
	"image"
	"math"
	"time"
)

// MosaicStyle selects how a mosaic cell is painted.
type MosaicStyle string

const (
	// MosaicCircle fills the disc inscribed in the cell with the cell's mean color.
	MosaicCircle MosaicStyle = "circle"
	// MosaicSquare overwrites the whole cell with its mean color.
	MosaicSquare MosaicStyle = "square"
)

const (
	// DefaultMosaicSize is the default cell side in image pixels.
	DefaultMosaicSize = 24
	// DefaultMosaicThrottle bounds how often a dragging pointer applies the effect.
	DefaultMosaicThrottle = 20 * time.Millisecond
)

// ParseMosaicStyle validates a style name. The empty string selects MosaicCircle.
func ParseMosaicStyle(s string) (MosaicStyle, error) {
	switch MosaicStyle(s) {
	case "", MosaicCircle:
		return MosaicCircle, nil
	case MosaicSquare:
		return MosaicSquare, nil
	default:
		return "", fmt.Errorf("unknown mosaic style: %s", s)
	}
}

// CellOrigin returns the top-left pixel of the cell of the given size centered on p.
func CellOrigin(p Point, size int) image.Point {
	half := float64(size) / 2
	return image.Pt(int(math.Floor(p.X-half)), int(math.Floor(p.Y-half)))
}

// ApplyMosaicAtPoint pixelates the size×size cell whose top-left pixel is (x, y).
//
// The cell's mean color is computed over all four channels and painted back
// according to style; any style other than MosaicCircle paints a square. Cells that
// would extend past the raster are skipped, not clamped, and false is returned.
func ApplyMosaicAtPoint(buf *PixelBuffer, x, y, size int, style MosaicStyle) bool {
	if size <= 0 {
		return false
	}
	cell := image.Rect(x, y, x+size, y+size)
	if !buf.Contains(cell) {
		return false
	}

	mean := buf.Mean(cell)
	if style == MosaicCircle {
		buf.FillDisc(cell, mean)
	} else {
		buf.Fill(cell, mean)
	}
	return true
}

// InterpolateCells returns the cell origins needed to cover the straight segment
// between two consecutive cell origins.
//
// When the origins are at most half a cell apart only cur is returned. Otherwise
// the segment is split into ceil(distance / (size/2)) steps and every step
// endpoint, both ends included, is returned.
func InterpolateCells(prev, cur image.Point, size int) []image.Point {
	dx := cur.X - prev.X
	dy := cur.Y - prev.Y
	distance := math.Hypot(float64(dx), float64(dy))
	half := float64(size) / 2

	if half <= 0 || distance <= half {
		return []image.Point{cur}
	}

	steps := int(math.Ceil(distance / half))
	cells := make([]image.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		x := math.Floor(float64(prev.X) + float64(dx*i)/float64(steps))
		y := math.Floor(float64(prev.Y) + float64(dy*i)/float64(steps))
		cells = append(cells, image.Pt(int(x), int(y)))
	}
	return cells
}

// PixelateRegion covers r with square mosaic cells of the given size. Cells on the
// right and bottom edges are clipped to r so the whole region is covered. It
// returns the number of cells painted.
func PixelateRegion(buf *PixelBuffer, r image.Rectangle, size int) int {
	r = r.Intersect(buf.Bounds())
	if r.Empty() || size <= 0 {
		return 0
	}

	painted := 0
	for y := r.Min.Y; y < r.Max.Y; y += size {
		for x := r.Min.X; x < r.Max.X; x += size {
			cell := image.Rect(x, y, x+size, y+size).Intersect(r)
			buf.Fill(cell, buf.Mean(cell))
			painted++
		}
	}
	return painted
}

// MosaicEngine holds the parameters of mosaic painting.
type MosaicEngine struct {
	// Size is the cell side in image pixels.
	Size int
	// Style selects square or circular cells.
	Style MosaicStyle
	// Interval is the minimum time between two applications while dragging.
	// Zero disables throttling.
	Interval time.Duration
	// Now is the clock used for throttling. Nil means time.Now.
	Now func() time.Time
}

// NewMosaicEngine returns an engine with the default throttle interval.
func NewMosaicEngine(size int, style MosaicStyle) *MosaicEngine {
	return &MosaicEngine{
		Size:     size,
		Style:    style,
		Interval: DefaultMosaicThrottle,
		Now:      time.Now,
	}
}

// Stroke starts a continuous stroke painting into buf. The engine's parameters are
// captured, so changing them does not affect a stroke already in progress.
func (e *MosaicEngine) Stroke(buf *PixelBuffer) *MosaicStroke {
	now := e.Now
	if now == nil {
		now = time.Now
	}
	return &MosaicStroke{
		buf:      buf,
		size:     e.Size,
		style:    e.Style,
		interval: e.Interval,
		now:      now,
	}
}

// MosaicStroke applies the mosaic effect along a pointer path given in image space.
type MosaicStroke struct {
	buf      *PixelBuffer
	size     int
	style    MosaicStyle
	interval time.Duration
	now      func() time.Time

	last        Point
	hasLast     bool
	lastApplied time.Time
	cells       int

	// pending is the most recent point dropped by the throttle.
	pending    Point
	hasPending bool
}

// Begin paints the cell under the press point. It is never throttled.
func (s *MosaicStroke) Begin(p Point) int {
	s.hasLast = false
	s.hasPending = false
	s.lastApplied = s.now()
	return s.paint(p)
}

// Extend continues the stroke to p, filling the gap from the previous accepted
// point with interpolated cells. Calls arriving within the throttle interval of
// the previous accepted one are dropped; the next accepted call covers the gap.
func (s *MosaicStroke) Extend(p Point) int {
	now := s.now()
	if s.interval > 0 && !s.lastApplied.IsZero() && now.Sub(s.lastApplied) < s.interval {
		s.pending, s.hasPending = p, true
		return 0
	}
	s.lastApplied = now
	s.hasPending = false
	return s.paint(p)
}

// Flush paints up to the last point dropped by the throttle, if any.
func (s *MosaicStroke) Flush() int {
	if !s.hasPending {
		return 0
	}
	s.hasPending = false
	if s.hasLast && s.last == s.pending {
		return 0
	}
	return s.paint(s.pending)
}

// End finishes the stroke at the release point p without throttling, covering
// any stretch of the path the throttle skipped.
func (s *MosaicStroke) End(p Point) int {
	painted := s.Flush()
	if s.hasLast && s.last == p {
		return painted
	}
	return painted + s.paint(p)
}

// Cells returns the number of cells painted so far.
func (s *MosaicStroke) Cells() int { return s.cells }

func (s *MosaicStroke) paint(p Point) int {
	cur := CellOrigin(p, s.size)
	cells := []image.Point{cur}
	if s.hasLast {
		cells = InterpolateCells(CellOrigin(s.last, s.size), cur, s.size)
	}

	painted := 0
	for _, c := range cells {
		if ApplyMosaicAtPoint(s.buf, c.X, c.Y, s.size, s.style) {
			painted++
		}
	}

	s.last = p
	s.hasLast = true
	s.cells += painted
	return painted
}
