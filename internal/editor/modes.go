package editor

import (
	"math"

	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
	"github.com/ironsheep/image-editor-mcp/internal/scene"
)

// Entry and exit actions and pointer handlers of each mode. They run with the
// session lock held.

// interaction records an object's flags so an exit action can put them back.
type interaction struct {
	obj        *scene.Placement
	selectable bool
	evented    bool
}

func saveInteraction(p *scene.Placement) interaction {
	return interaction{obj: p, selectable: p.Selectable, evented: p.Evented}
}

func (i interaction) restore() {
	if i.obj != nil {
		i.obj.Selectable, i.obj.Evented = i.selectable, i.evented
	}
}

// Draw

type drawState struct {
	active bool
	points []edimg.Point
}

func (s *Session) enterDraw() {
	s.canvas.drawingMode = true
	s.canvas.brushWidth = s.settings.BrushSize
	s.canvas.brushColor = s.settings.BrushColor
}

func (s *Session) exitDraw() {
	// A stroke still in progress is kept as drawn so far.
	if s.finishStroke() {
		s.surface.Invalidate()
	}
	s.canvas.drawingMode = false
}

// finishStroke turns the captured points into a stroke object.
func (s *Session) finishStroke() bool {
	defer func() { s.draw = drawState{} }()
	if !s.draw.active || len(s.draw.points) == 0 {
		return false
	}
	s.scene.Add(scene.NewStroke(s.draw.points, s.canvas.brushColor, s.canvas.brushWidth))
	return true
}

type drawHandler struct{ s *Session }

func (h drawHandler) PointerDown(p edimg.Point) {
	h.s.draw = drawState{active: true, points: []edimg.Point{p}}
}

func (h drawHandler) PointerMove(p edimg.Point) {
	d := &h.s.draw
	if !d.active || d.points[len(d.points)-1] == p {
		return
	}
	d.points = append(d.points, p)
	h.s.surface.Invalidate()
}

func (h drawHandler) PointerUp(p edimg.Point) {
	if !h.s.draw.active {
		return
	}
	h.PointerMove(p)
	if h.s.finishStroke() {
		h.s.commit()
		h.s.surface.Invalidate()
	}
}

// Crop

type cropState struct {
	rect  *scene.CropRect
	saved interaction

	dragging bool
	moving   bool
	anchor   edimg.Point
}

func (s *Session) enterCrop() {
	bounds := s.cfg.CropFallback
	if s.image != nil {
		bounds = s.image.Bounds()
		s.crop.saved = saveInteraction(&s.image.Placement)
		s.image.Selectable, s.image.Evented = true, true
	}
	s.crop.rect = scene.NewCropRect(bounds)
	s.scene.Add(s.crop.rect)
}

func (s *Session) exitCrop() {
	if s.crop.rect != nil {
		s.scene.Remove(s.crop.rect)
	}
	s.crop.saved.restore()
	s.crop = cropState{}
}

type cropHandler struct{ s *Session }

// PointerDown starts moving the selection when pressed inside it, and starts a
// new selection from the press point otherwise.
func (h cropHandler) PointerDown(p edimg.Point) {
	c := &h.s.crop
	if c.rect == nil {
		return
	}
	c.dragging = true
	b := c.rect.Bounds()
	if b.Contains(p) {
		c.moving = true
		c.anchor = edimg.Point{X: p.X - b.Left, Y: p.Y - b.Top}
		return
	}
	c.moving = false
	c.anchor = p
	c.rect.SetBounds(edimg.Rect{Left: p.X, Top: p.Y})
	h.s.surface.Invalidate()
}

func (h cropHandler) PointerMove(p edimg.Point) {
	c := &h.s.crop
	if c.rect == nil || !c.dragging {
		return
	}
	if c.moving {
		c.rect.Left, c.rect.Top = p.X-c.anchor.X, p.Y-c.anchor.Y
	} else {
		c.rect.SetBounds(rectBetween(c.anchor, p))
	}
	h.s.surface.Invalidate()
}

func (h cropHandler) PointerUp(p edimg.Point) {
	h.PointerMove(p)
	h.s.crop.dragging = false
}

func rectBetween(a, b edimg.Point) edimg.Rect {
	return edimg.Rect{
		Left:   math.Min(a.X, b.X),
		Top:    math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// Mosaic

type mosaicState struct {
	saved     interaction
	selection bool
	stroke    *edimg.MosaicStroke
}

func (s *Session) enterMosaic() {
	if s.image != nil {
		s.mosaic.saved = saveInteraction(&s.image.Placement)
		s.image.Selectable, s.image.Evented = false, false
	}
	s.mosaic.selection = s.canvas.selection
	s.canvas.selection = false
}

func (s *Session) exitMosaic() {
	// A drag still in progress stops at its last reported point; the mode
	// change commits it.
	if s.mosaic.stroke != nil && s.mosaic.stroke.Flush() > 0 {
		s.surface.Invalidate()
	}
	s.mosaic.saved.restore()
	s.canvas.selection = s.mosaic.selection
	s.mosaic = mosaicState{}
}

type mosaicHandler struct{ s *Session }

func (h mosaicHandler) PointerDown(p edimg.Point) {
	s := h.s
	if s.image == nil {
		return
	}
	style, err := edimg.ParseMosaicStyle(s.settings.MosaicStyle)
	if err != nil {
		style = edimg.MosaicSquare
	}
	engine := &edimg.MosaicEngine{
		Size:     s.settings.MosaicSize,
		Style:    style,
		Interval: s.cfg.Throttle(),
		Now:      s.now,
	}
	s.mosaic.stroke = engine.Stroke(edimg.NewPixelBuffer(s.image.Raster))
	if s.mosaic.stroke.Begin(s.image.ToImageSpace(p)) > 0 {
		s.surface.Invalidate()
	}
}

func (h mosaicHandler) PointerMove(p edimg.Point) {
	s := h.s
	if s.mosaic.stroke == nil || s.image == nil {
		return
	}
	if s.mosaic.stroke.Extend(s.image.ToImageSpace(p)) > 0 {
		s.surface.Invalidate()
	}
}

func (h mosaicHandler) PointerUp(p edimg.Point) {
	s := h.s
	if s.mosaic.stroke == nil {
		return
	}
	if s.image != nil && s.mosaic.stroke.End(s.image.ToImageSpace(p)) > 0 {
		s.surface.Invalidate()
	}
	s.mosaic.stroke = nil
	s.commitIfChanged()
}

// Text

type textHandler struct{ s *Session }

// PointerDown selects the text under p for editing, or places a new text at p
// and leaves text mode.
func (h textHandler) PointerDown(p edimg.Point) {
	s := h.s
	if t := s.textAt(p); t != nil {
		s.selectedText = t
		s.surface.Invalidate()
		return
	}

	t := scene.NewText(s.cfg.TextContent, p.X, p.Y, s.settings.TextSize, s.settings.TextColor, s.settings.TextFont)
	s.scene.Add(t)
	s.selectedText = t
	s.commit()
	s.surface.Invalidate()
	s.modes.Exit()
}

func (h textHandler) PointerMove(edimg.Point) {}

func (h textHandler) PointerUp(edimg.Point) {}
