package editor

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/ironsheep/image-editor-mcp/internal/history"
	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
	"github.com/ironsheep/image-editor-mcp/internal/render"
	"github.com/ironsheep/image-editor-mcp/internal/scene"
)

// Surface is the drawing surface that displays the scene. The session calls
// Invalidate whenever the scene changed and needs to be redrawn.
type Surface interface {
	Invalidate()
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func()

// Invalidate calls f.
func (f SurfaceFunc) Invalidate() { f() }

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the sink for serialization failures and debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithSurface sets the surface notified of scene changes.
func WithSurface(surface Surface) Option {
	return func(s *Session) { s.surface = surface }
}

// WithClock replaces time.Now for mosaic throttling.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithDebug enables debug logging of mode transitions and commits.
func WithDebug(debug bool) Option {
	return func(s *Session) { s.debug = debug }
}

// Settings are the tool parameters that can change during a session.
type Settings struct {
	BrushSize   float64 `json:"brush_size"`
	BrushColor  string  `json:"brush_color"`
	MosaicSize  int     `json:"mosaic_size"`
	MosaicStyle string  `json:"mosaic_style"`
	TextSize    float64 `json:"text_size"`
	TextColor   string  `json:"text_color"`
	TextFont    string  `json:"text_font"`
}

// canvasState mirrors the surface-wide interaction flags.
type canvasState struct {
	selection   bool
	drawingMode bool
	brushWidth  float64
	brushColor  string
}

// Session is one editing session over a single canvas.
type Session struct {
	mu sync.Mutex

	cfg      Config
	settings Settings
	logger   *log.Logger
	debug    bool
	surface  Surface
	now      func() time.Time

	scene    *scene.Scene
	image    *scene.Image
	original *image.NRGBA

	history    *history.Store
	serializer *scene.Serializer
	compositor *render.Compositor
	modes      *ModeController
	canvas     canvasState

	selectedText *scene.Text
	draw         drawState
	crop         cropState
	mosaic       mosaicState

	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// NewSession creates a session with an empty scene and empty history.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Session{
		cfg: cfg,
		settings: Settings{
			BrushSize:   cfg.BrushSize,
			BrushColor:  cfg.BrushColor,
			MosaicSize:  cfg.MosaicSize,
			MosaicStyle: cfg.MosaicStyle,
			TextSize:    cfg.TextSize,
			TextColor:   cfg.TextColor,
			TextFont:    cfg.TextFont,
		},
		logger:     log.Default(),
		surface:    SurfaceFunc(func() {}),
		now:        time.Now,
		scene:      scene.New(cfg.Background),
		history:    history.New(),
		compositor: render.NewCompositor(cfg.CanvasWidth, cfg.CanvasHeight),
		modes:      NewModeController(),
		canvas:     canvasState{selection: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.serializer = scene.NewSerializer(s.logger)
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.modes.OnTransition = func(from, to Mode) {
		s.debugf("mode %s -> %s", from, to)
	}
	s.modes.Register(ModeDraw, ModeActions{Enter: s.enterDraw, Exit: s.exitDraw, Pointer: drawHandler{s}})
	s.modes.Register(ModeCrop, ModeActions{Enter: s.enterCrop, Exit: s.exitCrop, Pointer: cropHandler{s}})
	s.modes.Register(ModeMosaic, ModeActions{Enter: s.enterMosaic, Exit: s.exitMosaic, Pointer: mosaicHandler{s}})
	s.modes.Register(ModeText, ModeActions{Pointer: textHandler{s}})

	return s, nil
}

// Close ends the session. Snapshot reconstruction in progress is cancelled and
// every later call returns ErrClosed.
func (s *Session) Close() error {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.compositor.Fonts.Close()
}

// LoadImage replaces the scene with img, scaled down to fit the canvas and
// centered. The image is locked in place until a mode changes that. An unscaled
// copy is kept for Reset. A snapshot is committed.
//
// # Errors
//
//   - Returns error if img is nil or has no pixels; the scene is unchanged
func (s *Session) LoadImage(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("failed to load image: image is empty")
	}

	raster := edimg.ToNRGBA(img)
	s.modes.Exit()

	obj := scene.NewImage(raster)
	obj.FitToCanvas(s.cfg.CanvasWidth, s.cfg.CanvasHeight)
	obj.Selectable, obj.Evented = false, false

	s.scene = scene.New(s.cfg.Background)
	s.scene.Add(obj)
	s.image = obj
	s.original = edimg.ToNRGBA(raster)
	s.selectedText = nil

	s.commit()
	s.debugf("loaded %dx%d image at scale %.3f", obj.Width(), obj.Height(), obj.Scale())
	s.surface.Invalidate()
	return nil
}

// LoadReader decodes an image from r and loads it.
func (s *Session) LoadReader(r io.Reader) error {
	img, err := edimg.Decode(r)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	return s.LoadImage(img)
}

// SetMode enters m, or leaves it if it is already active, and returns the mode
// active afterwards. A snapshot is committed if the transition changed the scene.
func (s *Session) SetMode(m Mode) (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ModeNone, ErrClosed
	}

	current := s.modes.Enter(m)
	s.commitIfChanged()
	s.surface.Invalidate()
	return current, nil
}

// SetSurface replaces the surface notified of scene changes.
func (s *Session) SetSurface(surface Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = surface
}

// Mode returns the active mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modes.Current()
}

// PointerDown delivers a pointer press at canvas point p to the active mode.
func (s *Session) PointerDown(p edimg.Point) error {
	return s.dispatch(func(h PointerHandler) { h.PointerDown(p) })
}

// PointerMove delivers pointer motion to the active mode.
func (s *Session) PointerMove(p edimg.Point) error {
	return s.dispatch(func(h PointerHandler) { h.PointerMove(p) })
}

// PointerUp delivers a pointer release to the active mode.
func (s *Session) PointerUp(p edimg.Point) error {
	return s.dispatch(func(h PointerHandler) { h.PointerUp(p) })
}

// Click is a press and release at the same point.
func (s *Session) Click(p edimg.Point) error {
	if err := s.PointerDown(p); err != nil {
		return err
	}
	return s.PointerUp(p)
}

func (s *Session) dispatch(fn func(PointerHandler)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if h := s.modes.Pointer(); h != nil {
		fn(h)
	}
	return nil
}

// Undo restores the previous snapshot. All objects of the snapshot are rebuilt
// before the active mode is left, without committing, and the scene is swapped in.
//
// # Errors
//
//   - Returns ErrNothingToUndo if there is no older snapshot
//   - Returns error if ctx or the session is cancelled during reconstruction;
//     the scene, mode and history cursor are unchanged
func (s *Session) Undo(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	snap, ok := s.history.Previous()
	if !ok {
		return ErrNothingToUndo
	}
	restored, err := s.restore(ctx, snap)
	if err != nil {
		return fmt.Errorf("failed to undo: %w", err)
	}
	s.modes.Exit()
	s.history.Undo()
	s.replaceScene(restored)
	return nil
}

// Reset rebuilds the scene from the originally loaded image, placed as on load
// but selectable, and clears the history down to that single snapshot.
//
// # Errors
//
//   - Returns ErrNoOriginal if no image was ever loaded
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.original == nil {
		return ErrNoOriginal
	}
	s.modes.Exit()

	obj := scene.NewImage(edimg.ToNRGBA(s.original))
	obj.FitToCanvas(s.cfg.CanvasWidth, s.cfg.CanvasHeight)

	s.scene = scene.New(s.cfg.Background)
	s.scene.Add(obj)
	s.image = obj
	s.selectedText = nil
	s.canvas = canvasState{selection: true}

	s.history.Reset()
	s.commit()
	s.surface.Invalidate()
	return nil
}

// Snapshot returns the serialized current scene.
func (s *Session) Snapshot() (scene.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return scene.Snapshot{}, ErrClosed
	}
	return s.serializer.Encode(s.scene)
}

// Settings returns the current tool parameters.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetBrushSize changes the stroke width. It applies to the live brush when draw
// mode is active.
func (s *Session) SetBrushSize(size float64) error {
	if size <= 0 {
		return fmt.Errorf("brush size must be positive, got %v", size)
	}
	return s.update(func() {
		s.settings.BrushSize = size
		if s.modes.Active(ModeDraw) {
			s.canvas.brushWidth = size
		}
	})
}

// SetBrushColor changes the stroke color. It applies to the live brush when draw
// mode is active.
func (s *Session) SetBrushColor(c string) error {
	hex, err := edimg.NormalizeColor(c)
	if err != nil {
		return err
	}
	return s.update(func() {
		s.settings.BrushColor = hex
		if s.modes.Active(ModeDraw) {
			s.canvas.brushColor = hex
		}
	})
}

// SetMosaicSize changes the mosaic cell side for the next drag.
func (s *Session) SetMosaicSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("mosaic size must be positive, got %d", size)
	}
	return s.update(func() { s.settings.MosaicSize = size })
}

// SetMosaicStyle changes the mosaic cell shape for the next drag.
func (s *Session) SetMosaicStyle(style string) error {
	st, err := edimg.ParseMosaicStyle(style)
	if err != nil {
		return err
	}
	return s.update(func() { s.settings.MosaicStyle = string(st) })
}

// SetTextSize changes the font size of texts placed from now on.
func (s *Session) SetTextSize(size float64) error {
	if size <= 0 {
		return fmt.Errorf("text size must be positive, got %v", size)
	}
	return s.update(func() { s.settings.TextSize = size })
}

// SetTextColor changes the fill of texts placed from now on.
func (s *Session) SetTextColor(c string) error {
	hex, err := edimg.NormalizeColor(c)
	if err != nil {
		return err
	}
	return s.update(func() { s.settings.TextColor = hex })
}

// SetTextFont changes the font family of texts placed from now on.
func (s *Session) SetTextFont(family string) error {
	if !slices.Contains(render.FontFamilies(), family) {
		return fmt.Errorf("unknown font family: %s", family)
	}
	return s.update(func() { s.settings.TextFont = family })
}

func (s *Session) update(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	fn()
	return nil
}

// commit pushes a snapshot of the scene unconditionally.
func (s *Session) commit() {
	snap, err := s.serializer.Encode(s.scene)
	if err != nil {
		s.logger.Printf("editor: failed to snapshot scene: %v", err)
		return
	}
	s.history.Push(snap)
	s.debugf("committed snapshot %d (%d bytes)", s.history.Cursor(), snap.Len())
}

// commitIfChanged pushes a snapshot only if it differs from the one at the
// cursor. Before anything was loaded an empty scene is not committed.
func (s *Session) commitIfChanged() bool {
	cur, ok := s.history.Current()
	if !ok && s.scene.Len() == 0 {
		return false
	}

	snap, err := s.serializer.Encode(s.scene)
	if err != nil {
		s.logger.Printf("editor: failed to snapshot scene: %v", err)
		return false
	}
	if ok && cur.Equal(snap) {
		return false
	}
	s.history.Push(snap)
	s.debugf("committed snapshot %d (%d bytes)", s.history.Cursor(), snap.Len())
	return true
}

// restore decodes snap, aborting if either ctx or the session is cancelled.
func (s *Session) restore(ctx context.Context, snap scene.Snapshot) (*scene.Scene, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	return s.serializer.Decode(ctx, snap)
}

func (s *Session) replaceScene(sc *scene.Scene) {
	s.scene = sc
	s.image = sc.TopImage()
	s.selectedText = nil
	s.canvas = canvasState{selection: true}
	s.surface.Invalidate()
}

func (s *Session) debugf(format string, args ...interface{}) {
	if s.debug {
		s.logger.Printf("editor: "+format, args...)
	}
}
