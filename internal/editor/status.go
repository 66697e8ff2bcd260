package editor

import (
	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
	"github.com/ironsheep/image-editor-mcp/internal/scene"
)

// Status describes the session for display.
type Status struct {
	Mode     string       `json:"mode"`
	Canvas   CanvasStatus `json:"canvas"`
	Objects  int          `json:"objects"`
	Strokes  int          `json:"strokes"`
	Image    *ImageStatus `json:"image,omitempty"`
	CropRect *edimg.Rect  `json:"crop_rect,omitempty"`
	Texts    []TextStatus `json:"texts,omitempty"`

	HistoryLength int  `json:"history_length"`
	HistoryCursor int  `json:"history_cursor"`
	HistoryBytes  int  `json:"history_bytes"`
	CanUndo       bool `json:"can_undo"`
	CanReset      bool `json:"can_reset"`

	Settings Settings `json:"settings"`
}

// CanvasStatus reports the surface-wide state.
type CanvasStatus struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Background  string  `json:"background"`
	Selection   bool    `json:"selection"`
	DrawingMode bool    `json:"drawing_mode"`
	BrushWidth  float64 `json:"brush_width,omitempty"`
	BrushColor  string  `json:"brush_color,omitempty"`
}

// ImageStatus reports the active image.
type ImageStatus struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Left       float64 `json:"left"`
	Top        float64 `json:"top"`
	Scale      float64 `json:"scale"`
	Selectable bool    `json:"selectable"`
	Evented    bool    `json:"evented"`
}

// TextStatus reports one text object.
type TextStatus struct {
	Index      int     `json:"index"`
	Content    string  `json:"content"`
	Left       float64 `json:"left"`
	Top        float64 `json:"top"`
	FontSize   float64 `json:"font_size"`
	FontFamily string  `json:"font_family"`
	Fill       string  `json:"fill"`
	Selected   bool    `json:"selected"`
}

// Status returns a description of the current session state.
func (s *Session) Status() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Status{}, ErrClosed
	}

	st := Status{
		Mode: s.modes.Current().String(),
		Canvas: CanvasStatus{
			Width:       s.cfg.CanvasWidth,
			Height:      s.cfg.CanvasHeight,
			Background:  s.scene.Background,
			Selection:   s.canvas.selection,
			DrawingMode: s.canvas.drawingMode,
			BrushWidth:  s.canvas.brushWidth,
			BrushColor:  s.canvas.brushColor,
		},
		Objects:       s.scene.Len(),
		Strokes:       s.scene.Count(scene.KindStroke),
		HistoryLength: s.history.Len(),
		HistoryCursor: s.history.Cursor(),
		HistoryBytes:  s.history.Size(),
		CanUndo:       s.history.CanUndo(),
		CanReset:      s.original != nil,
		Settings:      s.settings,
	}

	if img := s.image; img != nil {
		st.Image = &ImageStatus{
			Width:      img.Width(),
			Height:     img.Height(),
			Left:       img.Left,
			Top:        img.Top,
			Scale:      img.Scale(),
			Selectable: img.Selectable,
			Evented:    img.Evented,
		}
	}
	if c := s.scene.CropRect(); c != nil {
		b := c.Bounds()
		st.CropRect = &b
	}
	for n, t := range s.scene.Texts() {
		st.Texts = append(st.Texts, TextStatus{
			Index:      n,
			Content:    t.Content,
			Left:       t.Left,
			Top:        t.Top,
			FontSize:   t.FontSize,
			FontFamily: t.FontFamily,
			Fill:       t.Fill,
			Selected:   t == s.selectedText,
		})
	}
	return st, nil
}
