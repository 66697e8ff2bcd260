package editor

import (
	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
	"github.com/ironsheep/image-editor-mcp/internal/scene"
)

// AddText places a text with the default content at the configured anchor using
// the current text settings, selects it and commits a snapshot. It works in any
// mode and returns the new text's index.
func (s *Session) AddText() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return -1, ErrClosed
	}

	anchor := s.cfg.TextAnchor
	t := scene.NewText(s.cfg.TextContent, anchor.X, anchor.Y, s.settings.TextSize, s.settings.TextColor, s.settings.TextFont)
	s.scene.Add(t)
	s.selectedText = t
	s.commit()
	s.surface.Invalidate()
	return len(s.scene.Texts()) - 1, nil
}

// EditText replaces the content of text index, or of the selected text when index
// is negative, and ends the edit. A snapshot is committed if the content changed.
// Empty content is allowed.
//
// # Errors
//
//   - Returns ErrNoText if the index does not exist or nothing is selected
func (s *Session) EditText(index int, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	t := s.selectedText
	if index >= 0 {
		texts := s.scene.Texts()
		if index >= len(texts) {
			return ErrNoText
		}
		t = texts[index]
	}
	if t == nil {
		return ErrNoText
	}

	s.selectedText = nil
	if t.Content != content {
		t.Content = content
		s.commit()
	}
	s.surface.Invalidate()
	return nil
}

// textAt returns the top-most text whose measured bounds contain p.
func (s *Session) textAt(p edimg.Point) *scene.Text {
	texts := s.scene.Texts()
	for n := len(texts) - 1; n >= 0; n-- {
		t := texts[n]
		bounds, err := s.compositor.Fonts.MeasureText(t.Content, t.FontFamily, t.FontSize, t.Left, t.Top, t.ScaleX, t.ScaleY)
		if err != nil {
			s.logger.Printf("editor: failed to measure text %d: %v", n, err)
			continue
		}
		if bounds.Contains(p) {
			return t
		}
	}
	return nil
}
