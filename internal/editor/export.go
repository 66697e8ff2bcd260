package editor

import (
	"fmt"
	"io"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/image-editor-mcp/internal/detection"
	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// ExportPNG writes the composed canvas to w as PNG. The crop selection is not
// part of the output.
func (s *Session) ExportPNG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.compositor.ExportPNG(w, s.scene)
}

// ExportFile writes the composed canvas to path as PNG.
func (s *Session) ExportFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	img, err := s.compositor.Compose(s.scene)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// RedactText finds regions of the image that look like text and pixelates each
// one with square cells of the current mosaic size. One snapshot is committed if
// any pixels changed. It returns the number of regions found.
//
// # Errors
//
//   - Returns ErrNoImage if no image is loaded
func (s *Session) RedactText(minConfidence float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	if s.image == nil {
		return 0, ErrNoImage
	}

	regions := detection.FindTextRegions(s.image.Raster, minConfidence)
	buf := edimg.NewPixelBuffer(s.image.Raster)
	cells := 0
	for _, r := range regions {
		cells += edimg.PixelateRegion(buf, r.Bounds, s.settings.MosaicSize)
	}

	if cells > 0 && s.commitIfChanged() {
		s.surface.Invalidate()
	}
	s.debugf("redacted %d text regions with %d cells", len(regions), cells)
	return len(regions), nil
}
