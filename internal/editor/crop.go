package editor

import (
	"fmt"

	edimg "github.com/ironsheep/image-editor-mcp/internal/imaging"
	"github.com/ironsheep/image-editor-mcp/internal/scene"
)

// SetCropRect moves and resizes the crop selection. Negative sizes are
// normalized so that r may be given from any corner.
//
// # Errors
//
//   - Returns ErrNoCropRect if crop mode is not active
func (s *Session) SetCropRect(r edimg.Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.crop.rect == nil {
		return ErrNoCropRect
	}

	s.crop.rect.SetBounds(rectBetween(
		edimg.Point{X: r.Left, Y: r.Top},
		edimg.Point{X: r.Right(), Y: r.Bottom()},
	))
	s.surface.Invalidate()
	return nil
}

// ApplyCrop replaces the image with the pixels under the crop selection.
//
// The new image has unit scale and is centered on the canvas at the old image's
// position in the draw order. The selection is removed, the mode returns to
// ModeNone and one snapshot is committed.
//
// # Errors
//
// All errors except a closed session leave the scene, mode and history unchanged:
//
//   - Returns ErrNoImage if no image is loaded
//   - Returns ErrNoCropRect if crop mode is not active
//   - Returns ErrDegenerateCrop if the selection does not overlap the image
func (s *Session) ApplyCrop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.image == nil {
		return ErrNoImage
	}
	if s.crop.rect == nil {
		return ErrNoCropRect
	}

	old := s.image
	region, ok := edimg.CropRegion(s.crop.rect.Bounds(), old.Bounds(), old.Scale())
	if !ok {
		return ErrDegenerateCrop
	}
	raster, err := edimg.ExtractRegion(old.Raster, region)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDegenerateCrop, err)
	}

	cropped := scene.NewImage(raster)
	cropped.Left = float64(s.cfg.CanvasWidth-cropped.Width()) / 2
	cropped.Top = float64(s.cfg.CanvasHeight-cropped.Height()) / 2

	s.scene.Replace(old, cropped)
	s.image = cropped
	s.modes.Exit()

	s.commit()
	s.debugf("cropped to %dx%d from (%d,%d)", cropped.Width(), cropped.Height(), region.Min.X, region.Min.Y)
	s.surface.Invalidate()
	return nil
}
