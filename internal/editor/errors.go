package editor

import "errors"

var (
	// ErrNoImage is returned by operations that need a loaded image.
	ErrNoImage = errors.New("no image loaded")
	// ErrNoCropRect is returned when no crop selection exists.
	ErrNoCropRect = errors.New("no crop rectangle: crop mode is not active")
	// ErrDegenerateCrop is returned when the crop selection does not overlap the image.
	ErrDegenerateCrop = errors.New("crop region does not overlap the image")
	// ErrNothingToUndo is returned when the history has no older snapshot.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNoOriginal is returned by Reset before any image was loaded.
	ErrNoOriginal = errors.New("no original image to reset to")
	// ErrNoText is returned when a text index does not exist or no text is selected.
	ErrNoText = errors.New("no such text object")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("session closed")
)

// IsNoOp reports whether err is a guarded no-op: the operation was skipped because
// a prerequisite was missing, and the scene and history are unchanged.
func IsNoOp(err error) bool {
	return errors.Is(err, ErrNoImage) ||
		errors.Is(err, ErrNoCropRect) ||
		errors.Is(err, ErrDegenerateCrop) ||
		errors.Is(err, ErrNothingToUndo) ||
		errors.Is(err, ErrNoOriginal) ||
		errors.Is(err, ErrNoText)
}
