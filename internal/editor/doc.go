// Package editor implements the editing-state engine of the image editor.
//
// A Session owns the scene, the undo history and the mode state machine. All
// user actions enter through Session methods: loading an image, switching mode,
// pointer events, crop, text, undo, reset and export.
//
// # Modes
//
// Exactly one Mode is active at a time. Switching modes runs the current mode's
// exit action and the new mode's entry action, and attaches the new mode's
// pointer handler. Selecting the active mode again toggles back to ModeNone.
//
//   - ModeDraw: pointer drags become freehand strokes
//   - ModeCrop: a crop overlay is shown; ApplyCrop extracts the selected pixels
//   - ModeMosaic: pointer drags pixelate the image along the path
//   - ModeText: a click places a new text object, or selects an existing one
//
// # History
//
// Every committed edit pushes a snapshot of the scene. Transient pointer motion
// is never committed on its own; strokes and mosaic drags commit on pointer-up
// and mode changes commit only when the scene actually changed.
//
// # Thread Safety
//
// Session methods may be called from multiple goroutines; they are serialized by
// an internal mutex.
package editor
