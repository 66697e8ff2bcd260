// Package scene holds the editable canvas model and its snapshot encoding.
//
// A Scene is an ordered list of objects drawn back to front over a background
// color. Four object kinds exist: raster images, freehand strokes, text and the
// crop rectangle overlay. Every object carries a Placement (canvas position, scale
// factors and interaction flags).
//
// # Snapshots
//
// A Serializer turns a Scene into an immutable Snapshot and back. Snapshots are
// JSON documents. Image rasters are embedded as PNG data URLs because mosaic and
// crop edits are destructive to the raster. The crop rectangle is an overlay and
// is never serialized, and neither are interaction flags.
//
// Encoding is best effort: an object that fails to encode is dropped and reported
// to the serializer's logger. Decoding reconstructs all objects concurrently and
// returns only after every one of them has finished; records that are invalid are
// skipped.
//
// # Thread Safety
//
// Scene and its objects are not safe for concurrent mutation. Snapshots are
// immutable and may be shared freely.
package scene
