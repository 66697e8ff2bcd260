// Package detection locates regions of an image that are likely to contain text.
//
// The editor uses it to redact text automatically: every detected region is
// pixelated with the mosaic engine. Detection is heuristic and works on edge
// density rather than character recognition, so it needs no native libraries and
// runs on any raster.
//
// # Algorithm Overview
//
//  1. Edge Detection: convert to grayscale and mark pixels whose horizontal or
//     vertical neighbor differs by more than a fixed threshold
//  2. Window Scan: slide windows of several text-line sizes over the edge map and
//     score each one by edge density and by how much of its edge structure runs
//     horizontally, as glyph strokes along a text line do
//  3. Merge: overlapping candidate windows are merged into a single region
//
// # Coordinate System
//
// Regions are image.Rectangle values in the coordinate space of the input image:
// Min is inclusive and Max is exclusive.
package detection
