// Package render composites a scene into a single raster.
//
// The editor core never draws to a screen; this package exists for PNG export
// and for the text metrics the editor needs to hit-test text objects.
//
// Objects are drawn in scene order over the background: images are resampled to
// their displayed size, strokes are rasterized with round caps and joins, and text
// is drawn with the Go font family. The crop overlay is never drawn.
package render
