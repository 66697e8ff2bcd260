// Package imaging provides the raster primitives of the editor: pixel access over
// decoded images, the mosaic (pixelation) engine, crop geometry and extraction,
// color parsing, and image loading.
//
// # Coordinate Systems
//
// Two coordinate spaces appear throughout this package:
//   - Canvas space: floating point positions on the editing surface. Scene objects
//     are placed here with a (left, top) origin and scale factors.
//   - Image space: integer pixel positions inside a raster, with (0,0) at the
//     top-left pixel. Regions use image.Rectangle, so Min is inclusive and Max is
//     exclusive.
//
// Conversions between the two subtract the image origin and divide by the image's
// uniform scale factor.
//
// # Raster Representation
//
// Rasters are *image.NRGBA. Channel values are non-premultiplied, so averaging a
// block of pixels yields the same mean a 2D canvas pixel read would.
//
// # Mutation
//
// PixelBuffer writes into the raster it wraps. Mosaic painting is destructive by
// intent: the only way back is to restore an earlier snapshot.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. PixelBuffer and MosaicStroke are not; the
// editor session serializes all calls into them.
package imaging
