// Package raster converts rendered page images into the flat RGB888
// row-major pixel buffers consumed by detection backends and by the
// layout package's line segmenter.
//
// [FromImage] converts at the source resolution; [Scaled] stretch-resizes
// to a fixed detector input size with bilinear interpolation.
package raster
