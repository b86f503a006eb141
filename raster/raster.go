package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Buffer is an RGB888 row-major pixel buffer, the representation the
// line segmenter scans and detection backends consume.
type Buffer struct {
	// Pix holds 3 bytes per pixel, rows top to bottom
	Pix []uint8

	// Width and Height in pixels
	Width  int
	Height int
}

// New allocates a zeroed buffer of the given dimensions.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		Pix:    make([]uint8, width*height*3),
		Width:  width,
		Height: height,
	}
}

// FromImage converts any image into an RGB888 buffer, dropping alpha.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	return fromRGBA(toRGBA(img, bounds.Dx(), bounds.Dy()))
}

// Scaled converts an image into an RGB888 buffer of the given
// dimensions, stretch-resizing with bilinear interpolation. Detection
// backends that want a fixed input size (e.g. 800x800) use this.
func Scaled(img image.Image, width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		return New(0, 0)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return fromRGBA(dst)
}

// RGB returns the pixel at (x, y). Out-of-bounds coordinates return
// white, matching an unrendered page background.
func (b *Buffer) RGB(x, y int) (r, g, bl uint8) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 255, 255, 255
	}
	idx := (y*b.Width + x) * 3
	return b.Pix[idx], b.Pix[idx+1], b.Pix[idx+2]
}

// Luminance returns the perceptual luminance (0-255) of the pixel at
// (x, y) using the Rec. 601 weights.
func (b *Buffer) Luminance(x, y int) float64 {
	r, g, bl := b.RGB(x, y)
	return float64(r)*0.299 + float64(g)*0.587 + float64(bl)*0.114
}

func toRGBA(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}

func fromRGBA(src *image.RGBA) *Buffer {
	width := src.Bounds().Dx()
	height := src.Bounds().Dy()

	buf := New(width, height)
	for y := 0; y < height; y++ {
		srcRow := src.Pix[y*src.Stride:]
		dstRow := buf.Pix[y*width*3:]
		for x := 0; x < width; x++ {
			dstRow[x*3] = srcRow[x*4]
			dstRow[x*3+1] = srcRow[x*4+1]
			dstRow[x*3+2] = srcRow[x*4+2]
		}
	}
	return buf
}
