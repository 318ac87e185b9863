// Package color computes the ambient backdrop of a slide: an approximate average color
// sampled from the displayed image, and a lighter variant used as a top-to-bottom gradient.
package color

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// blockSize is the sampling stride in pixels; only every fifth pixel of the flattened buffer is read.
const blockSize = 5

// Sample is an RGB color with channels in [0, 255].
type Sample struct {
	R, G, B int
}

// Fallback is returned whenever the pixels of an image cannot be read.
var Fallback = Sample{R: 127, G: 156, B: 245}

// Hex renders the sample as #rrggbb.
func (s Sample) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(s.R), clamp(s.G), clamp(s.B))
}

func (s Sample) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", s.R, s.G, s.B)
}

// SampleAverage rasterizes img at its natural size and averages every fifth pixel.
//
// The walk starts at byte 16 of the RGBA buffer and advances 20 bytes at a time; each channel
// average is truncated toward zero. A nil image, an empty image or a rasterization failure
// yields [Fallback].
func SampleAverage(img image.Image) (s Sample) {
	if img == nil {
		return Fallback
	}

	defer func() {
		if recover() != nil {
			s = Fallback
		}
	}()

	bounds := img.Bounds()
	if bounds.Empty() {
		return Fallback
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Src)

	return averagePixels(canvas.Pix)
}

// averagePixels walks a flattened RGBA buffer in strides of blockSize pixels.
func averagePixels(pix []uint8) Sample {
	var r, g, b, count uint64

	for i := -4 + blockSize*4; i < len(pix); i += blockSize * 4 {
		count++
		r += uint64(pix[i])
		g += uint64(pix[i+1])
		b += uint64(pix[i+2])
	}

	if count == 0 {
		return Fallback
	}

	return Sample{
		R: int(r / count),
		G: int(g / count),
		B: int(b / count),
	}
}

// SampleReader decodes an encoded image (JPEG, PNG, GIF, WebP or BMP) and samples it.
//
// Decode failures never propagate: the caller gets [Fallback] and a nil image.
func SampleReader(r io.Reader) (Sample, image.Image) {
	if r == nil {
		return Fallback, nil
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return Fallback, nil
	}

	return SampleAverage(img), img
}
