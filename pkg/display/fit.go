package display

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// FitToCells scales an image to fit within the given cell area while
// preserving aspect ratio, using Lanczos resampling. Images that already fit
// are returned unmodified (no upscaling). Zero or negative dimensions are
// clamped to safe minimums.
func FitToCells(img image.Image, maxWidthCells, maxHeightCells, cellW, cellH int) image.Image {
	if img == nil {
		return nil
	}
	if cellW <= 0 {
		cellW = 8
	}
	if cellH <= 0 {
		cellH = 16
	}
	if maxWidthCells < 1 {
		maxWidthCells = 1
	}
	if maxHeightCells < 1 {
		maxHeightCells = 1
	}

	maxW := maxWidthCells * cellW
	maxH := maxHeightCells * cellH

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return img
	}
	if bounds.Dx() <= maxW && bounds.Dy() <= maxH {
		return img
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

// ResampleNRGBA resizes an image to exactly w x h pixels and returns it in
// NRGBA form for fast per-pixel access. Degenerate targets are floored at 1.
func ResampleNRGBA(img image.Image, w, h int) *image.NRGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	bounds := img.Bounds()
	if bounds.Dx() == w && bounds.Dy() == h {
		if n, ok := img.(*image.NRGBA); ok {
			return n
		}
		return imaging.Clone(img)
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// Luminance returns the perceived brightness of a color in [0,1].
// Transparent pixels read as 0.
func Luminance(c color.NRGBA) float64 {
	if c.A == 0 {
		return 0
	}
	return math.Min(1, (0.2126*float64(c.R)+0.7152*float64(c.G)+0.0722*float64(c.B))/255)
}
