// Package raster provides the stateless paint routine for the growth
// sparkline. It renders a spark.Model at a given animation progress into an
// RGBA raster, scaled for the host's pixel density. Painting is the only
// effect; no package state is read or written.
package raster

import (
	"image"
	"image/draw"
)

// Surface is a pixel-density-aware RGBA raster. Geometry arrives in logical
// pixels; the surface multiplies by its density scale when writing pixels so
// high-density hosts get proportionally sharper output.
//
// A Surface is exclusively owned by the instance that created it. All paints
// are sequenced by the host's frame scheduler, so there is never a
// concurrent writer.
type Surface struct {
	img    *image.RGBA
	scale  float64
	width  int // logical
	height int // logical
}

// NewSurface allocates a surface for the given logical size and pixel
// density. Zero or negative dimensions are floored at 1, and density is
// floored at 1, so a degenerate container still yields a paintable raster.
func NewSurface(width, height int, density float64) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if !(density >= 1) { // catches NaN as well
		density = 1
	}
	pw := int(float64(width) * density)
	ph := int(float64(height) * density)
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	return &Surface{
		img:    image.NewRGBA(image.Rect(0, 0, pw, ph)),
		scale:  density,
		width:  width,
		height: height,
	}
}

// Image exposes the backing raster for display encoding.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Scale returns the pixel density multiplier.
func (s *Surface) Scale() float64 {
	return s.scale
}

// Width returns the logical width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the logical height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Clear resets every pixel to transparent black.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// blend composites a straight-alpha color over the pixel at (x, y) in
// device coordinates. Coverage scales the color's own alpha.
func (s *Surface) blend(x, y int, r, g, b uint8, alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	b0 := s.img.Bounds()
	if x < b0.Min.X || x >= b0.Max.X || y < b0.Min.Y || y >= b0.Max.Y {
		return
	}
	i := s.img.PixOffset(x, y)
	pix := s.img.Pix[i : i+4 : i+4]
	inv := 1 - alpha
	pix[0] = uint8(float64(r)*alpha + float64(pix[0])*inv)
	pix[1] = uint8(float64(g)*alpha + float64(pix[1])*inv)
	pix[2] = uint8(float64(b)*alpha + float64(pix[2])*inv)
	a := alpha + float64(pix[3])/255*inv
	pix[3] = uint8(a * 255)
}
