package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"gitlab.com/tinyland/lab/pulse-spark/pkg/spark"
)

// AxisLabels is the optional pair of time-span labels rendered below the
// drawable area. A nil pair omits axis text entirely.
type AxisLabels struct {
	Left  string
	Right string
}

// Guide line appearance. The vertical axis guide is a faint solid line; the
// baseline is dashed.
const (
	guideAlpha    = 0.18
	baselineAlpha = 0.28
	dashOn        = 4.0
	dashOff       = 3.0
	labelAlpha    = 0.6
)

// Paint renders a Model at the given eased progress onto the surface. It is
// pure with respect to program state: the only effect is writing pixels.
//
// The frame consists of a faint vertical guide at the left axis, a dashed
// horizontal guide at baseline height, and the stroke from the fixed start
// point to the interpolated tip. Area fill, glow halo, and the endpoint
// marker are deliberately not painted; the Model carries them as inert
// extension fields.
func Paint(s *Surface, m spark.Model, progress float64, labels *AxisLabels) {
	s.Clear()

	if progress < 0 || math.IsNaN(progress) {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	// Interpolated tip along the start -> target segment. The caller passes
	// the eased fraction, so no easing happens here.
	tipX := m.StartX + (m.EndX-m.StartX)*progress
	tipY := m.StartY + (m.YFinal-m.StartY)*progress

	paintAxisGuide(s, m)
	paintBaseline(s, m)
	paintStroke(s, m, tipX, tipY)

	if labels != nil {
		paintAxisText(s, m, *labels)
	}
}

// paintAxisGuide draws the faint vertical guide at the left axis position,
// spanning the drawable height.
func paintAxisGuide(s *Surface, m spark.Model) {
	sc := s.Scale()
	x := int(math.Round(m.StartX * sc))
	top := int(math.Round(m.PadTop * sc))
	bottom := int(math.Round(m.StartY * sc))
	c := m.Stroke
	for y := top; y <= bottom; y++ {
		s.blend(x, y, c.R, c.G, c.B, guideAlpha)
	}
}

// paintBaseline draws the dashed horizontal guide at baseline (StartY)
// height, from the axis to the chart's right edge.
func paintBaseline(s *Surface, m spark.Model) {
	sc := s.Scale()
	y := int(math.Round(m.StartY * sc))
	period := (dashOn + dashOff) * sc
	on := dashOn * sc
	x0 := m.StartX * sc
	x1 := m.EndX * sc
	c := m.Stroke
	for x := x0; x <= x1; x++ {
		if math.Mod(x-x0, period) < on {
			s.blend(int(x), y, c.R, c.G, c.B, baselineAlpha)
		}
	}
}

// paintStroke draws the chart line from the fixed start point to the
// current tip with round caps, anti-aliased by signed distance to the
// segment.
func paintStroke(s *Surface, m spark.Model, tipX, tipY float64) {
	sc := s.Scale()
	x0, y0 := m.StartX*sc, m.StartY*sc
	x1, y1 := tipX*sc, tipY*sc
	half := m.LineWidth * sc / 2

	minX := int(math.Floor(math.Min(x0, x1) - half - 1))
	maxX := int(math.Ceil(math.Max(x0, x1) + half + 1))
	minY := int(math.Floor(math.Min(y0, y1) - half - 1))
	maxY := int(math.Ceil(math.Max(y0, y1) + half + 1))

	c := m.Stroke
	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			d := segmentDistance(float64(px)+0.5, float64(py)+0.5, x0, y0, x1, y1)
			cov := half + 0.5 - d
			if cov <= 0 {
				continue
			}
			if cov > 1 {
				cov = 1
			}
			s.blend(px, py, c.R, c.G, c.B, cov*c.A)
		}
	}
}

// paintAxisText renders the left/right span labels below the drawable area:
// left anchored at the axis position, right anchored ending at EndX.
func paintAxisText(s *Surface, m spark.Model, labels AxisLabels) {
	baseY := m.StartY + m.PadBottom*0.75
	if labels.Left != "" {
		drawString(s, labels.Left, m.StartX, baseY, m.Stroke)
	}
	if labels.Right != "" {
		w := spark.MeasureLabel(labels.Right)
		drawString(s, labels.Right, m.EndX-w, baseY, m.Stroke)
	}
}

// drawString rasterizes text with the builtin bitmap face at the given
// logical position. The face is not scaled by density; on dense surfaces
// labels render proportionally smaller, which matches the compact look.
func drawString(s *Surface, text string, x, y float64, c spark.RGBA) {
	sc := s.Scale()
	col := color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(labelAlpha * 255)}
	d := font.Drawer{
		Dst:  s.Image(),
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * sc * 64),
			Y: fixed.Int26_6(y * sc * 64),
		},
	}
	d.DrawString(text)
}

// segmentDistance returns the distance from point (px,py) to the segment
// (x0,y0)-(x1,y1). A zero-length segment degenerates to point distance,
// which is what gives the stroke its round caps.
func segmentDistance(px, py, x0, y0, x1, y1 float64) float64 {
	dx := x1 - x0
	dy := y1 - y0
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((px-x0)*dx + (py-y0)*dy) / lenSq
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
	}
	cx := x0 + t*dx
	cy := y0 + t*dy
	return math.Hypot(px-cx, py-cy)
}
