// Package spark implements the numeric core of the animated growth
// sparkline: a pure Model builder, a cosine-eased animation driver, and
// pointer-to-value hover projection. The package has no opinion about the
// host environment; callers supply sizes in pixels and timestamps, and feed
// the resulting Model to a painter (pkg/raster) each frame.
package spark

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Metric bounds and animation duration limits. Metric values are expressed
// in tenths of a percent (0-1000 maps to +0%..+1000% growth).
const (
	MetricMax = 1000

	// DefaultMetric substitutes for absent or non-finite input values.
	DefaultMetric = 100

	DurationDefault = 980 * time.Millisecond
	DurationMin     = 200 * time.Millisecond
	DurationMax     = 4 * time.Second
)

// RGBA is a straight-alpha color with 8-bit channels and a fractional alpha.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// String renders the color as a CSS-style rgba() string.
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", c.R, c.G, c.B, c.A)
}

// Size is a display surface size in logical pixels.
type Size struct {
	Width  int
	Height int
}

// MeasureFunc returns the pixel width of a rendered label string.
// The zero value (nil) falls back to basicfont measurement.
type MeasureFunc func(s string) float64

// Style carries the caller-facing appearance knobs for a build.
type Style struct {
	// Color is an "rgba(r,g,b,a)" stroke color string. Unparseable or
	// empty input falls back to the default emerald stroke.
	Color string

	// Compact selects tighter paddings and smaller stroke defaults for
	// small embedded charts.
	Compact bool

	// Measure overrides label width measurement. Nil uses the builtin
	// bitmap face, which is what the terminal painter draws with.
	Measure MeasureFunc
}

// Overrides are optional numeric knobs. A NaN (or any non-finite) field
// keeps the compact-derived default. Unset() returns a fully-unset value.
type Overrides struct {
	LineWidth  float64
	GlowRadius float64
	AreaAlpha  float64
	DurationMs float64
}

// Unset returns Overrides with every knob left at its default.
func Unset() Overrides {
	n := math.NaN()
	return Overrides{LineWidth: n, GlowRadius: n, AreaAlpha: n, DurationMs: n}
}

// Model is the immutable geometry/style snapshot consumed by the painter and
// the hover projector. It is built once per mount, resize, or input change
// and replaced wholesale; nothing mutates a Model after Build returns.
type Model struct {
	Width  int
	Height int

	PadTop    float64
	PadBottom float64
	PadX      float64

	Stroke RGBA
	Glow   RGBA

	// Label is the formatted metric ("+NN%"); LabelWidth is its measured
	// pixel width, used to size the right gutter so the label never clips.
	Label      string
	LabelWidth float64

	// Baseline start point and animation target. StartY is the metric-zero
	// line; YFinal is the height the tip animates toward.
	StartX float64
	StartY float64
	EndX   float64
	YFinal float64

	// Area-fill gradient stops, glow radius, and marker radius are inert
	// extension points: computed here, not painted in the minimal visual
	// mode.
	FillTop      RGBA
	FillBottom   RGBA
	GlowRadius   float64
	MarkerRadius float64

	LineWidth float64
	AreaAlpha float64
	Duration  time.Duration

	// Value is the clamped metric the geometry was derived from. Hover
	// projection scales it by the pointer ratio.
	Value float64
}

// defaultStroke is the fallback when the color string does not parse.
var defaultStroke = RGBA{R: 16, G: 185, B: 129, A: 1}

// redSignature is the stroke color that selects the red-tinted glow.
var redSignature = RGBA{R: 239, G: 68, B: 68}

var rgbaPattern = regexp.MustCompile(`rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})`)

// Build derives a Model from a raw metric value, a surface size, and style
// inputs. It is pure and never fails: every malformed input degrades to a
// safe default so the caller always receives a paintable Model.
func Build(raw float64, size Size, style Style, ov Overrides) Model {
	value := clampMetric(raw)

	w := size.Width
	h := size.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	padTop, padBottom, padX := 8.0, 18.0, 8.0
	axisReserve := 18.0
	lineWidth := 2.0
	glowRadius := 6.0
	markerRadius := 3.0
	if style.Compact {
		padTop, padBottom, padX = 6.0, 14.0, 6.0
		axisReserve = 14.0
		lineWidth = 1.5
		glowRadius = 4.0
		markerRadius = 2.5
	}
	areaAlpha := 0.18

	if isFinite(ov.LineWidth) {
		lineWidth = ov.LineWidth
	}
	if isFinite(ov.GlowRadius) {
		glowRadius = ov.GlowRadius
	}
	if isFinite(ov.AreaAlpha) {
		areaAlpha = ov.AreaAlpha
	}

	duration := DurationDefault
	if isFinite(ov.DurationMs) {
		duration = time.Duration(ov.DurationMs * float64(time.Millisecond))
	}
	if duration < DurationMin {
		duration = DurationMin
	}
	if duration > DurationMax {
		duration = DurationMax
	}

	stroke := ParseRGBA(style.Color)
	glow := glowFor(stroke)

	label := FormatMetric(value)
	measure := style.Measure
	if measure == nil {
		measure = MeasureLabel
	}
	labelWidth := measure(label)

	// Vertical geometry. The baseline sits at metric zero; higher metrics
	// land higher on screen (smaller y).
	drawableHeight := math.Max(1, float64(h)-padTop-padBottom)
	norm := value / MetricMax
	yFinal := padTop + (1-norm)*drawableHeight
	startY := padTop + drawableHeight

	// Horizontal geometry. The left axis reserves fixed space plus a small
	// margin; the right gutter holds the metric label without clipping.
	startX := axisReserve + 4
	gutter := labelWidth + padX
	endX := float64(w) - gutter
	if endX < startX {
		endX = startX
	}

	return Model{
		Width:        w,
		Height:       h,
		PadTop:       padTop,
		PadBottom:    padBottom,
		PadX:         padX,
		Stroke:       stroke,
		Glow:         glow,
		Label:        label,
		LabelWidth:   labelWidth,
		StartX:       startX,
		StartY:       startY,
		EndX:         endX,
		YFinal:       yFinal,
		FillTop:      RGBA{R: stroke.R, G: stroke.G, B: stroke.B, A: areaAlpha},
		FillBottom:   RGBA{R: stroke.R, G: stroke.G, B: stroke.B, A: 0},
		GlowRadius:   glowRadius,
		MarkerRadius: markerRadius,
		LineWidth:    lineWidth,
		AreaAlpha:    areaAlpha,
		Duration:     duration,
		Value:        value,
	}
}

// ParseRGBA parses an "rgba(r,g,b,a)" color string. The alpha component is
// optional and ignored for matching purposes; out-of-range channels are
// clamped to 255. Any parse failure returns the default emerald stroke.
func ParseRGBA(s string) RGBA {
	m := rgbaPattern.FindStringSubmatch(s)
	if m == nil {
		return defaultStroke
	}
	return RGBA{R: chan8(m[1]), G: chan8(m[2]), B: chan8(m[3]), A: 1}
}

// glowFor picks the secondary accent tint. Strokes near the red signature
// (239,68,68) glow red; everything else glows green.
func glowFor(stroke RGBA) RGBA {
	if channelNear(stroke.R, redSignature.R) &&
		channelNear(stroke.G, redSignature.G) &&
		channelNear(stroke.B, redSignature.B) {
		return RGBA{R: 248, G: 113, B: 113, A: 0.45}
	}
	return RGBA{R: 52, G: 211, B: 153, A: 0.45}
}

// channelNear reports whether two 8-bit channels are within the signature
// match tolerance.
func channelNear(a, b uint8) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= 8
}

// FormatMetric renders a clamped metric value as its "+NN%" display label.
func FormatMetric(value float64) string {
	return fmt.Sprintf("+%d%%", int(math.Round(clampMetric(value))))
}

// MeasureLabel measures a label's pixel width with the builtin bitmap face.
// This is the default MeasureFunc.
func MeasureLabel(s string) float64 {
	adv := font.MeasureString(basicfont.Face7x13, s)
	return float64(adv) / 64
}

// clampMetric substitutes the default for non-finite input and clamps to
// the metric range.
func clampMetric(v float64) float64 {
	if !isFinite(v) {
		v = DefaultMetric
	}
	if v < 0 {
		return 0
	}
	if v > MetricMax {
		return MetricMax
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func chan8(s string) uint8 {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
