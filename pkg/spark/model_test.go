package spark

import (
	"math"
	"testing"
	"time"
)

// fixedMeasure gives label measurement a deterministic width so geometry
// assertions do not depend on the bitmap face.
func fixedMeasure(string) float64 { return 30 }

func testStyle() Style {
	return Style{Measure: fixedMeasure}
}

func TestBuildDefaultsMissingMetric(t *testing.T) {
	size := Size{Width: 300, Height: 100}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		m := Build(v, size, testStyle(), Unset())
		if m.Value != DefaultMetric {
			t.Errorf("Build(%v): value = %v, want %v", v, m.Value, float64(DefaultMetric))
		}
	}

	// NaN must be treated identically to an explicit 100.
	ref := Build(100, size, testStyle(), Unset())
	got := Build(math.NaN(), size, testStyle(), Unset())
	if got.YFinal != ref.YFinal || got.Label != ref.Label {
		t.Errorf("NaN metric: yFinal=%v label=%q, want yFinal=%v label=%q",
			got.YFinal, got.Label, ref.YFinal, ref.Label)
	}
}

func TestBuildClampsMetric(t *testing.T) {
	size := Size{Width: 300, Height: 100}
	tests := []struct {
		in   float64
		want float64
	}{
		{-50, 0},
		{0, 0},
		{250, 250},
		{1000, 1000},
		{5000, 1000},
	}
	for _, tt := range tests {
		m := Build(tt.in, size, testStyle(), Unset())
		if m.Value != tt.want {
			t.Errorf("Build(%v): value = %v, want %v", tt.in, m.Value, tt.want)
		}
	}
}

func TestBuildVerticalMapping(t *testing.T) {
	// metric=250 non-compact: norm=0.25, yFinal = padTop + 0.75*drawable.
	size := Size{Width: 300, Height: 100}
	m := Build(250, size, testStyle(), Unset())

	drawable := math.Max(1, float64(size.Height)-m.PadTop-m.PadBottom)
	want := m.PadTop + 0.75*drawable
	if math.Abs(m.YFinal-want) > 1e-9 {
		t.Errorf("yFinal = %v, want %v", m.YFinal, want)
	}
	if m.StartY != m.PadTop+drawable {
		t.Errorf("startY = %v, want baseline %v", m.StartY, m.PadTop+drawable)
	}
}

func TestBuildYFinalMonotonic(t *testing.T) {
	size := Size{Width: 300, Height: 100}
	prev := math.Inf(1)
	for _, p := range []float64{0, 100, 250, 500, 900, 1000} {
		m := Build(p, size, testStyle(), Unset())
		if m.YFinal > prev {
			t.Errorf("yFinal not monotonic: metric %v gives %v, previous %v", p, m.YFinal, prev)
		}
		prev = m.YFinal
	}

	lo := Build(100, size, testStyle(), Unset())
	hi := Build(900, size, testStyle(), Unset())
	if lo.YFinal <= hi.YFinal {
		t.Errorf("metric 100 should sit lower on screen than 900: %v vs %v", lo.YFinal, hi.YFinal)
	}
}

func TestBuildDurationClamp(t *testing.T) {
	size := Size{Width: 300, Height: 100}
	tests := []struct {
		in   float64
		want time.Duration
	}{
		{50, 200 * time.Millisecond},
		{10000, 4 * time.Second},
		{1500, 1500 * time.Millisecond},
	}
	for _, tt := range tests {
		ov := Unset()
		ov.DurationMs = tt.in
		m := Build(500, size, testStyle(), ov)
		if m.Duration != tt.want {
			t.Errorf("durationMs=%v: duration = %v, want %v", tt.in, m.Duration, tt.want)
		}
	}

	m := Build(500, size, testStyle(), Unset())
	if m.Duration != DurationDefault {
		t.Errorf("default duration = %v, want %v", m.Duration, DurationDefault)
	}
}

func TestBuildColorFallback(t *testing.T) {
	size := Size{Width: 300, Height: 100}
	for _, bad := range []string{"", "not-a-color", "#10b981", "rgba()"} {
		st := testStyle()
		st.Color = bad
		m := Build(500, size, st, Unset())
		if m.Stroke != (RGBA{R: 16, G: 185, B: 129, A: 1}) {
			t.Errorf("color %q: stroke = %+v, want default emerald", bad, m.Stroke)
		}
	}
}

func TestBuildGlowTint(t *testing.T) {
	size := Size{Width: 300, Height: 100}

	st := testStyle()
	st.Color = "rgba(239,68,68,0.9)"
	red := Build(500, size, st, Unset())
	if red.Glow.R < red.Glow.G {
		t.Errorf("red stroke should select red-tinted glow, got %+v", red.Glow)
	}

	st.Color = "rgba(16,185,129,1)"
	green := Build(500, size, st, Unset())
	if green.Glow.G < green.Glow.R {
		t.Errorf("non-red stroke should select green-tinted glow, got %+v", green.Glow)
	}

	// Unparseable color also gets the non-red glow.
	st.Color = "bogus"
	fallback := Build(500, size, st, Unset())
	if fallback.Glow != green.Glow {
		t.Errorf("fallback glow = %+v, want green variant %+v", fallback.Glow, green.Glow)
	}
}

func TestBuildHorizontalGeometry(t *testing.T) {
	size := Size{Width: 300, Height: 100}
	m := Build(500, size, testStyle(), Unset())

	if m.EndX < m.StartX {
		t.Fatalf("endX %v < startX %v", m.EndX, m.StartX)
	}
	// Right gutter must hold the measured label plus horizontal padding.
	gutter := float64(m.Width) - m.EndX
	if gutter < m.LabelWidth {
		t.Errorf("gutter %v clips label of width %v", gutter, m.LabelWidth)
	}

	// A tiny surface floors endX at startX instead of going negative.
	tiny := Build(500, Size{Width: 10, Height: 10}, testStyle(), Unset())
	if tiny.EndX != tiny.StartX {
		t.Errorf("tiny surface: endX = %v, want startX %v", tiny.EndX, tiny.StartX)
	}
}

func TestBuildResizeWidthOnly(t *testing.T) {
	// Growing width 300 -> 600 extends endX by the added width and leaves
	// startX and yFinal untouched.
	a := Build(400, Size{Width: 300, Height: 100}, testStyle(), Unset())
	b := Build(400, Size{Width: 600, Height: 100}, testStyle(), Unset())

	if a.StartX != b.StartX {
		t.Errorf("startX changed on width resize: %v -> %v", a.StartX, b.StartX)
	}
	if got, want := b.EndX-a.EndX, 300.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("endX grew by %v, want %v", got, want)
	}
	if a.YFinal != b.YFinal {
		t.Errorf("yFinal changed on width-only resize: %v -> %v", a.YFinal, b.YFinal)
	}
}

func TestBuildZeroSizeFloored(t *testing.T) {
	m := Build(500, Size{Width: 0, Height: -3}, testStyle(), Unset())
	if m.Width < 1 || m.Height < 1 {
		t.Errorf("degenerate size not floored: %dx%d", m.Width, m.Height)
	}
	if math.IsNaN(m.YFinal) || math.IsInf(m.YFinal, 0) {
		t.Errorf("yFinal not finite for degenerate size: %v", m.YFinal)
	}
}

func TestBuildCompactDefaults(t *testing.T) {
	size := Size{Width: 300, Height: 100}
	std := Build(500, size, testStyle(), Unset())
	cst := testStyle()
	cst.Compact = true
	cmp := Build(500, size, cst, Unset())

	if cmp.LineWidth >= std.LineWidth {
		t.Errorf("compact line width %v not smaller than %v", cmp.LineWidth, std.LineWidth)
	}
	if cmp.GlowRadius >= std.GlowRadius {
		t.Errorf("compact glow radius %v not smaller than %v", cmp.GlowRadius, std.GlowRadius)
	}
	if cmp.PadTop >= std.PadTop || cmp.PadBottom >= std.PadBottom {
		t.Errorf("compact paddings not tighter: %v/%v vs %v/%v",
			cmp.PadTop, cmp.PadBottom, std.PadTop, std.PadBottom)
	}
	if cmp.StartX >= std.StartX {
		t.Errorf("compact axis reserve %v not smaller than %v", cmp.StartX, std.StartX)
	}
}

func TestBuildOverridesWin(t *testing.T) {
	size := Size{Width: 300, Height: 100}
	ov := Unset()
	ov.LineWidth = 5
	ov.GlowRadius = 11
	ov.AreaAlpha = 0.5
	m := Build(500, size, testStyle(), ov)

	if m.LineWidth != 5 {
		t.Errorf("lineWidth = %v, want override 5", m.LineWidth)
	}
	if m.GlowRadius != 11 {
		t.Errorf("glowRadius = %v, want override 11", m.GlowRadius)
	}
	if m.AreaAlpha != 0.5 || m.FillTop.A != 0.5 {
		t.Errorf("areaAlpha = %v (fillTop %v), want 0.5", m.AreaAlpha, m.FillTop.A)
	}
	if m.FillBottom.A != 0 {
		t.Errorf("fill gradient bottom alpha = %v, want 0", m.FillBottom.A)
	}
}

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{250, "+250%"},
		{0, "+0%"},
		{1000, "+1000%"},
		{math.NaN(), "+100%"},
		{249.6, "+250%"},
	}
	for _, tt := range tests {
		if got := FormatMetric(tt.in); got != tt.want {
			t.Errorf("FormatMetric(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseRGBA(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"rgba(239,68,68,0.9)", RGBA{R: 239, G: 68, B: 68, A: 1}},
		{"rgb(10,20,30)", RGBA{R: 10, G: 20, B: 30, A: 1}},
		{"rgba( 1 , 2 , 3 , 1 )", RGBA{R: 1, G: 2, B: 3, A: 1}},
		{"rgba(999,68,68,1)", RGBA{R: 255, G: 68, B: 68, A: 1}},
		{"#10b981", defaultStroke},
		{"", defaultStroke},
	}
	for _, tt := range tests {
		if got := ParseRGBA(tt.in); got != tt.want {
			t.Errorf("ParseRGBA(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestMeasureLabelPositive(t *testing.T) {
	w := MeasureLabel("+100%")
	if w <= 0 {
		t.Errorf("MeasureLabel returned %v, want positive width", w)
	}
	if MeasureLabel("+1000%") <= w {
		t.Errorf("longer label should measure wider")
	}
}
