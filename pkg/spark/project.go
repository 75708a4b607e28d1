package spark

import "math"

// Projection is the result of mapping a pointer position onto the chart's
// final (non-animated) baseline-to-target line. It feeds the hover tooltip
// and never influences painting or animation.
type Projection struct {
	// X is the pointer position clamped to [StartX, EndX].
	X float64

	// Y is the interpolated height along the final line at X.
	Y float64

	// Ratio is the horizontal fraction in [0,1]. A degenerate chart
	// (EndX == StartX) projects to ratio 0.
	Ratio float64

	// Value is the interpolated metric (base value scaled by Ratio),
	// clamped to the metric range.
	Value float64

	// Display is Value rounded for tooltip text.
	Display int
}

// Project maps a pointer's horizontal position to an interpolated metric
// value using the Model's final geometry. The projection runs along the
// finished line, not the currently animated tip, so hovering mid-animation
// reads the same as hovering after completion.
func Project(m Model, pointerX float64) Projection {
	x := pointerX
	if math.IsNaN(x) {
		x = m.StartX
	}
	if x < m.StartX {
		x = m.StartX
	}
	if x > m.EndX {
		x = m.EndX
	}

	ratio := 0.0
	if m.EndX > m.StartX {
		ratio = (x - m.StartX) / (m.EndX - m.StartX)
	}

	value := m.Value * ratio
	if value < 0 {
		value = 0
	}
	if value > MetricMax {
		value = MetricMax
	}

	return Projection{
		X:       x,
		Y:       m.StartY + (m.YFinal-m.StartY)*ratio,
		Ratio:   ratio,
		Value:   value,
		Display: int(math.Round(value)),
	}
}
