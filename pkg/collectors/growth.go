package collectors

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Growth samples a system utilisation percentage via gopsutil and scales it
// into the engine's 0-1000 metric range (percent x 10), so a machine at 42%
// memory use charts as +420%.
type Growth struct {
	source   string
	interval time.Duration
}

// NewGrowth returns a Growth collector for the given source ("mem" or
// "cpu"). Unknown sources fall back to memory.
func NewGrowth(source string, interval time.Duration) *Growth {
	if source != "cpu" {
		source = "mem"
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Growth{source: source, interval: interval}
}

// Name implements Collector.
func (g *Growth) Name() string { return g.source }

// Interval implements Collector.
func (g *Growth) Interval() time.Duration { return g.interval }

// Collect implements Collector.
func (g *Growth) Collect(ctx context.Context) (float64, error) {
	switch g.source {
	case "cpu":
		// Non-blocking sample: percentage since the previous call.
		pcts, err := cpu.PercentWithContext(ctx, 0, false)
		if err != nil {
			return 0, fmt.Errorf("cpu sample: %w", err)
		}
		if len(pcts) == 0 {
			return 0, fmt.Errorf("cpu sample: no data")
		}
		return scale(pcts[0]), nil
	default:
		vm, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			return 0, fmt.Errorf("mem sample: %w", err)
		}
		return scale(vm.UsedPercent), nil
	}
}

// scale maps a 0-100 percentage into the 0-1000 metric range.
func scale(pct float64) float64 {
	v := pct * 10
	if v < 0 {
		return 0
	}
	if v > 1000 {
		return 1000
	}
	return v
}
