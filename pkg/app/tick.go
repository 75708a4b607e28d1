package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/pulse-spark/pkg/collectors"
)

// frameInterval is the animation frame period (~60fps). The driver computes
// progress from wall-clock timestamps, so irregular tick delivery only
// affects smoothness, never duration.
const frameInterval = 16 * time.Millisecond

// collectTimeout bounds one collector sample.
const collectTimeout = 5 * time.Second

// FrameCmd schedules the next animation frame for the given build
// generation.
func FrameCmd(gen int) tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return FrameMsg{Gen: gen, Time: t}
	})
}

// CollectCmd runs one collector sample in a goroutine and delivers the
// result as a MetricMsg.
func CollectCmd(c collectors.Collector) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
		defer cancel()
		v, err := c.Collect(ctx)
		return MetricMsg{Source: c.Name(), Value: v, Err: err}
	}
}

// NextSampleCmd waits the collector's interval before requesting another
// sample.
func NextSampleCmd(c collectors.Collector) tea.Cmd {
	return tea.Tick(c.Interval(), func(time.Time) tea.Msg {
		return sampleMsg{}
	})
}
