// Package app binds the sparkline engine to the Bubbletea runtime: window
// resizes drive model rebuilds, terminal focus acts as the visibility gate,
// frame ticks advance the animation driver, and mouse motion feeds the
// hover projector. The engine itself (pkg/spark, pkg/raster) stays free of
// any Bubbletea types.
package app

import "time"

// FrameMsg is one animation frame tick. Gen tags the frame chain with the
// model build generation that scheduled it; the update loop drops frames
// from a superseded generation so a stale model is never painted against a
// new surface.
type FrameMsg struct {
	Gen  int
	Time time.Time
}

// MetricMsg delivers a live metric sample from a collector goroutine.
type MetricMsg struct {
	Source string
	Value  float64
	Err    error
}

// sampleMsg asks the update loop to start the next collector sample.
type sampleMsg struct{}
