package spark

import (
	"math"
	"time"
)

// Phase is the animation driver's lifecycle state.
type Phase int

const (
	// PhaseIdle means no animation has been started for the current Model.
	PhaseIdle Phase = iota

	// PhaseRunning means ticks are advancing the progress fraction.
	PhaseRunning

	// PhaseSuspended means visibility was lost mid-run. The last painted
	// frame is retained; re-entry restarts from zero, never resumes.
	PhaseSuspended

	// PhaseCompleted means the final frame has been painted.
	PhaseCompleted
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseSuspended:
		return "suspended"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// Driver advances an eased [0,1] progress fraction against wall-clock
// timestamps supplied by the host scheduler. It holds no timer of its own;
// the host calls Tick once per scheduled frame and decides, from the
// returned done flag and its own visibility state, whether to schedule
// another.
//
// A Driver is bound to a single Model's duration. Building a new Model
// restarts the driver from zero via Start, which satisfies the rule that a
// rebuild re-enters Running from any phase.
type Driver struct {
	phase    Phase
	start    time.Time
	duration time.Duration
	eased    float64
}

// NewDriver returns an idle driver.
func NewDriver() *Driver {
	return &Driver{phase: PhaseIdle}
}

// Start (re)enters Running, capturing now as the animation origin. Progress
// always restarts from zero regardless of the previous phase.
func (d *Driver) Start(now time.Time, duration time.Duration) {
	if duration <= 0 {
		duration = DurationMin
	}
	d.phase = PhaseRunning
	d.start = now
	d.duration = duration
	d.eased = 0
}

// Tick computes the eased progress at now. done is true once the raw
// time fraction has reached 1, at which point the driver is Completed and
// the host stops scheduling frames. Ticks outside Running return the last
// eased value with done=true so stray callbacks are harmless.
func (d *Driver) Tick(now time.Time) (eased float64, done bool) {
	if d.phase != PhaseRunning {
		return d.eased, true
	}
	raw := clamp01(float64(now.Sub(d.start)) / float64(d.duration))
	d.eased = EaseInOut(raw)
	if raw >= 1 {
		d.phase = PhaseCompleted
		return d.eased, true
	}
	return d.eased, false
}

// Suspend freezes a running animation without clearing the surface. It is a
// no-op in any other phase so visibility-loss events are safe to deliver
// redundantly.
func (d *Driver) Suspend() {
	if d.phase == PhaseRunning {
		d.phase = PhaseSuspended
	}
}

// Phase returns the current lifecycle phase.
func (d *Driver) Phase() Phase {
	return d.phase
}

// Running reports whether frame ticks should be scheduled.
func (d *Driver) Running() bool {
	return d.phase == PhaseRunning
}

// Progress returns the most recently computed eased fraction.
func (d *Driver) Progress() float64 {
	return d.eased
}

// EaseInOut applies cosine ease-in-out to a raw [0,1] time fraction. The
// mapping is exact at the endpoints and the midpoint: 0->0, 0.5->0.5, 1->1.
func EaseInOut(raw float64) float64 {
	return 0.5 * (1 - math.Cos(math.Pi*clamp01(raw)))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
