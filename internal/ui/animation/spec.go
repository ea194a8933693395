package animation

import "time"

// Sweep moves a level linearly from From to To over Duration.
type Sweep struct {
	From     float64
	To       float64
	Duration time.Duration
}

// At returns the level after elapsed has passed.
func (sweep Sweep) At(elapsed time.Duration) float64 {
	if sweep.Duration <= 0 || elapsed >= sweep.Duration {
		return sweep.To
	}
	if elapsed <= 0 {
		return sweep.From
	}
	fraction := float64(elapsed) / float64(sweep.Duration)
	return sweep.From + (sweep.To-sweep.From)*fraction
}

// Resume returns the sweep that continues from level with remaining time left.
func (sweep Sweep) Resume(level float64, remaining time.Duration) Sweep {
	return Sweep{From: level, To: sweep.To, Duration: remaining}
}
