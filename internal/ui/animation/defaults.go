package animation

import "time"

// DefaultConfig returns a frame rate smooth enough for a progress bar.
func DefaultConfig() Config {
	return Config{
		FrameInterval: 50 * time.Millisecond,
	}
}
