package main

import (
	"io"
	"sync/atomic"
)

// bellCue rings the terminal bell at phase boundaries.
type bellCue struct {
	out     io.Writer
	enabled atomic.Bool
}

func newBellCue(out io.Writer, enabled bool) *bellCue {
	cue := &bellCue{out: out}
	cue.enabled.Store(enabled)
	return cue
}

func (cue *bellCue) SetEnabled(enabled bool) {
	cue.enabled.Store(enabled)
}

func (cue *bellCue) Play() {
	if cue.enabled.Load() {
		_, _ = io.WriteString(cue.out, "\a")
	}
}
