package player

import (
	"fmt"
	"time"

	"innervation/internal/core/sequencer"
	"innervation/internal/ui/animation"
)

// StepText renders "Step i of n".
func StepText(state sequencer.State) string {
	if state.StepCount == 0 {
		return ""
	}
	return fmt.Sprintf("Step %d of %d", state.StepIndex+1, state.StepCount)
}

// RoundText renders "Round r of R".
func RoundText(state sequencer.State) string {
	if state.Rounds == 0 {
		return ""
	}
	return fmt.Sprintf("Round %d of %d", max(state.Round, 1), state.Rounds)
}

// PhaseText renders the phase with its countdown.
func PhaseText(state sequencer.State) string {
	switch state.Phase {
	case sequencer.PhaseMove:
		return fmt.Sprintf("Move • %ds", state.SecondsRemaining)
	case sequencer.PhaseRest:
		return fmt.Sprintf("Rest • %ds", state.SecondsRemaining)
	case sequencer.PhaseComplete:
		return "Complete"
	default:
		return "Ready"
	}
}

// PlayText is the label of the play button for state.
func PlayText(state sequencer.State) string {
	switch {
	case state.Running:
		return "Pause"
	case state.Phase == sequencer.PhaseMove || state.Phase == sequencer.PhaseRest:
		return "Resume"
	default:
		return "Play"
	}
}

// BarAction tells the renderer what to do with the progress bar.
type BarAction int

const (
	BarKeep BarAction = iota
	BarPlay
	BarHold
)

// SweepFor maps a sequencer event to a bar animation. A held bar shows
// sweep.To. Ticks keep whatever animation is running.
func SweepFor(event sequencer.Event) (BarAction, animation.Sweep) {
	end := sequencer.EndLevel(event.Bar)
	switch event.Type {
	case sequencer.EventPhaseStart:
		if event.Phase == sequencer.PhaseMove && event.Duration > 0 {
			return BarPlay, animation.Sweep{
				From:     sequencer.StartLevel(event.Bar),
				To:       end,
				Duration: seconds(event.Duration),
			}
		}
		return BarHold, animation.Sweep{To: end}
	case sequencer.EventResumed:
		if event.Phase == sequencer.PhaseMove {
			return BarPlay, animation.Sweep{
				From:     sequencer.Level(event.Bar, event.Remaining, event.Duration),
				To:       end,
				Duration: seconds(event.Remaining),
			}
		}
		return BarHold, animation.Sweep{To: end}
	case sequencer.EventPaused:
		level := end
		if event.Phase == sequencer.PhaseMove {
			level = sequencer.Level(event.Bar, event.Remaining, event.Duration)
		}
		return BarHold, animation.Sweep{To: level}
	case sequencer.EventComplete:
		return BarHold, animation.Sweep{To: end}
	case sequencer.EventStopped:
		return BarHold, animation.Sweep{}
	default:
		return BarKeep, animation.Sweep{}
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
