package sequencer

import (
	"time"

	"innervation/internal/core/model"
)

// Phase represents the current Sequencer mode.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseMove     Phase = "move"
	PhaseRest     Phase = "rest"
	PhaseComplete Phase = "complete"
)

// EventType defines the type of Sequencer event.
type EventType string

const (
	EventPhaseStart    EventType = "phase_start"
	EventTick          EventType = "tick"
	EventPhaseComplete EventType = "phase_complete"
	EventComplete      EventType = "complete"
	EventPaused        EventType = "paused"
	EventResumed       EventType = "resumed"
	EventStopped       EventType = "stopped"
)

// Event represents a Sequencer update for observers.
type Event struct {
	Type      EventType
	Phase     Phase
	StepIndex int
	Round     int
	Step      model.Step
	Remaining int
	Duration  int
	MoveCount int
	Bar       BarDirection
	At        time.Time
}

// Callbacks are invoked synchronously, in emission order, outside the
// sequencer lock. A phase boundary is fully handled before the next tick.
type Callbacks struct {
	OnTick func(secondsRemaining int, phase Phase)
	// OnPhaseStart fires when a MOVE or REST phase begins.
	OnPhaseStart func(phase Phase, stepIndex int, step model.Step)
	// OnPhaseComplete fires before the step index advances, so step is the
	// step whose phase just finished.
	OnPhaseComplete func(finished Phase, stepIndex int, step model.Step)
	OnComplete      func()
	// OnStateChange fires on pause, resume and stop.
	OnStateChange func(event Event)
}

func (callbacks Callbacks) dispatch(event Event) {
	switch event.Type {
	case EventTick:
		if callbacks.OnTick != nil {
			callbacks.OnTick(event.Remaining, event.Phase)
		}
	case EventPhaseStart:
		if callbacks.OnPhaseStart != nil {
			callbacks.OnPhaseStart(event.Phase, event.StepIndex, event.Step)
		}
	case EventPhaseComplete:
		if callbacks.OnPhaseComplete != nil {
			callbacks.OnPhaseComplete(event.Phase, event.StepIndex, event.Step)
		}
	case EventComplete:
		if callbacks.OnComplete != nil {
			callbacks.OnComplete()
		}
	case EventPaused, EventResumed, EventStopped:
		if callbacks.OnStateChange != nil {
			callbacks.OnStateChange(event)
		}
	}
}
