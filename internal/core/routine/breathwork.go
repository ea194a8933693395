package routine

import (
	"fmt"

	"innervation/internal/core/breath"
	"innervation/internal/core/tracker"
)

// BreathworkSection is the section breathing practice is recorded under.
const BreathworkSection = "Breathwork"

// BreathSession records breathwork into the practice log. Durations are
// nominal: a nostril cycle counts its configured phases and a hyperventilation
// round counts its paced breaths, hold and release but not the retention.
type BreathSession struct {
	tracker *tracker.Tracker
	cue     Cue
	routine string
}

// StartNostrilSession opens a session for a nostril pattern.
func StartNostrilSession(log *tracker.Tracker, pattern breath.Pattern, cue Cue) *BreathSession {
	log.StartSession(BreathworkSection, string(pattern))
	return &BreathSession{tracker: log, cue: cue, routine: string(pattern)}
}

// StartHyperSession opens a session for hyperventilation rounds.
func StartHyperSession(log *tracker.Tracker, cue Cue) *BreathSession {
	log.StartSession(BreathworkSection, "hyperventilation")
	return &BreathSession{tracker: log, cue: cue, routine: "hyperventilation"}
}

// RecordCycles logs completed nostril cycles.
func (session *BreathSession) RecordCycles(pattern breath.Pattern, cycles, cycleSeconds int) {
	label := fmt.Sprintf("%s cycle", pattern.Title())
	for i := 0; i < cycles; i++ {
		session.tracker.RecordMovement(label, cycleSeconds)
	}
	if cycles > 0 {
		session.playCue()
	}
}

// HandleTransitions plays the cue for each stage change and logs every
// round that finishes its release.
func (session *BreathSession) HandleTransitions(transitions []breath.Transition, config breath.HyperConfig) {
	for _, transition := range transitions {
		if transition.From == breath.StageRelease {
			session.tracker.RecordMovement("Hyperventilation round", config.RoundSeconds())
		}
		session.playCue()
	}
}

// Finish closes the session and returns its total.
func (session *BreathSession) Finish() Summary {
	session.tracker.StopSession()
	return Summary{
		Section: BreathworkSection,
		Routine: session.routine,
		Seconds: session.tracker.LastSessionDuration(),
	}
}

func (session *BreathSession) playCue() {
	if session.cue != nil {
		session.cue.Play()
	}
}
