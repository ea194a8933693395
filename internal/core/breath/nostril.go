package breath

import (
	"math"
	"time"
)

// DefaultPhaseSeconds is the nostril phase length used when none is given.
const DefaultPhaseSeconds = 4

// Pattern selects which nostrils a cycle uses.
type Pattern string

const (
	PatternAlternate Pattern = "alternate"
	PatternRight     Pattern = "right"
	PatternLeft      Pattern = "left"
)

// Patterns lists the nostril patterns in menu order.
var Patterns = []Pattern{PatternRight, PatternLeft, PatternAlternate}

// Side is a nostril.
type Side string

const (
	SideLeft  Side = "Left"
	SideRight Side = "Right"
)

// Direction is inhale or exhale.
type Direction string

const (
	DirectionIn  Direction = "In"
	DirectionOut Direction = "Out"
)

// NostrilPhase is one inhale or exhale through one side.
type NostrilPhase struct {
	Side      Side
	Direction Direction
}

// Inhale reports whether the phase fills the lungs.
func (phase NostrilPhase) Inhale() bool {
	return phase.Direction == DirectionIn
}

var sequences = map[Pattern][]NostrilPhase{
	PatternAlternate: {
		{SideLeft, DirectionIn},
		{SideRight, DirectionOut},
		{SideRight, DirectionIn},
		{SideLeft, DirectionOut},
	},
	PatternRight: {
		{SideRight, DirectionIn},
		{SideRight, DirectionOut},
	},
	PatternLeft: {
		{SideLeft, DirectionIn},
		{SideLeft, DirectionOut},
	},
}

// ParsePattern accepts pattern names and their solar/lunar aliases.
func ParsePattern(name string) (Pattern, bool) {
	switch name {
	case "alternate", "alt":
		return PatternAlternate, true
	case "right", "solar":
		return PatternRight, true
	case "left", "lunar":
		return PatternLeft, true
	default:
		return "", false
	}
}

// Sequence returns the phases of one cycle.
func (pattern Pattern) Sequence() []NostrilPhase {
	return append([]NostrilPhase(nil), sequences[pattern]...)
}

// Label is the short pattern name shown in phase titles.
func (pattern Pattern) Label() string {
	switch pattern {
	case PatternRight:
		return "Right-only"
	case PatternLeft:
		return "Left-only"
	default:
		return "Alternate"
	}
}

// Title is the menu name.
func (pattern Pattern) Title() string {
	switch pattern {
	case PatternRight:
		return "Solar"
	case PatternLeft:
		return "Lunar"
	default:
		return "Alternate"
	}
}

// CycleDefinition describes one cycle.
func (pattern Pattern) CycleDefinition() string {
	switch pattern {
	case PatternRight:
		return "1 cycle = IN Right → OUT Right"
	case PatternLeft:
		return "1 cycle = IN Left → OUT Left"
	default:
		return "1 cycle = IN L → OUT R → IN R → OUT L"
	}
}

// NostrilState is a snapshot for rendering.
type NostrilState struct {
	Pattern    Pattern
	Phase      NostrilPhase
	PhaseIndex int
	Elapsed    time.Duration
	PhaseTime  time.Duration
	Cycles     int
	Running    bool
}

// Level is the bar level: inhale fills, exhale drains.
func (state NostrilState) Level() float64 {
	if !state.Running || state.PhaseTime <= 0 {
		return 0
	}
	progress := math.Min(float64(state.Elapsed)/float64(state.PhaseTime), 1)
	if state.Phase.Inhale() {
		return progress
	}
	return 1 - progress
}

// Nostril runs nostril breathing cycles until stopped. It is driven by
// Advance and is not safe for concurrent use.
type Nostril struct {
	pattern    Pattern
	sequence   []NostrilPhase
	phaseTime  time.Duration
	phaseIndex int
	elapsed    time.Duration
	cycles     int
	running    bool
}

// NewNostril creates an idle session. A non-positive phase length uses
// DefaultPhaseSeconds; an unknown pattern uses alternate.
func NewNostril(pattern Pattern, phase time.Duration) *Nostril {
	if _, ok := sequences[pattern]; !ok {
		pattern = PatternAlternate
	}
	if phase <= 0 {
		phase = DefaultPhaseSeconds * time.Second
	}
	return &Nostril{
		pattern:   pattern,
		sequence:  sequences[pattern],
		phaseTime: phase,
	}
}

// CycleSeconds is the nominal length of one cycle, rounded to whole seconds.
func (session *Nostril) CycleSeconds() int {
	total := session.phaseTime * time.Duration(len(session.sequence))
	return int(total.Round(time.Second) / time.Second)
}

// Start begins from the first phase. It is a no-op while running.
func (session *Nostril) Start() {
	if session.running {
		return
	}
	session.reset()
	session.running = true
}

// Stop resets the session.
func (session *Nostril) Stop() {
	session.reset()
}

func (session *Nostril) reset() {
	session.running = false
	session.phaseIndex = 0
	session.elapsed = 0
	session.cycles = 0
}

// Advance moves time forward and returns the number of cycles completed.
func (session *Nostril) Advance(delta time.Duration) int {
	if !session.running || delta <= 0 {
		return 0
	}

	completed := 0
	session.elapsed += delta
	for session.elapsed >= session.phaseTime {
		session.elapsed -= session.phaseTime
		session.phaseIndex++
		if session.phaseIndex >= len(session.sequence) {
			session.phaseIndex = 0
			session.cycles++
			completed++
		}
	}
	return completed
}

// State returns a snapshot.
func (session *Nostril) State() NostrilState {
	return NostrilState{
		Pattern:    session.pattern,
		Phase:      session.sequence[session.phaseIndex],
		PhaseIndex: session.phaseIndex,
		Elapsed:    session.elapsed,
		PhaseTime:  session.phaseTime,
		Cycles:     session.cycles,
		Running:    session.running,
	}
}
