package breath

import (
	"math"
	"time"
)

// Hyperventilation limits and defaults.
const (
	DefaultHyperRounds = 3
	MinHyperRounds     = 2
	MaxHyperRounds     = 12
	DefaultBreaths     = 20
	MinBreaths         = 1
	MaxBreaths         = 200

	InhaleHold = 20 * time.Second
	Release    = 5 * time.Second
)

// Speed sets the length of each half breath.
type Speed string

const (
	SpeedSlow     Speed = "slow"
	SpeedStandard Speed = "standard"
	SpeedFast     Speed = "fast"
)

// ParseSpeed accepts slow, standard or fast.
func ParseSpeed(name string) (Speed, bool) {
	switch Speed(name) {
	case SpeedSlow, SpeedStandard, SpeedFast:
		return Speed(name), true
	default:
		return "", false
	}
}

// HalfBreath is the duration of one inhale or one exhale.
func (speed Speed) HalfBreath() time.Duration {
	switch speed {
	case SpeedSlow:
		return 2200 * time.Millisecond
	case SpeedFast:
		return 700 * time.Millisecond
	default:
		return 1200 * time.Millisecond
	}
}

// HyperConfig configures a hyperventilation session.
type HyperConfig struct {
	Speed   Speed
	Rounds  int
	Breaths int
}

// Normalize clamps rounds to [2, 12] and replaces an out-of-range breath
// count or unknown speed with the default.
func (config HyperConfig) Normalize() HyperConfig {
	if _, ok := ParseSpeed(string(config.Speed)); !ok {
		config.Speed = SpeedStandard
	}
	if config.Rounds < MinHyperRounds {
		config.Rounds = MinHyperRounds
	}
	if config.Rounds > MaxHyperRounds {
		config.Rounds = MaxHyperRounds
	}
	if config.Breaths < MinBreaths || config.Breaths > MaxBreaths {
		config.Breaths = DefaultBreaths
	}
	return config
}

// RoundSeconds is the nominal length of one round excluding retention.
func (config HyperConfig) RoundSeconds() int {
	breathing := config.Speed.HalfBreath() * time.Duration(2*config.Breaths)
	total := breathing + InhaleHold + Release
	return int(total.Round(time.Second) / time.Second)
}

// HyperStage is a step in a hyperventilation round.
type HyperStage string

const (
	StageIdle       HyperStage = "idle"
	StageBreathing  HyperStage = "breathing"
	StageRetention  HyperStage = "retention"
	StageInhaleHold HyperStage = "inhale_hold"
	StageRelease    HyperStage = "release"
	StageComplete   HyperStage = "complete"
)

// Transition reports a stage change.
type Transition struct {
	From  HyperStage
	To    HyperStage
	Round int
}

// HyperState is a snapshot for rendering.
type HyperState struct {
	Stage      HyperStage
	Round      int
	Rounds     int
	Breath     int
	Breaths    int
	Direction  Direction
	Elapsed    time.Duration
	Remaining  time.Duration
	Retentions []time.Duration
}

// Level is the bar level. It only moves while breathing.
func (state HyperState) Level() float64 {
	if state.Stage != StageBreathing {
		return 0
	}
	total := state.Elapsed + state.Remaining
	if total <= 0 {
		return 0
	}
	progress := math.Min(float64(state.Elapsed)/float64(total), 1)
	if state.Direction == DirectionIn {
		return progress
	}
	return 1 - progress
}

// Hyper runs rounds of paced breathing, an open-ended empty-lung retention,
// an inhale hold and a release. It is driven by Advance and EndRetention and
// is not safe for concurrent use.
type Hyper struct {
	config     HyperConfig
	stage      HyperStage
	round      int
	breath     int
	direction  Direction
	elapsed    time.Duration
	remaining  time.Duration
	retentions []time.Duration
}

// NewHyper creates an idle session.
func NewHyper(config HyperConfig) *Hyper {
	return &Hyper{config: config.Normalize(), stage: StageIdle, direction: DirectionIn}
}

// Config returns the normalized configuration.
func (session *Hyper) Config() HyperConfig {
	return session.config
}

// Start begins round one. It is a no-op unless idle or complete.
func (session *Hyper) Start() []Transition {
	if session.stage != StageIdle && session.stage != StageComplete {
		return nil
	}
	session.retentions = nil
	session.round = 1
	from := session.stage
	session.beginBreathing()
	return []Transition{{From: from, To: StageBreathing, Round: 1}}
}

// Stop returns to idle and clears recorded retentions.
func (session *Hyper) Stop() {
	session.stage = StageIdle
	session.round = 0
	session.breath = 0
	session.direction = DirectionIn
	session.elapsed = 0
	session.remaining = 0
	session.retentions = nil
}

func (session *Hyper) beginBreathing() {
	session.stage = StageBreathing
	session.breath = 0
	session.direction = DirectionIn
	session.elapsed = 0
	session.remaining = session.config.Speed.HalfBreath()
}

// EndRetention closes the retention phase, records its length and starts
// the inhale hold.
func (session *Hyper) EndRetention() []Transition {
	if session.stage != StageRetention {
		return nil
	}
	session.retentions = append(session.retentions, session.elapsed)
	session.stage = StageInhaleHold
	session.elapsed = 0
	session.remaining = InhaleHold
	return []Transition{{From: StageRetention, To: StageInhaleHold, Round: session.round}}
}

// Advance moves time forward and returns the stage changes it caused.
func (session *Hyper) Advance(delta time.Duration) []Transition {
	var transitions []Transition
	for delta > 0 {
		switch session.stage {
		case StageRetention:
			session.elapsed += delta
			return transitions
		case StageBreathing, StageInhaleHold, StageRelease:
			if delta < session.remaining {
				session.elapsed += delta
				session.remaining -= delta
				return transitions
			}
			delta -= session.remaining
			if next := session.finishTimedStage(); next != nil {
				transitions = append(transitions, *next)
			}
		default:
			return transitions
		}
	}
	return transitions
}

func (session *Hyper) finishTimedStage() *Transition {
	switch session.stage {
	case StageBreathing:
		if session.direction == DirectionIn {
			session.direction = DirectionOut
			session.elapsed = 0
			session.remaining = session.config.Speed.HalfBreath()
			return nil
		}
		session.breath++
		if session.breath < session.config.Breaths {
			session.direction = DirectionIn
			session.elapsed = 0
			session.remaining = session.config.Speed.HalfBreath()
			return nil
		}
		session.stage = StageRetention
		session.elapsed = 0
		session.remaining = 0
		return &Transition{From: StageBreathing, To: StageRetention, Round: session.round}
	case StageInhaleHold:
		session.stage = StageRelease
		session.elapsed = 0
		session.remaining = Release
		return &Transition{From: StageInhaleHold, To: StageRelease, Round: session.round}
	case StageRelease:
		if session.round < session.config.Rounds {
			session.round++
			session.beginBreathing()
			return &Transition{From: StageRelease, To: StageBreathing, Round: session.round}
		}
		session.stage = StageComplete
		session.elapsed = 0
		session.remaining = 0
		return &Transition{From: StageRelease, To: StageComplete, Round: session.round}
	}
	return nil
}

// State returns a snapshot.
func (session *Hyper) State() HyperState {
	return HyperState{
		Stage:      session.stage,
		Round:      session.round,
		Rounds:     session.config.Rounds,
		Breath:     session.breath,
		Breaths:    session.config.Breaths,
		Direction:  session.direction,
		Elapsed:    session.elapsed,
		Remaining:  session.remaining,
		Retentions: append([]time.Duration(nil), session.retentions...),
	}
}
