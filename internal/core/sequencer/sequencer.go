package sequencer

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"innervation/internal/core/model"
)

// TickInterval is the countdown cadence.
const TickInterval = time.Second

// State is a snapshot of the Sequencer for rendering.
type State struct {
	Phase            Phase
	StepIndex        int
	Round            int
	Rounds           int
	StepCount        int
	SecondsRemaining int
	PhaseSeconds     int
	Running          bool
	MoveCount        int
	Bar              BarDirection
}

// BarLevel returns the progress bar level implied by the state.
// REST phases hold the level reached by the preceding movement.
func (state State) BarLevel() float64 {
	switch state.Phase {
	case PhaseMove:
		return Level(state.Bar, state.SecondsRemaining, state.PhaseSeconds)
	case PhaseRest, PhaseComplete:
		return EndLevel(state.Bar)
	default:
		return 0
	}
}

// BarAnimating reports whether the bar should be moving right now.
func (state State) BarAnimating() bool {
	return state.Running && state.Phase == PhaseMove
}

// Sequencer is a state machine that walks a step list through MOVE and REST
// phases for a number of rounds on a one-second countdown.
type Sequencer struct {
	mu        sync.Mutex
	clock     Clock
	logger    *zap.Logger
	steps     []model.Step
	config    model.SequenceConfig
	callbacks Callbacks
	events    []chan Event

	phase        Phase
	stepIndex    int
	round        int
	remaining    int
	phaseSeconds int
	running      bool
	moveCount    int
	bar          BarDirection

	cancelTick func()
	generation uint64
	pending    []Event
}

// New creates an idle Sequencer. A nil clock uses RealClock.
func New(clock Clock, logger *zap.Logger) *Sequencer {
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sequencer{
		clock:  clock,
		logger: logger,
		config: model.DefaultSequenceConfig(),
		phase:  PhaseIdle,
		round:  1,
	}
}

// SetCallbacks replaces the synchronous callbacks.
func (seq *Sequencer) SetCallbacks(callbacks Callbacks) {
	seq.mu.Lock()
	defer seq.mu.Unlock()
	seq.callbacks = callbacks
}

// Subscribe registers a new observer channel. Sends never block; a full
// channel drops the event.
func (seq *Sequencer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	seq.mu.Lock()
	seq.events = append(seq.events, ch)
	seq.mu.Unlock()
	return ch
}

// Close stops the sequencer and closes observer channels.
func (seq *Sequencer) Close() {
	seq.Stop()

	seq.mu.Lock()
	events := seq.events
	seq.events = nil
	seq.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Configure replaces the step list and timing. An empty step list is
// ignored and false is returned. Any run in progress is stopped first.
func (seq *Sequencer) Configure(steps []model.Step, config model.SequenceConfig) bool {
	if len(steps) == 0 {
		return false
	}

	seq.mu.Lock()
	wasActive := seq.phase != PhaseIdle
	seq.stopLocked()
	seq.steps = append([]model.Step(nil), steps...)
	seq.config = config.Normalize()
	if wasActive {
		seq.queueLocked(EventStopped)
	}
	seq.flush()
	return true
}

// UpdateConfig changes timing for phases that start after this call.
// The remaining time of the current phase is not touched.
func (seq *Sequencer) UpdateConfig(config model.SequenceConfig) {
	seq.mu.Lock()
	seq.config = config.Normalize()
	seq.mu.Unlock()
}

// Config returns the active timing.
func (seq *Sequencer) Config() model.SequenceConfig {
	seq.mu.Lock()
	defer seq.mu.Unlock()
	return seq.config
}

// Steps returns a copy of the configured steps.
func (seq *Sequencer) Steps() []model.Step {
	seq.mu.Lock()
	defer seq.mu.Unlock()
	return append([]model.Step(nil), seq.steps...)
}

// Start begins the routine from the first step. It is a no-op while running
// or when no steps are configured.
func (seq *Sequencer) Start() {
	seq.mu.Lock()
	if seq.running || len(seq.steps) == 0 {
		seq.mu.Unlock()
		return
	}
	seq.startLocked()
	seq.flush()
}

// Restart starts from scratch regardless of the current state.
func (seq *Sequencer) Restart() {
	seq.mu.Lock()
	if len(seq.steps) == 0 {
		seq.mu.Unlock()
		return
	}
	seq.stopLocked()
	seq.startLocked()
	seq.flush()
}

// Pause freezes the countdown without touching the remaining time.
func (seq *Sequencer) Pause() {
	seq.mu.Lock()
	if !seq.running {
		seq.mu.Unlock()
		return
	}
	seq.running = false
	seq.cancelTickLocked()
	seq.queueLocked(EventPaused)
	seq.flush()
}

// Resume continues the current phase from its remaining time.
func (seq *Sequencer) Resume() {
	seq.mu.Lock()
	if seq.running || (seq.phase != PhaseMove && seq.phase != PhaseRest) {
		seq.mu.Unlock()
		return
	}
	seq.running = true
	seq.startTickLocked()
	seq.queueLocked(EventResumed)
	seq.flush()
}

// Stop cancels the countdown and returns to idle.
func (seq *Sequencer) Stop() {
	seq.mu.Lock()
	if seq.phase == PhaseIdle && !seq.running {
		seq.mu.Unlock()
		return
	}
	seq.stopLocked()
	seq.queueLocked(EventStopped)
	seq.flush()
}

// State returns a snapshot of the current state.
func (seq *Sequencer) State() State {
	seq.mu.Lock()
	defer seq.mu.Unlock()
	return State{
		Phase:            seq.phase,
		StepIndex:        seq.stepIndex,
		Round:            seq.round,
		Rounds:           seq.config.Rounds,
		StepCount:        len(seq.steps),
		SecondsRemaining: seq.remaining,
		PhaseSeconds:     seq.phaseSeconds,
		Running:          seq.running,
		MoveCount:        seq.moveCount,
		Bar:              seq.bar,
	}
}

func (seq *Sequencer) startLocked() {
	seq.cancelTickLocked()
	seq.stepIndex = 0
	seq.round = 1
	seq.moveCount = 0
	seq.bar = BarNone
	seq.running = true
	seq.enterPhaseLocked(PhaseMove)
	if seq.running {
		seq.startTickLocked()
	}
}

func (seq *Sequencer) stopLocked() {
	seq.cancelTickLocked()
	seq.running = false
	seq.phase = PhaseIdle
	seq.stepIndex = 0
	seq.round = 1
	seq.remaining = 0
	seq.phaseSeconds = 0
	seq.moveCount = 0
	seq.bar = BarNone
}

// startTickLocked always cancels the previous ticker before creating a new one.
func (seq *Sequencer) startTickLocked() {
	seq.cancelTickLocked()
	generation := seq.generation
	seq.cancelTick = seq.clock.Every(TickInterval, func() {
		seq.tick(generation)
	})
}

// cancelTickLocked also invalidates ticks already in flight from the old ticker.
func (seq *Sequencer) cancelTickLocked() {
	seq.generation++
	if seq.cancelTick != nil {
		seq.cancelTick()
		seq.cancelTick = nil
	}
}

func (seq *Sequencer) tick(generation uint64) {
	seq.mu.Lock()
	if generation != seq.generation || !seq.running {
		seq.mu.Unlock()
		return
	}

	seq.remaining--
	if seq.remaining > 0 {
		seq.queueLocked(EventTick)
		seq.flush()
		return
	}

	seq.remaining = 0
	if next, done := seq.completePhaseLocked(); !done {
		seq.enterPhaseLocked(next)
	}
	seq.flush()
}

// enterPhaseLocked starts phase using the config as it is now. Phases with
// no duration complete immediately without a tick.
func (seq *Sequencer) enterPhaseLocked(phase Phase) {
	for {
		duration := seq.config.SecondsPerStep
		if phase == PhaseRest {
			duration = seq.config.RestSeconds
		}
		if duration < 0 {
			duration = 0
		}

		seq.phase = phase
		seq.remaining = duration
		seq.phaseSeconds = duration
		if phase == PhaseMove {
			seq.bar = DirectionFor(seq.moveCount)
			seq.moveCount++
		}
		seq.queueLocked(EventPhaseStart)

		if duration > 0 {
			return
		}
		next, done := seq.completePhaseLocked()
		if done {
			return
		}
		phase = next
	}
}

// completePhaseLocked reports the finished phase, then decides what follows.
func (seq *Sequencer) completePhaseLocked() (Phase, bool) {
	finished := seq.phase
	seq.queueLocked(EventPhaseComplete)

	if finished == PhaseMove && seq.config.RestSeconds > 0 {
		return PhaseRest, false
	}

	seq.stepIndex++
	if seq.stepIndex >= len(seq.steps) {
		if seq.round+1 > seq.config.Rounds {
			seq.finishLocked()
			return PhaseComplete, true
		}
		seq.round++
		seq.stepIndex = 0
	}
	return PhaseMove, false
}

func (seq *Sequencer) finishLocked() {
	seq.cancelTickLocked()
	seq.running = false
	seq.phase = PhaseComplete
	seq.stepIndex = len(seq.steps) - 1
	seq.remaining = 0
	seq.queueLocked(EventComplete)
	seq.logger.Debug("routine complete",
		zap.Int("steps", len(seq.steps)),
		zap.Int("rounds", seq.config.Rounds),
		zap.Int("moves", seq.moveCount))
}

func (seq *Sequencer) queueLocked(eventType EventType) {
	event := Event{
		Type:      eventType,
		Phase:     seq.phase,
		StepIndex: seq.stepIndex,
		Round:     seq.round,
		Remaining: seq.remaining,
		Duration:  seq.phaseSeconds,
		MoveCount: seq.moveCount,
		Bar:       seq.bar,
		At:        seq.clock.Now(),
	}
	if seq.stepIndex >= 0 && seq.stepIndex < len(seq.steps) {
		event.Step = seq.steps[seq.stepIndex]
	}
	seq.pending = append(seq.pending, event)
}

// flush releases the lock, then delivers queued events to observers and callbacks.
func (seq *Sequencer) flush() {
	pending := seq.pending
	seq.pending = nil
	callbacks := seq.callbacks
	events := append([]chan Event(nil), seq.events...)
	seq.mu.Unlock()

	for _, event := range pending {
		for _, ch := range events {
			select {
			case ch <- event:
			default:
			}
		}
		callbacks.dispatch(event)
	}
}
