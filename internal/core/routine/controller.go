package routine

import (
	"sync"

	"go.uber.org/zap"

	"innervation/internal/core/model"
	"innervation/internal/core/sequencer"
	"innervation/internal/core/tracker"
)

// Cue plays the boundary sound.
type Cue interface {
	Play()
}

// CueFunc adapts a function to Cue.
type CueFunc func()

// Play calls fn.
func (fn CueFunc) Play() {
	if fn != nil {
		fn()
	}
}

// Summary is reported when a routine runs to completion.
type Summary struct {
	Section string
	Routine string
	Seconds int
	Steps   int
	Rounds  int
}

// Option configures a Controller.
type Option func(*Controller)

// WithCue sets the boundary sound.
func WithCue(cue Cue) Option {
	return func(controller *Controller) {
		controller.cue = cue
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(controller *Controller) {
		if logger != nil {
			controller.logger = logger
		}
	}
}

// WithCompletion registers fn to receive the summary of each finished routine.
func WithCompletion(fn func(Summary)) Option {
	return func(controller *Controller) {
		controller.onComplete = fn
	}
}

// Controller binds one Sequencer to the practice log for a single screen.
// It records every finished MOVE phase with the configured step length and
// plays a cue on every phase boundary.
type Controller struct {
	mu         sync.Mutex
	seq        *sequencer.Sequencer
	tracker    *tracker.Tracker
	logger     *zap.Logger
	cue        Cue
	audio      bool
	onComplete func(Summary)

	section     string
	routineKey  string
	routineName string
	loaded      bool
}

// New wires seq to log. It replaces any callbacks already set on seq.
func New(seq *sequencer.Sequencer, log *tracker.Tracker, opts ...Option) *Controller {
	controller := &Controller{
		seq:     seq,
		tracker: log,
		logger:  zap.NewNop(),
		audio:   true,
	}
	for _, opt := range opts {
		opt(controller)
	}

	seq.SetCallbacks(sequencer.Callbacks{
		OnPhaseComplete: controller.handlePhaseComplete,
		OnComplete:      controller.handleComplete,
	})
	return controller
}

// Sequencer returns the underlying sequencer for rendering subscriptions.
func (controller *Controller) Sequencer() *sequencer.Sequencer {
	return controller.seq
}

// SetAudio toggles the boundary cue.
func (controller *Controller) SetAudio(enabled bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.audio = enabled
}

// Load stops any active run and prepares a new routine. The routine key is
// stored with each practice event; an empty key is recorded as no routine.
func (controller *Controller) Load(section, routineKey, routineName string, steps []model.Step, config model.SequenceConfig) bool {
	controller.Stop()
	if !controller.seq.Configure(steps, config) {
		controller.logger.Warn("routine has no steps",
			zap.String("section", section),
			zap.String("routine", routineKey))
		return false
	}

	controller.mu.Lock()
	controller.section = section
	controller.routineKey = routineKey
	controller.routineName = routineName
	controller.loaded = true
	controller.mu.Unlock()

	controller.logger.Debug("routine loaded",
		zap.String("section", section),
		zap.String("routine", routineKey),
		zap.Int("steps", len(steps)))
	return true
}

// Loaded returns the section and routine name of the loaded routine.
func (controller *Controller) Loaded() (section, routineName string, ok bool) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.section, controller.routineName, controller.loaded
}

// UpdateConfig changes timing for phases that have not started yet.
func (controller *Controller) UpdateConfig(config model.SequenceConfig) {
	controller.seq.UpdateConfig(config)
}

// Start opens a practice session and starts from the first step. It is a
// no-op while running or when nothing is loaded.
func (controller *Controller) Start() {
	controller.mu.Lock()
	loaded := controller.loaded
	section, routineKey := controller.section, controller.routineKey
	controller.mu.Unlock()

	if !loaded || controller.seq.State().Running {
		return
	}
	controller.tracker.StartSession(section, routineKey)
	controller.seq.Start()
}

// TogglePause starts an idle or finished routine, pauses a running one and
// resumes a paused one.
func (controller *Controller) TogglePause() {
	state := controller.seq.State()
	switch {
	case state.Running:
		controller.seq.Pause()
	case state.Phase == sequencer.PhaseMove || state.Phase == sequencer.PhaseRest:
		controller.seq.Resume()
	default:
		controller.Start()
	}
}

// Restart begins a fresh session from the first step.
func (controller *Controller) Restart() {
	controller.mu.Lock()
	loaded := controller.loaded
	section, routineKey := controller.section, controller.routineKey
	controller.mu.Unlock()

	if !loaded {
		return
	}
	controller.tracker.StartSession(section, routineKey)
	controller.seq.Restart()
}

// Stop cancels the run and closes the practice session.
func (controller *Controller) Stop() {
	controller.seq.Stop()
	controller.tracker.StopSession()
}

func (controller *Controller) handlePhaseComplete(finished sequencer.Phase, stepIndex int, step model.Step) {
	if finished == sequencer.PhaseMove {
		seconds := controller.seq.Config().SecondsPerStep
		if !controller.tracker.RecordMovement(step.Label, seconds) {
			controller.logger.Debug("movement not recorded",
				zap.Int("step", stepIndex),
				zap.String("label", step.Label))
		}
	}
	controller.playCue()
}

func (controller *Controller) handleComplete() {
	controller.tracker.StopSession()

	controller.mu.Lock()
	summary := Summary{
		Section: controller.section,
		Routine: controller.routineName,
		Seconds: controller.tracker.LastSessionDuration(),
		Steps:   len(controller.seq.Steps()),
		Rounds:  controller.seq.Config().Rounds,
	}
	onComplete := controller.onComplete
	controller.mu.Unlock()

	controller.logger.Info("routine complete",
		zap.String("section", summary.Section),
		zap.String("routine", summary.Routine),
		zap.Int("seconds", summary.Seconds))

	if onComplete != nil {
		onComplete(summary)
	}
}

func (controller *Controller) playCue() {
	controller.mu.Lock()
	cue, audio := controller.cue, controller.audio
	controller.mu.Unlock()

	if audio && cue != nil {
		cue.Play()
	}
}
