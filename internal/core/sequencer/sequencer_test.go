package sequencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"innervation/internal/core/model"
)

var epoch = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type recorder struct {
	ticks          []int
	starts         []Phase
	moveCompletes  int
	restCompletes  int
	completes      int
	stateChanges   []EventType
	completedSteps []string
}

func (rec *recorder) callbacks() Callbacks {
	return Callbacks{
		OnTick: func(secondsRemaining int, _ Phase) {
			rec.ticks = append(rec.ticks, secondsRemaining)
		},
		OnPhaseStart: func(phase Phase, _ int, _ model.Step) {
			rec.starts = append(rec.starts, phase)
		},
		OnPhaseComplete: func(finished Phase, _ int, step model.Step) {
			switch finished {
			case PhaseMove:
				rec.moveCompletes++
				rec.completedSteps = append(rec.completedSteps, step.ID)
			case PhaseRest:
				rec.restCompletes++
			}
		},
		OnComplete: func() {
			rec.completes++
		},
		OnStateChange: func(event Event) {
			rec.stateChanges = append(rec.stateChanges, event.Type)
		},
	}
}

func threeSteps() []model.Step {
	return []model.Step{
		{ID: "s1", Label: "One"},
		{ID: "s2", Label: "Two"},
		{ID: "s3", Label: "Three"},
	}
}

func newTestSequencer(t *testing.T) (*Sequencer, *ManualClock, *recorder) {
	t.Helper()
	clock := NewManualClock(epoch)
	seq := New(clock, nil)
	rec := &recorder{}
	seq.SetCallbacks(rec.callbacks())
	return seq, clock, rec
}

func TestFullRunWithRest(t *testing.T) {
	seq, clock, rec := newTestSequencer(t)
	require.True(t, seq.Configure(threeSteps(), model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 2, Rounds: 2}))

	seq.Start()
	state := seq.State()
	assert.Equal(t, PhaseMove, state.Phase)
	assert.Equal(t, 5, state.SecondsRemaining)
	assert.Equal(t, 1, state.Round)

	clock.Advance(41 * time.Second)
	assert.Zero(t, rec.completes)

	clock.Advance(time.Second)
	assert.Equal(t, 6, rec.moveCompletes)
	assert.Equal(t, 6, rec.restCompletes)
	assert.Equal(t, 1, rec.completes)
	assert.Equal(t, []string{"s1", "s2", "s3", "s1", "s2", "s3"}, rec.completedSteps)

	state = seq.State()
	assert.Equal(t, PhaseComplete, state.Phase)
	assert.False(t, state.Running)
	assert.Equal(t, 2, state.Round)
	assert.Equal(t, 2, state.StepIndex)
	assert.Zero(t, clock.Active())

	clock.Advance(10 * time.Second)
	assert.Equal(t, 1, rec.completes)
}

func TestNoRestPhaseWhenRestIsZero(t *testing.T) {
	seq, clock, rec := newTestSequencer(t)
	seq.Configure(threeSteps(), model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 0, Rounds: 1})

	seq.Start()
	clock.Advance(15 * time.Second)

	assert.Equal(t, 3, rec.moveCompletes)
	assert.Zero(t, rec.restCompletes)
	assert.NotContains(t, rec.starts, PhaseRest)
	assert.Equal(t, 1, rec.completes)
}

func TestTicksCountDown(t *testing.T) {
	seq, clock, rec := newTestSequencer(t)
	seq.Configure(threeSteps()[:1], model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 0, Rounds: 1})

	seq.Start()
	clock.Advance(5 * time.Second)

	assert.Equal(t, []int{4, 3, 2, 1}, rec.ticks)
	assert.Equal(t, 1, rec.completes)
}

func TestEmptyStepsIsNoop(t *testing.T) {
	seq, clock, rec := newTestSequencer(t)

	assert.False(t, seq.Configure(nil, model.DefaultSequenceConfig()))
	seq.Start()
	clock.Advance(time.Minute)

	assert.Empty(t, rec.ticks)
	assert.Empty(t, rec.starts)
	assert.Equal(t, PhaseIdle, seq.State().Phase)
	assert.Zero(t, clock.Active())
}

func TestPauseAndResumeKeepRemaining(t *testing.T) {
	seq, clock, rec := newTestSequencer(t)
	seq.Configure(threeSteps(), model.SequenceConfig{SecondsPerStep: 10, RestSeconds: 3, Rounds: 1})

	seq.Start()
	clock.Advance(4 * time.Second)
	seq.Pause()

	paused := seq.State()
	assert.False(t, paused.Running)
	assert.Equal(t, 6, paused.SecondsRemaining)

	clock.Advance(30 * time.Second)
	assert.Equal(t, 6, seq.State().SecondsRemaining)
	assert.Zero(t, clock.Active())

	seq.Resume()
	assert.Equal(t, 6, seq.State().SecondsRemaining)
	clock.Advance(time.Second)
	assert.Equal(t, 5, seq.State().SecondsRemaining)
	assert.Equal(t, []EventType{EventPaused, EventResumed}, rec.stateChanges)
}

func TestPauseDuringRestResumesRest(t *testing.T) {
	seq, clock, _ := newTestSequencer(t)
	seq.Configure(threeSteps(), model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 4, Rounds: 1})

	seq.Start()
	clock.Advance(6 * time.Second)
	seq.Pause()

	state := seq.State()
	assert.Equal(t, PhaseRest, state.Phase)
	assert.Equal(t, 3, state.SecondsRemaining)

	seq.Resume()
	clock.Advance(3 * time.Second)
	state = seq.State()
	assert.Equal(t, PhaseMove, state.Phase)
	assert.Equal(t, 1, state.StepIndex)
}

func TestRestartKeepsSingleTimer(t *testing.T) {
	seq, clock, rec := newTestSequencer(t)
	seq.Configure(threeSteps(), model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 2, Rounds: 2})

	seq.Start()
	for i := 0; i < 5; i++ {
		clock.Advance(2 * time.Second)
		seq.Restart()
		assert.LessOrEqual(t, clock.Active(), 1)
	}

	state := seq.State()
	assert.Equal(t, PhaseMove, state.Phase)
	assert.Equal(t, 0, state.StepIndex)
	assert.Equal(t, 5, state.SecondsRemaining)

	rec.ticks = nil
	clock.Advance(time.Second)
	assert.Equal(t, []int{4}, rec.ticks)
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	seq, clock, _ := newTestSequencer(t)
	seq.Configure(threeSteps(), model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 2, Rounds: 2})

	seq.Start()
	clock.Advance(2 * time.Second)
	seq.Start()

	assert.Equal(t, 3, seq.State().SecondsRemaining)
	assert.Equal(t, 1, clock.Active())
}

func TestStopReturnsToIdle(t *testing.T) {
	seq, clock, rec := newTestSequencer(t)
	seq.Configure(threeSteps(), model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 2, Rounds: 2})

	seq.Start()
	clock.Advance(3 * time.Second)
	seq.Stop()

	state := seq.State()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.False(t, state.Running)
	assert.Zero(t, clock.Active())
	assert.Equal(t, []EventType{EventStopped}, rec.stateChanges)

	seq.Stop()
	assert.Len(t, rec.stateChanges, 1)
}

func TestConfigureWhileRunningStops(t *testing.T) {
	seq, clock, _ := newTestSequencer(t)
	seq.Configure(threeSteps(), model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 2, Rounds: 2})
	seq.Start()
	clock.Advance(2 * time.Second)

	require.True(t, seq.Configure(threeSteps()[:2], model.SequenceConfig{SecondsPerStep: 8}))
	state := seq.State()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Equal(t, 2, state.StepCount)
	assert.Zero(t, clock.Active())
	assert.Equal(t, model.SequenceConfig{SecondsPerStep: 8, RestSeconds: 0, Rounds: 2}, seq.Config())
}

func TestUpdateConfigAppliesToNextPhase(t *testing.T) {
	seq, clock, _ := newTestSequencer(t)
	seq.Configure(threeSteps(), model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 2, Rounds: 1})

	seq.Start()
	clock.Advance(2 * time.Second)
	seq.UpdateConfig(model.SequenceConfig{SecondsPerStep: 20, RestSeconds: 6, Rounds: 1})
	assert.Equal(t, 3, seq.State().SecondsRemaining)

	clock.Advance(3 * time.Second)
	state := seq.State()
	assert.Equal(t, PhaseRest, state.Phase)
	assert.Equal(t, 6, state.SecondsRemaining)

	clock.Advance(6 * time.Second)
	state = seq.State()
	assert.Equal(t, PhaseMove, state.Phase)
	assert.Equal(t, 20, state.SecondsRemaining)
}

func TestBarAlternatesAcrossRounds(t *testing.T) {
	seq, clock, _ := newTestSequencer(t)
	steps := threeSteps()
	seq.Configure(steps, model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 2, Rounds: 2})
	events := seq.Subscribe(64)

	seq.Start()
	clock.Advance(42 * time.Second)

	var directions []BarDirection
	for {
		select {
		case event := <-events:
			if event.Type == EventPhaseStart && event.Phase == PhaseMove {
				directions = append(directions, event.Bar)
			}
			continue
		default:
		}
		break
	}

	assert.Equal(t, []BarDirection{BarFill, BarDrain, BarFill, BarDrain, BarFill, BarDrain}, directions)
}

func TestBarLevelFreezesDuringRest(t *testing.T) {
	seq, clock, _ := newTestSequencer(t)
	seq.Configure(threeSteps(), model.SequenceConfig{SecondsPerStep: 10, RestSeconds: 3, Rounds: 1})

	seq.Start()
	assert.InDelta(t, 0.0, seq.State().BarLevel(), 1e-9)
	clock.Advance(5 * time.Second)
	assert.InDelta(t, 0.5, seq.State().BarLevel(), 1e-9)

	clock.Advance(6 * time.Second)
	state := seq.State()
	assert.Equal(t, PhaseRest, state.Phase)
	assert.InDelta(t, 1.0, state.BarLevel(), 1e-9)
	assert.False(t, state.BarAnimating())

	clock.Advance(2 * time.Second)
	state = seq.State()
	assert.Equal(t, PhaseMove, state.Phase)
	assert.Equal(t, BarDrain, state.Bar)
	assert.InDelta(t, 1.0, state.BarLevel(), 1e-9)
}

func TestCallbacksMayReenter(t *testing.T) {
	clock := NewManualClock(epoch)
	seq := New(clock, nil)
	seq.Configure(threeSteps(), model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 2, Rounds: 1})

	seq.SetCallbacks(Callbacks{
		OnPhaseComplete: func(finished Phase, stepIndex int, _ model.Step) {
			if finished == PhaseMove && stepIndex == 1 {
				seq.Pause()
			}
		},
	})

	seq.Start()
	clock.Advance(time.Minute)

	state := seq.State()
	assert.False(t, state.Running)
	assert.Equal(t, PhaseRest, state.Phase)
	assert.Equal(t, 1, state.StepIndex)
}

func TestSubscribeDropsWhenFull(t *testing.T) {
	seq, clock, _ := newTestSequencer(t)
	seq.Configure(threeSteps(), model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 2, Rounds: 2})
	events := seq.Subscribe(1)

	seq.Start()
	clock.Advance(10 * time.Second)
	assert.Len(t, events, 1)

	seq.Close()
	_, ok := <-events
	assert.True(t, ok)
	_, ok = <-events
	assert.False(t, ok)
}

func TestRealClockStopsGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	seq := New(RealClock{}, nil)
	seq.Configure(threeSteps(), model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 2, Rounds: 1})
	seq.Start()
	seq.Restart()
	seq.Pause()
	seq.Resume()
	seq.Close()

	// Allow the ticker goroutine to observe the closed stop channel.
	time.Sleep(20 * time.Millisecond)
}
