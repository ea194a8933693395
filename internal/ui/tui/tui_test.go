package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innervation/internal/catalog"
	"innervation/internal/core/model"
	"innervation/internal/core/routine"
	"innervation/internal/core/sequencer"
	"innervation/internal/core/tracker"
	"innervation/internal/ui/stats"
)

type fixture struct {
	clock      *sequencer.ManualClock
	log        *tracker.Tracker
	controller *routine.Controller
	summaries  chan routine.Summary
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{
		clock:     sequencer.NewManualClock(time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)),
		summaries: make(chan routine.Summary, 1),
	}
	fx.log = tracker.New(nil, tracker.WithNow(fx.clock.Now))
	fx.controller = routine.New(sequencer.New(fx.clock, nil), fx.log,
		routine.WithCompletion(func(summary routine.Summary) {
			select {
			case fx.summaries <- summary:
			default:
			}
		}))
	require.True(t, fx.controller.Load("Head Innervation", "TILT", "Tilt", []model.Step{
		{ID: "a.svg", Label: "Tilt Left"},
		{ID: "b.svg", Label: "Tilt Right"},
	}, model.SequenceConfig{SecondsPerStep: 5, RestSeconds: 0, Rounds: 1}))
	return fx
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPlayerKeys(t *testing.T) {
	fx := newFixture(t)
	m := NewPlayer(fx.controller, fx.summaries, "Tilt")
	m.Init()
	assert.True(t, fx.controller.Sequencer().State().Running)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = updated.(Player)
	assert.False(t, m.state.Running)
	assert.Contains(t, m.View(), "Move • 5s")

	updated, _ = m.Update(keyPress('r'))
	m = updated.(Player)
	assert.True(t, m.state.Running)

	updated, cmd := m.Update(keyPress('q'))
	m = updated.(Player)
	require.NotNil(t, cmd)
	assert.Equal(t, sequencer.PhaseIdle, fx.controller.Sequencer().State().Phase)
	assert.False(t, fx.log.SessionOpen())
	assert.Empty(t, m.View())
}

func TestPlayerCompletes(t *testing.T) {
	fx := newFixture(t)
	m := NewPlayer(fx.controller, fx.summaries, "Tilt")
	m.Init()

	fx.clock.Advance(time.Second)
	updated, cmd := m.Update(eventMsg(sequencer.Event{Type: sequencer.EventTick}))
	m = updated.(Player)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Tilt Left")
	assert.Contains(t, m.View(), "Step 1 of 2")

	fx.clock.Advance(9 * time.Second)
	summary := <-fx.summaries
	assert.Equal(t, 10, summary.Seconds)

	updated, _ = m.Update(summaryMsg(summary))
	m = updated.(Player)
	got, ok := m.Summary()
	require.True(t, ok)
	assert.Equal(t, "Tilt", got.Routine)
	assert.Contains(t, m.View(), "Routine complete")
	assert.Contains(t, m.View(), "10s")
}

func TestLiveLevel(t *testing.T) {
	state := sequencer.State{
		Phase:            sequencer.PhaseMove,
		Running:          true,
		PhaseSeconds:     10,
		SecondsRemaining: 5,
		Bar:              sequencer.BarFill,
	}
	assert.InDelta(t, 0.5, LiveLevel(state, 0), 1e-9)
	assert.InDelta(t, 0.55, LiveLevel(state, 500*time.Millisecond), 1e-9)
	assert.InDelta(t, 0.6, LiveLevel(state, 3*time.Second), 1e-9)

	state.Bar = sequencer.BarDrain
	assert.InDelta(t, 0.5, LiveLevel(state, 0), 1e-9)

	state.Running = false
	assert.InDelta(t, 0.5, LiveLevel(state, time.Second), 1e-9)

	state.Phase = sequencer.PhaseRest
	assert.Equal(t, 0.0, LiveLevel(state, time.Second))
}

func TestRenderReport(t *testing.T) {
	log := tracker.New(nil)
	styles := DefaultStyles()
	assert.Contains(t, RenderReport(stats.Build(log), styles), "No practice recorded yet.")

	log.StartSession("Head Innervation", "TILT")
	log.RecordMovement("Tilt Left", 45)
	out := RenderReport(stats.Build(log), styles)
	assert.Contains(t, out, "Head Innervation - Tilt Left")
	assert.Contains(t, out, "45s")
	assert.Contains(t, out, "1 recorded movements")
}

func TestRenderRoutines(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	head, err := cat.Section("head")
	require.NoError(t, err)

	out := RenderRoutines(head, DefaultStyles())
	assert.Contains(t, out, "Head Innervation")
	assert.Contains(t, out, catalog.CustomName)
	assert.Contains(t, RenderSections(cat.Sections(), DefaultStyles()), "eyes")
}
