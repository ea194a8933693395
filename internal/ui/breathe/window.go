package breathe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"innervation/internal/core/breath"
	"innervation/internal/core/routine"
	"innervation/internal/core/tracker"
	"innervation/internal/ui/animation"
)

// Window runs one breathwork session at a time.
type Window struct {
	mu      sync.Mutex
	window  fyne.Window
	tracker *tracker.Tracker
	cue     routine.Cue
	engine  *animation.Engine

	nostril    *breath.Nostril
	hyper      *breath.Hyper
	session    *routine.BreathSession
	generation int

	titleLabel  *widget.Label
	stageLabel  *widget.Label
	detailLabel *widget.Label
	bar         *widget.ProgressBar
	endButton   *widget.Button
	stopButton  *widget.Button
}

// New creates the breathwork window.
func New(app fyne.App, log *tracker.Tracker, cue routine.Cue) *Window {
	window := app.NewWindow("Breathwork")
	view := &Window{
		window:      window,
		tracker:     log,
		cue:         cue,
		engine:      animation.New(animation.DefaultConfig(), nil),
		titleLabel:  widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		stageLabel:  widget.NewLabelWithStyle("Ready", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		detailLabel: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		bar:         widget.NewProgressBar(),
	}
	view.bar.TextFormatter = func() string { return "" }
	view.endButton = widget.NewButton("End retention", view.EndRetention)
	view.endButton.Disable()
	view.stopButton = widget.NewButton("Stop", view.Stop)

	buttons := container.NewHBox(view.endButton, layout.NewSpacer(), view.stopButton)
	body := container.NewVBox(view.titleLabel, view.stageLabel, view.bar, view.detailLabel)
	window.SetContent(container.NewBorder(nil, buttons, nil, nil, body))
	window.Resize(fyne.NewSize(380, 220))
	window.SetCloseIntercept(func() {
		view.Stop()
		window.Hide()
	})
	return view
}

// StartNostril begins a nostril breathing session.
func (view *Window) StartNostril(pattern breath.Pattern, phaseSeconds int) {
	view.Stop()

	view.mu.Lock()
	view.generation++
	view.nostril = breath.NewNostril(pattern, time.Duration(phaseSeconds)*time.Second)
	view.nostril.Start()
	view.session = routine.StartNostrilSession(view.tracker, pattern, view.cue)
	state := view.nostril.State()
	view.mu.Unlock()

	view.titleLabel.SetText(fmt.Sprintf("%s breathing · %s", pattern.Title(), pattern.CycleDefinition()))
	view.endButton.Disable()
	view.renderNostril(state)
	view.show()
	view.engine.Run(context.Background(), view.stepNostril)
}

// StartHyper begins a hyperventilation session.
func (view *Window) StartHyper(config breath.HyperConfig) {
	view.Stop()

	view.mu.Lock()
	view.generation++
	view.hyper = breath.NewHyper(config)
	view.session = routine.StartHyperSession(view.tracker, view.cue)
	view.session.HandleTransitions(view.hyper.Start(), view.hyper.Config())
	state := view.hyper.State()
	view.mu.Unlock()

	view.titleLabel.SetText(fmt.Sprintf("Hyperventilation · %d rounds", state.Rounds))
	view.renderHyper(state)
	view.show()
	view.engine.Run(context.Background(), view.stepHyper)
}

// EndRetention moves a hyperventilation round past its retention.
func (view *Window) EndRetention() {
	view.mu.Lock()
	if view.hyper == nil {
		view.mu.Unlock()
		return
	}
	view.session.HandleTransitions(view.hyper.EndRetention(), view.hyper.Config())
	state := view.hyper.State()
	view.mu.Unlock()
	view.renderHyper(state)
}

// Stop ends the active session and records it.
func (view *Window) Stop() {
	view.engine.Stop()

	view.mu.Lock()
	view.generation++
	session := view.session
	view.session = nil
	view.nostril = nil
	view.hyper = nil
	view.mu.Unlock()

	if session != nil {
		summary := session.Finish()
		view.detailLabel.SetText(fmt.Sprintf("Session complete: %s.", tracker.FormatTime(summary.Seconds)))
		view.stageLabel.SetText("Ready")
		view.endButton.Disable()
		view.bar.SetValue(0)
	}
}

func (view *Window) stepNostril(delta time.Duration) bool {
	render, ok := view.advanceNostril(delta)
	if !ok {
		return false
	}
	fyne.Do(render)
	return true
}

func (view *Window) advanceNostril(delta time.Duration) (func(), bool) {
	view.mu.Lock()
	defer view.mu.Unlock()

	if view.nostril == nil {
		return nil, false
	}
	if cycles := view.nostril.Advance(delta); cycles > 0 {
		view.session.RecordCycles(view.nostril.State().Pattern, cycles, view.nostril.CycleSeconds())
	}
	state := view.nostril.State()
	generation := view.generation

	return func() {
		if view.current(generation) {
			view.renderNostril(state)
		}
	}, true
}

func (view *Window) stepHyper(delta time.Duration) bool {
	render, more := view.advanceHyper(delta)
	if render != nil {
		fyne.Do(render)
	}
	return more
}

// advanceHyper returns the frame render and whether the session continues.
func (view *Window) advanceHyper(delta time.Duration) (func(), bool) {
	view.mu.Lock()
	defer view.mu.Unlock()

	if view.hyper == nil {
		return nil, false
	}
	view.session.HandleTransitions(view.hyper.Advance(delta), view.hyper.Config())
	state := view.hyper.State()
	generation := view.generation

	var summary *routine.Summary
	if state.Stage == breath.StageComplete {
		finished := view.session.Finish()
		summary = &finished
		view.session = nil
		view.hyper = nil
	}

	return func() {
		if !view.current(generation) {
			return
		}
		view.renderHyper(state)
		if summary != nil {
			view.detailLabel.SetText(fmt.Sprintf("%s · %s", tracker.FormatTime(summary.Seconds), RetentionSummary(state.Retentions)))
		}
	}, summary == nil
}

// current reports whether no session has started or stopped since generation.
func (view *Window) current(generation int) bool {
	view.mu.Lock()
	defer view.mu.Unlock()
	return view.generation == generation
}

func (view *Window) renderNostril(state breath.NostrilState) {
	stage, detail := NostrilText(state)
	view.stageLabel.SetText(stage)
	view.detailLabel.SetText(detail)
	view.bar.SetValue(state.Level())
}

func (view *Window) renderHyper(state breath.HyperState) {
	stage, detail := HyperText(state)
	view.stageLabel.SetText(stage)
	view.detailLabel.SetText(detail)
	view.bar.SetValue(state.Level())
	if state.Stage == breath.StageRetention {
		view.endButton.Enable()
	} else {
		view.endButton.Disable()
	}
}

func (view *Window) show() {
	view.window.Show()
	view.window.RequestFocus()
}
