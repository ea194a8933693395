package player

import (
	"context"
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"innervation/internal/core/routine"
	"innervation/internal/core/sequencer"
	"innervation/internal/core/tracker"
	"innervation/internal/ui/animation"
)

const eventBuffer = 16

var accent = color.NRGBA{R: 232, G: 190, B: 66, A: 255}

// Window shows one routine at a time.
type Window struct {
	window     fyne.Window
	controller *routine.Controller
	engine     *animation.Engine

	titleLabel   *canvas.Text
	stepLabel    *canvas.Text
	countLabel   *canvas.Text
	roundLabel   *canvas.Text
	phaseLabel   *canvas.Text
	summaryLabel *widget.Label
	bar          *widget.ProgressBar
	playButton   *widget.Button
	restart      *widget.Button
	cancelCtx    context.CancelFunc
}

// New creates the player window around controller.
func New(app fyne.App, controller *routine.Controller) *Window {
	window := app.NewWindow("Innervation")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	titleLabel := newText("", 21, true)
	stepLabel := newText("", 28, true)
	stepLabel.Color = accent
	countLabel := newText("", 14, false)
	roundLabel := newText("", 14, false)
	phaseLabel := newText("Ready", 17, true)

	bar := widget.NewProgressBar()
	bar.TextFormatter = func() string { return "" }

	summaryLabel := widget.NewLabel("")
	summaryLabel.Wrapping = fyne.TextWrapWord
	summaryLabel.Hide()

	player := &Window{
		window:       window,
		controller:   controller,
		titleLabel:   titleLabel,
		stepLabel:    stepLabel,
		countLabel:   countLabel,
		roundLabel:   roundLabel,
		phaseLabel:   phaseLabel,
		summaryLabel: summaryLabel,
		bar:          bar,
	}
	player.engine = animation.New(animation.DefaultConfig(), func(level float64) {
		fyne.Do(func() {
			player.bar.SetValue(level)
		})
	})

	player.playButton = widget.NewButton("Play", controller.TogglePause)
	player.restart = widget.NewButton("Restart", func() {
		player.summaryLabel.Hide()
		controller.Restart()
	})

	info := container.New(&stackLayout{gap: 6}, titleLabel, stepLabel, countLabel, roundLabel, phaseLabel)
	buttons := container.NewHBox(player.playButton, layout.NewSpacer(), player.restart)
	content := container.NewBorder(nil, buttons, nil, nil, container.NewVBox(info, bar, summaryLabel))

	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(420, 300))
	window.SetCloseIntercept(func() {
		controller.Stop()
		window.Hide()
	})

	return player
}

// Listen renders sequencer events until the sequencer is closed or ctx ends.
func (player *Window) Listen(ctx context.Context) {
	seq := player.controller.Sequencer()
	events := seq.Subscribe(eventBuffer)
	go func() {
		for {
			select {
			case <-ctx.Done():
				player.engine.Stop()
				return
			case event, ok := <-events:
				if !ok {
					player.engine.Stop()
					return
				}
				player.animate(ctx, event)
				state := seq.State()
				fyne.Do(func() {
					player.render(state)
				})
			}
		}
	}()
}

// Open shows the window for the loaded routine.
func (player *Window) Open() {
	section, name, ok := player.controller.Loaded()
	if !ok {
		return
	}
	title := name
	if section != "" && name != "" {
		title = fmt.Sprintf("%s · %s", section, name)
	}
	player.titleLabel.Text = title
	player.titleLabel.Refresh()
	player.summaryLabel.Hide()
	player.engine.Hold(0)
	player.render(player.controller.Sequencer().State())

	player.window.Show()
	player.window.RequestFocus()
}

// ShowSummary displays the completion summary. Safe from any goroutine.
func (player *Window) ShowSummary(summary routine.Summary) {
	text := fmt.Sprintf("Session complete: %s of %s.", tracker.FormatTime(summary.Seconds), summary.Routine)
	fyne.Do(func() {
		player.summaryLabel.SetText(text)
		player.summaryLabel.Show()
	})
}

// Hide stops the routine and closes the window.
func (player *Window) Hide() {
	player.controller.Stop()
	player.engine.Stop()
	player.window.Hide()
}

func (player *Window) animate(ctx context.Context, event sequencer.Event) {
	action, sweep := SweepFor(event)
	switch action {
	case BarPlay:
		player.engine.Play(ctx, sweep)
	case BarHold:
		player.engine.Hold(sweep.To)
	}
}

func (player *Window) render(state sequencer.State) {
	steps := player.controller.Sequencer().Steps()
	label := ""
	if state.StepIndex >= 0 && state.StepIndex < len(steps) {
		label = steps[state.StepIndex].Label
	}
	setText(player.stepLabel, label)
	setText(player.countLabel, StepText(state))
	setText(player.roundLabel, RoundText(state))
	setText(player.phaseLabel, PhaseText(state))
	player.playButton.SetText(PlayText(state))
}

func newText(text string, size float32, bold bool) *canvas.Text {
	label := canvas.NewText(text, theme.Color(theme.ColorNameForeground))
	label.Alignment = fyne.TextAlignLeading
	label.TextStyle = fyne.TextStyle{Bold: bold}
	label.TextSize = size
	return label
}

func setText(label *canvas.Text, text string) {
	if label.Text == text {
		return
	}
	label.Text = text
	label.Refresh()
}

// stackLayout places objects top to bottom at their minimum height.
type stackLayout struct {
	gap float32
}

func (stack *stackLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	y := float32(0)
	for _, object := range objects {
		height := object.MinSize().Height
		object.Move(fyne.NewPos(0, y))
		object.Resize(fyne.NewSize(size.Width, height))
		y += height + stack.gap
	}
}

func (stack *stackLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	width, height := float32(0), float32(0)
	for i, object := range objects {
		minSize := object.MinSize()
		width = max(width, minSize.Width)
		height += minSize.Height
		if i > 0 {
			height += stack.gap
		}
	}
	return fyne.NewSize(width, height)
}
