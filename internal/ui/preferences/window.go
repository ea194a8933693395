package preferences

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"innervation/internal/core/breath"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)
	onCancel func()

	seconds  *widget.Entry
	rest     *widget.Entry
	rounds   *widget.Entry
	audio    *widget.Check
	backend  *widget.Select
	dataDir  *widget.Entry
	nostril  *widget.Entry
	speed    *widget.Select
	hyperRnd *widget.Entry
	breaths  *widget.Entry
	mudraCnt *widget.Entry
	mudraSec *widget.Entry
	mudraRst *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Innervation Settings")

	prefs := &Window{
		window:   window,
		settings: settings,
		onSave:   onSave,
		seconds:  widget.NewEntry(),
		rest:     widget.NewEntry(),
		rounds:   widget.NewEntry(),
		audio:    widget.NewCheck("Play a sound at each phase change", nil),
		backend:  widget.NewSelect([]string{BackendFile, BackendSQLite}, nil),
		dataDir:  widget.NewEntry(),
		nostril:  widget.NewEntry(),
		speed:    widget.NewSelect(speedNames(), nil),
		hyperRnd: widget.NewEntry(),
		breaths:  widget.NewEntry(),
		mudraCnt: widget.NewEntry(),
		mudraSec: widget.NewEntry(),
		mudraRst: widget.NewEntry(),
	}
	prefs.dataDir.SetPlaceHolder("config directory")
	prefs.fill(settings)

	form := container.NewVBox(
		heading("Routines"),
		widget.NewForm(
			widget.NewFormItem("Seconds per step", prefs.seconds),
			widget.NewFormItem("Rest seconds", prefs.rest),
			widget.NewFormItem("Rounds", prefs.rounds),
		),
		prefs.audio,
		heading("Mudras"),
		widget.NewForm(
			widget.NewFormItem("Mudras per session", prefs.mudraCnt),
			widget.NewFormItem("Seconds per mudra", prefs.mudraSec),
			widget.NewFormItem("Rest seconds", prefs.mudraRst),
		),
		heading("Breathwork"),
		widget.NewForm(
			widget.NewFormItem("Nostril phase seconds", prefs.nostril),
			widget.NewFormItem("Breathing speed", prefs.speed),
			widget.NewFormItem("Rounds", prefs.hyperRnd),
			widget.NewFormItem("Breaths per round", prefs.breaths),
		),
		heading("Storage"),
		widget.NewForm(
			widget.NewFormItem("Backend", prefs.backend),
			widget.NewFormItem("Data directory", prefs.dataDir),
		),
		widget.NewLabel("Storage changes apply after a restart."),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	window.Resize(fyne.NewSize(440, 560))

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetOnCancel sets the cancel handler.
func (prefs *Window) SetOnCancel(handler func()) {
	prefs.onCancel = handler
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.fill(settings)
}

func (prefs *Window) fill(settings Settings) {
	prefs.seconds.SetText(strconv.Itoa(settings.SecondsPerStep))
	prefs.rest.SetText(strconv.Itoa(settings.RestSeconds))
	prefs.rounds.SetText(strconv.Itoa(settings.Rounds))
	prefs.audio.SetChecked(settings.AudioEnabled)
	prefs.backend.SetSelected(settings.StorageBackend)
	prefs.dataDir.SetText(settings.DataDir)
	prefs.nostril.SetText(strconv.Itoa(settings.NostrilPhaseSeconds))
	prefs.speed.SetSelected(string(settings.HyperSpeed))
	prefs.hyperRnd.SetText(strconv.Itoa(settings.HyperRounds))
	prefs.breaths.SetText(strconv.Itoa(settings.HyperBreaths))
	prefs.mudraCnt.SetText(strconv.Itoa(settings.MudraCount))
	prefs.mudraSec.SetText(strconv.Itoa(settings.MudraSeconds))
	prefs.mudraRst.SetText(strconv.Itoa(settings.MudraRest))
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if value, ok := parsePositiveInt(prefs.seconds.Text); ok {
		settings.SecondsPerStep = value
	}
	if value, ok := parseNonNegativeInt(prefs.rest.Text); ok {
		settings.RestSeconds = value
	}
	if value, ok := parsePositiveInt(prefs.rounds.Text); ok {
		settings.Rounds = value
	}
	settings.AudioEnabled = prefs.audio.Checked

	if prefs.backend.Selected != "" {
		settings.StorageBackend = prefs.backend.Selected
	}
	settings.DataDir = prefs.dataDir.Text

	if value, ok := parsePositiveInt(prefs.nostril.Text); ok {
		settings.NostrilPhaseSeconds = value
	}
	if speed, ok := breath.ParseSpeed(prefs.speed.Selected); ok {
		settings.HyperSpeed = speed
	}
	if value, ok := parsePositiveInt(prefs.hyperRnd.Text); ok {
		settings.HyperRounds = value
	}
	if value, ok := parsePositiveInt(prefs.breaths.Text); ok {
		settings.HyperBreaths = value
	}

	if value, ok := parsePositiveInt(prefs.mudraCnt.Text); ok {
		settings.MudraCount = value
	}
	if value, ok := parsePositiveInt(prefs.mudraSec.Text); ok {
		settings.MudraSeconds = value
	}
	if value, ok := parseNonNegativeInt(prefs.mudraRst.Text); ok {
		settings.MudraRest = value
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func heading(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func speedNames() []string {
	return []string{string(breath.SpeedSlow), string(breath.SpeedStandard), string(breath.SpeedFast)}
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func parseNonNegativeInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}
