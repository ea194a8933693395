package stats

import (
	"fmt"
	"io"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"innervation/internal/core/tracker"
)

// Window shows practice statistics and the export, import and clear actions.
type Window struct {
	window    fyne.Window
	tracker   *tracker.Tracker
	logger    *zap.Logger
	report    Report
	cards     []*widget.Label
	sections  *widget.Table
	movements *widget.List
	empty     *widget.Label
}

// New creates the statistics window.
func New(app fyne.App, log *tracker.Tracker, logger *zap.Logger) *Window {
	if logger == nil {
		logger = zap.NewNop()
	}
	window := app.NewWindow("Practice Statistics")
	view := &Window{
		window:  window,
		tracker: log,
		logger:  logger,
		empty:   widget.NewLabel("No practice recorded yet."),
	}

	cardRow := container.NewGridWithColumns(4)
	for _, title := range []string{"Today", "Last 7 days", "Last 30 days", "Last 365 days"} {
		value := widget.NewLabelWithStyle("0s", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
		view.cards = append(view.cards, value)
		cardRow.Add(widget.NewCard("", title, value))
	}

	view.sections = widget.NewTable(
		func() (int, int) { return len(view.report.Sections), 2 },
		func() fyne.CanvasObject { return widget.NewLabel("Lower Body Innervation") },
		func(id widget.TableCellID, object fyne.CanvasObject) {
			row := view.report.Sections[id.Row]
			text := row.Name
			if id.Col == 1 {
				text = row.Time
			}
			object.(*widget.Label).SetText(text)
		},
	)
	view.sections.SetColumnWidth(0, 260)

	view.movements = widget.NewList(
		func() int { return len(view.report.Movements) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, object fyne.CanvasObject) {
			row := view.report.Movements[id]
			object.(*widget.Label).SetText(fmt.Sprintf("%d. %s  %s", id+1, row.Name, row.Time))
		},
	)

	exportButton := widget.NewButton("Export", view.export)
	importButton := widget.NewButton("Import", view.importFile)
	clearButton := widget.NewButton("Clear", view.confirmClear)
	buttons := container.NewHBox(exportButton, importButton, layout.NewSpacer(), clearButton)

	lists := container.NewGridWithColumns(2,
		container.NewBorder(heading("By section"), nil, nil, nil, view.sections),
		container.NewBorder(heading("Top movements"), nil, nil, nil, view.movements),
	)
	top := container.NewVBox(cardRow, view.empty)
	window.SetContent(container.NewBorder(top, buttons, nil, nil, lists))
	window.Resize(fyne.NewSize(720, 480))

	return view
}

// Show refreshes and displays the window.
func (view *Window) Show() {
	view.Refresh()
	view.window.Show()
	view.window.RequestFocus()
}

// Refresh recomputes the report from the tracker.
func (view *Window) Refresh() {
	view.report = Build(view.tracker)
	for i, card := range view.report.Cards {
		view.cards[i].SetText(card.Value)
	}
	if view.report.Empty() {
		view.empty.Show()
	} else {
		view.empty.Hide()
	}
	view.sections.Refresh()
	view.movements.Refresh()
}

func (view *Window) export() {
	data, err := view.tracker.Export()
	if err != nil {
		dialog.ShowError(err, view.window)
		return
	}
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, view.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		if _, err := writer.Write(data); err != nil {
			view.logger.Warn("export failed", zap.Error(err))
			dialog.ShowError(fmt.Errorf("write export: %w", err), view.window)
			return
		}
		view.logger.Info("statistics exported", zap.String("uri", writer.URI().String()))
	}, view.window)
	save.SetFileName(tracker.ExportFileName(time.Now()))
	save.Show()
}

func (view *Window) importFile() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, view.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		payload, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("read import: %w", err), view.window)
			return
		}
		if err := view.tracker.Import(payload); err != nil {
			dialog.ShowError(err, view.window)
			return
		}
		view.Refresh()
		dialog.ShowInformation("Import", "Statistics imported.", view.window)
	}, view.window)
}

func (view *Window) confirmClear() {
	dialog.ShowConfirm("Clear statistics",
		"Delete all recorded practice time? This cannot be undone.",
		func(confirmed bool) {
			if !confirmed {
				return
			}
			view.tracker.ClearAll()
			view.Refresh()
		}, view.window)
}

func heading(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}
