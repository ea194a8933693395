package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"innervation/internal/catalog"
	"innervation/internal/core/breath"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnRoutine     func(sectionKey, routineKey string)
	OnCustom      func(sectionKey string)
	OnMudras      func()
	OnNostril     func(pattern breath.Pattern)
	OnHyper       func()
	OnTogglePause func()
	OnStop        func()
	OnStatistics  func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	sections    []catalog.Section
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	stopItem    *fyne.MenuItem
	menu        *fyne.Menu
	active      bool
	paused      bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks. A nil app builds
// the menu without installing it.
func New(app desktop.App, sections []catalog.Section, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		sections:    sections,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Pause", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})
	manager.stopItem = fyne.NewMenuItem("Stop", func() {
		if manager.callbacks.OnStop != nil {
			manager.callbacks.OnStop()
		}
	})

	manager.refreshStatus()
	return manager
}

// Menu returns the menu currently installed.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetRunning updates the routine controls.
func (manager *Manager) SetRunning(active, paused bool) {
	manager.active = active
	manager.paused = paused
	if paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshStatus()
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.pauseItem.Disabled = !manager.active
	manager.stopItem.Disabled = !manager.active
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	items := []*fyne.MenuItem{manager.statusItem, fyne.NewMenuItemSeparator()}
	for _, section := range manager.sections {
		items = append(items, manager.sectionItem(section))
	}
	items = append(items,
		manager.item("Mudras", manager.callbacks.OnMudras),
		manager.breathworkItem(),
		fyne.NewMenuItemSeparator(),
		manager.pauseItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		manager.item("Statistics", manager.callbacks.OnStatistics),
		manager.item("Preferences", manager.callbacks.OnPreferences),
		manager.item("Quit", manager.callbacks.OnQuit),
	)

	manager.menu = fyne.NewMenu("Innervation", items...)
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

func (manager *Manager) sectionItem(section catalog.Section) *fyne.MenuItem {
	children := make([]*fyne.MenuItem, 0, len(section.Routines)+2)
	for _, routine := range section.Routines {
		sectionKey, routineKey := section.Key, routine.Key
		children = append(children, fyne.NewMenuItem(routine.Name, func() {
			if manager.callbacks.OnRoutine != nil {
				manager.callbacks.OnRoutine(sectionKey, routineKey)
			}
		}))
	}
	sectionKey := section.Key
	children = append(children,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(catalog.CustomName, func() {
			if manager.callbacks.OnCustom != nil {
				manager.callbacks.OnCustom(sectionKey)
			}
		}),
	)

	item := fyne.NewMenuItem(section.Name, nil)
	item.ChildMenu = fyne.NewMenu("", children...)
	return item
}

func (manager *Manager) breathworkItem() *fyne.MenuItem {
	children := make([]*fyne.MenuItem, 0, len(breath.Patterns)+1)
	for _, pattern := range breath.Patterns {
		children = append(children, fyne.NewMenuItem(pattern.Title(), func() {
			if manager.callbacks.OnNostril != nil {
				manager.callbacks.OnNostril(pattern)
			}
		}))
	}
	children = append(children, manager.item("Hyperventilation", manager.callbacks.OnHyper))

	item := fyne.NewMenuItem("Breathwork", nil)
	item.ChildMenu = fyne.NewMenu("", children...)
	return item
}

func (manager *Manager) item(label string, handler func()) *fyne.MenuItem {
	return fyne.NewMenuItem(label, func() {
		if handler != nil {
			handler()
		}
	})
}
