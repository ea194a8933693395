package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"innervation/internal/core/routine"
	"innervation/internal/core/sequencer"
	"innervation/internal/core/tracker"
	"innervation/internal/ui/player"
)

const (
	eventBuffer   = 32
	frameInterval = 100 * time.Millisecond
)

type eventMsg sequencer.Event

type summaryMsg routine.Summary

type frameMsg time.Time

type keyMap struct {
	Toggle  key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Toggle, keys.Restart, keys.Quit}
}

func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{keys.ShortHelp()}
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle:  key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pause/resume")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// Player is the bubbletea model of a routine run in the terminal.
type Player struct {
	controller *routine.Controller
	events     <-chan sequencer.Event
	summaries  <-chan routine.Summary
	title      string

	keys     keyMap
	help     help.Model
	progress progress.Model
	styles   Styles

	state   sequencer.State
	tickAt  time.Time
	now     func() time.Time
	summary *routine.Summary
	stopped bool
}

// NewPlayer subscribes to the controller's sequencer. summaries receives the
// completion summary; the controller should publish to it from WithCompletion.
func NewPlayer(controller *routine.Controller, summaries <-chan routine.Summary, title string) Player {
	return Player{
		controller: controller,
		events:     controller.Sequencer().Subscribe(eventBuffer),
		summaries:  summaries,
		title:      title,
		keys:       defaultKeys(),
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		styles:     DefaultStyles(),
		state:      controller.Sequencer().State(),
		now:        time.Now,
	}
}

// Summary returns the completion summary, if the routine finished.
func (m Player) Summary() (routine.Summary, bool) {
	if m.summary == nil {
		return routine.Summary{}, false
	}
	return *m.summary, true
}

// Init starts the routine and begins listening.
func (m Player) Init() tea.Cmd {
	m.controller.Start()
	return tea.Batch(waitForEvent(m.events), waitForSummary(m.summaries), frame())
}

// Update handles messages.
func (m Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			m.controller.TogglePause()
		case key.Matches(msg, m.keys.Restart):
			m.summary = nil
			m.controller.Restart()
		case key.Matches(msg, m.keys.Quit):
			m.controller.Stop()
			m.stopped = true
			return m, tea.Quit
		}
		m.state = m.controller.Sequencer().State()
		m.tickAt = m.now()
		return m, nil
	case tea.WindowSizeMsg:
		m.progress.Width = max(10, msg.Width-8)
		m.help.Width = msg.Width
		return m, nil
	case eventMsg:
		m.state = m.controller.Sequencer().State()
		m.tickAt = m.now()
		return m, waitForEvent(m.events)
	case summaryMsg:
		summary := routine.Summary(msg)
		m.summary = &summary
		return m, tea.Quit
	case frameMsg:
		return m, frame()
	}
	return m, nil
}

// View renders the player.
func (m Player) View() string {
	if m.stopped {
		return ""
	}
	if m.summary != nil {
		return m.styles.Content.Render(SummaryText(*m.summary, m.styles)) + "\n"
	}

	steps := m.controller.Sequencer().Steps()
	label := ""
	if m.state.StepIndex >= 0 && m.state.StepIndex < len(steps) {
		label = steps[m.state.StepIndex].Label
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(m.title) + "\n\n")
	sb.WriteString(m.styles.Step.Render(label) + "\n")
	sb.WriteString(m.styles.Muted.Render(player.StepText(m.state)+"  ·  "+player.RoundText(m.state)) + "\n\n")
	sb.WriteString(m.styles.Phase.Render(player.PhaseText(m.state)) + "\n")
	sb.WriteString(m.progress.ViewAs(LiveLevel(m.state, m.now().Sub(m.tickAt))) + "\n\n")
	sb.WriteString(m.help.View(m.keys))
	return m.styles.Content.Render(sb.String()) + "\n"
}

// LiveLevel interpolates the bar level between one-second ticks.
func LiveLevel(state sequencer.State, sinceTick time.Duration) float64 {
	if !state.BarAnimating() || state.PhaseSeconds <= 0 {
		return state.BarLevel()
	}
	elapsed := float64(state.PhaseSeconds-state.SecondsRemaining) + min(sinceTick.Seconds(), 1)
	done := min(max(elapsed/float64(state.PhaseSeconds), 0), 1)
	if state.Bar == sequencer.BarDrain {
		return 1 - done
	}
	return done
}

// SummaryText renders a completed routine.
func SummaryText(summary routine.Summary, styles Styles) string {
	lines := []string{
		styles.Success.Render("Routine complete"),
		fmt.Sprintf("%s · %s", summary.Section, summary.Routine),
		fmt.Sprintf("Recorded %s", tracker.FormatTime(summary.Seconds)),
	}
	if summary.Steps > 0 {
		lines = append(lines, styles.Muted.Render(fmt.Sprintf("%d steps × %d rounds", summary.Steps, summary.Rounds)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func waitForEvent(events <-chan sequencer.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(event)
	}
}

func waitForSummary(summaries <-chan routine.Summary) tea.Cmd {
	if summaries == nil {
		return nil
	}
	return func() tea.Msg {
		summary, ok := <-summaries
		if !ok {
			return nil
		}
		return summaryMsg(summary)
	}
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(at time.Time) tea.Msg {
		return frameMsg(at)
	})
}
