package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"innervation/internal/catalog"
	"innervation/internal/ui/stats"
)

// RenderReport renders the statistics report for the terminal.
func RenderReport(report stats.Report, styles Styles) string {
	if report.Empty() {
		return styles.Muted.Render("No practice recorded yet.") + "\n"
	}

	cards := make([]string, 0, len(report.Cards))
	for _, card := range report.Cards {
		cards = append(cards, styles.Card.Render(card.Title+"\n"+styles.Step.Render(card.Value)))
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")
	sb.WriteString(styles.Phase.Render("By section") + "\n")
	for _, row := range report.Sections {
		sb.WriteString(styles.Label.Render(row.Name) + row.Time + "\n")
	}
	sb.WriteString("\n" + styles.Phase.Render(fmt.Sprintf("Top %d movements", stats.TopMovementCount)) + "\n")
	for i, row := range report.Movements {
		sb.WriteString(styles.Label.Render(fmt.Sprintf("%2d. %s", i+1, row.Name)) + row.Time + "\n")
	}
	sb.WriteString(styles.Muted.Render(fmt.Sprintf("%d recorded movements", report.Events)) + "\n")
	return sb.String()
}

// RenderSections lists sections, or the routines of one section.
func RenderSections(sections []catalog.Section, styles Styles) string {
	var sb strings.Builder
	for _, section := range sections {
		low, high := section.CustomBounds()
		sb.WriteString(styles.Step.Render(section.Key) + "  " + section.Name + "  " +
			styles.Muted.Render(fmt.Sprintf("%d routines, custom %d-%d %s", len(section.Routines), low, high, section.Noun)) + "\n")
	}
	return sb.String()
}

// RenderRoutines lists the routines of section with their step counts.
func RenderRoutines(section catalog.Section, styles Styles) string {
	var sb strings.Builder
	sb.WriteString(styles.Header.Render(section.Name) + "\n")
	if section.Tagline != "" {
		sb.WriteString(styles.Muted.Render(section.Tagline) + "\n")
	}
	sb.WriteString("\n")
	for _, routine := range section.Routines {
		sb.WriteString(styles.Label.Render(styles.Step.Render(routine.Key)+"  "+routine.Name) +
			styles.Muted.Render(fmt.Sprintf("%d %s", len(routine.Steps), section.Noun)) + "\n")
	}
	sb.WriteString(styles.Label.Render(styles.Step.Render(catalog.CustomKey)+"  "+catalog.CustomName) + "\n")
	return sb.String()
}
