package stats

import "innervation/internal/core/tracker"

// TopMovementCount is how many movements the report ranks.
const TopMovementCount = 10

// Card is one period total.
type Card struct {
	Title string
	Value string
}

// Row is one named total.
type Row struct {
	Name string
	Time string
}

// Report is the formatted content of the statistics view.
type Report struct {
	Cards     []Card
	Sections  []Row
	Movements []Row
	Events    int
}

// Build formats the tracker aggregates.
func Build(log *tracker.Tracker) Report {
	summary := log.Summary()
	return Report{
		Cards: []Card{
			{Title: "Today", Value: tracker.FormatTime(summary.Today)},
			{Title: "Last 7 days", Value: tracker.FormatTime(summary.Week)},
			{Title: "Last 30 days", Value: tracker.FormatTime(summary.Month)},
			{Title: "Last 365 days", Value: tracker.FormatTime(summary.Year)},
		},
		Sections:  rows(log.SectionTotals()),
		Movements: rows(log.TopMovements(TopMovementCount)),
		Events:    summary.TotalSessions,
	}
}

// Empty reports whether nothing has been recorded.
func (report Report) Empty() bool {
	return report.Events == 0
}

func rows(totals []tracker.Total) []Row {
	out := make([]Row, 0, len(totals))
	for _, total := range totals {
		out = append(out, Row{Name: total.Name, Time: tracker.FormatTime(total.Seconds)})
	}
	return out
}
