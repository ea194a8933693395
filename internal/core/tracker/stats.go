package tracker

import (
	"cmp"
	"slices"
	"time"
)

const day = 24 * time.Hour

// Summary holds the aggregates shown after a routine and in the stats view.
type Summary struct {
	Today         int            `json:"today"`
	Week          int            `json:"week"`
	Month         int            `json:"month"`
	Year          int            `json:"year"`
	BySection     map[string]int `json:"bySection"`
	ByMovement    map[string]int `json:"byMovement"`
	TotalSessions int            `json:"totalSessions"`
}

// Total is a named duration used for ranked listings.
type Total struct {
	Name    string
	Seconds int
}

// MovementKey joins section and movement the way ByMovement keys them.
func MovementKey(section, movement string) string {
	return section + " - " + movement
}

// TimeForPeriod sums event durations with timestamps in [start, end).
func (tracker *Tracker) TimeForPeriod(start, end time.Time) int {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.timeForPeriodLocked(start, end)
}

func (tracker *Tracker) timeForPeriodLocked(start, end time.Time) int {
	from, to := start.UnixMilli(), end.UnixMilli()
	total := 0
	for _, event := range tracker.data.Sessions {
		if event.Timestamp >= from && event.Timestamp < to {
			total += event.Duration
		}
	}
	return total
}

// TimeForSection sums all events of section.
func (tracker *Tracker) TimeForSection(section string) int {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	total := 0
	for _, event := range tracker.data.Sessions {
		if event.Section == section {
			total += event.Duration
		}
	}
	return total
}

// TimeForMovement sums all events of movement within section.
func (tracker *Tracker) TimeForMovement(section, movement string) int {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	total := 0
	for _, event := range tracker.data.Sessions {
		if event.Section == section && event.Movement == movement {
			total += event.Duration
		}
	}
	return total
}

// Summary computes the rolling windows and all-time breakdowns.
// Today is the local calendar day. Week, month and year start 7, 30 and 365
// days before now and end one day after now.
func (tracker *Tracker) Summary() Summary {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	now := tracker.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	horizon := now.Add(day)

	summary := Summary{
		Today:         tracker.timeForPeriodLocked(startOfDay, startOfDay.Add(day)),
		Week:          tracker.timeForPeriodLocked(now.Add(-7*day), horizon),
		Month:         tracker.timeForPeriodLocked(now.Add(-30*day), horizon),
		Year:          tracker.timeForPeriodLocked(now.Add(-365*day), horizon),
		BySection:     make(map[string]int),
		ByMovement:    make(map[string]int),
		TotalSessions: len(tracker.data.Sessions),
	}
	for _, event := range tracker.data.Sessions {
		summary.BySection[event.Section] += event.Duration
		summary.ByMovement[MovementKey(event.Section, event.Movement)] += event.Duration
	}
	return summary
}

// SectionTotals lists sections by total time, largest first.
func (tracker *Tracker) SectionTotals() []Total {
	return ranked(tracker.Summary().BySection, 0)
}

// TopMovements lists the n movements with the most time. n <= 0 returns all.
func (tracker *Tracker) TopMovements(n int) []Total {
	return ranked(tracker.Summary().ByMovement, n)
}

func ranked(totals map[string]int, limit int) []Total {
	out := make([]Total, 0, len(totals))
	for name, seconds := range totals {
		out = append(out, Total{Name: name, Seconds: seconds})
	}
	slices.SortFunc(out, func(a, b Total) int {
		if c := cmp.Compare(b.Seconds, a.Seconds); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
