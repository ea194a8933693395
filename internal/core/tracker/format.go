package tracker

import "fmt"

// FormatTime renders seconds as "45s", "2m 5s" or "1h 5m". Zero parts are dropped.
func FormatTime(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		if rest := seconds % 60; rest > 0 {
			return fmt.Sprintf("%dm %ds", minutes, rest)
		}
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	if rest := minutes % 60; rest > 0 {
		return fmt.Sprintf("%dh %dm", hours, rest)
	}
	return fmt.Sprintf("%dh", hours)
}
