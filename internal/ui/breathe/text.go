package breathe

import (
	"fmt"
	"strings"
	"time"

	"innervation/internal/core/breath"
)

// NostrilText returns the phase instruction and the cycle count.
func NostrilText(state breath.NostrilState) (string, string) {
	if !state.Running {
		return "Ready", fmt.Sprintf("Cycles: %d", state.Cycles)
	}
	direction := "OUT"
	if state.Phase.Inhale() {
		direction = "IN"
	}
	return fmt.Sprintf("%s %s", direction, state.Phase.Side), fmt.Sprintf("Cycles: %d", state.Cycles)
}

// HyperText returns the stage instruction and the round line.
func HyperText(state breath.HyperState) (string, string) {
	round := ""
	if state.Rounds > 0 && state.Round > 0 {
		round = fmt.Sprintf("Round %d of %d", state.Round, state.Rounds)
	}
	switch state.Stage {
	case breath.StageBreathing:
		return fmt.Sprintf("Breath %d of %d • %s", state.Breath+1, state.Breaths, state.Direction), round
	case breath.StageRetention:
		return fmt.Sprintf("Hold empty • %s", FormatClock(state.Elapsed)), round
	case breath.StageInhaleHold:
		return fmt.Sprintf("Hold full • %ds", ceilSeconds(state.Remaining)), round
	case breath.StageRelease:
		return fmt.Sprintf("Release • %ds", ceilSeconds(state.Remaining)), round
	case breath.StageComplete:
		return "Complete", RetentionSummary(state.Retentions)
	default:
		return "Ready", round
	}
}

// RetentionSummary lists retention times by round.
func RetentionSummary(retentions []time.Duration) string {
	parts := make([]string, 0, len(retentions))
	for i, retention := range retentions {
		parts = append(parts, fmt.Sprintf("Round %d: %s", i+1, FormatClock(retention)))
	}
	return strings.Join(parts, ", ")
}

// FormatClock renders a duration as m:ss.
func FormatClock(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value / time.Second)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func ceilSeconds(value time.Duration) int {
	if value <= 0 {
		return 0
	}
	return int((value + time.Second - 1) / time.Second)
}
