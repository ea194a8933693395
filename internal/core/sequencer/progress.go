package sequencer

// BarDirection describes how the progress bar moves during a MOVE phase.
type BarDirection int

const (
	BarNone BarDirection = iota
	BarFill
	BarDrain
)

func (direction BarDirection) String() string {
	switch direction {
	case BarFill:
		return "fill"
	case BarDrain:
		return "drain"
	default:
		return "none"
	}
}

// DirectionFor returns the bar direction of the moveIndex-th MOVE phase
// (0-based, counted across rounds). Consecutive movements alternate.
func DirectionFor(moveIndex int) BarDirection {
	if moveIndex < 0 {
		return BarNone
	}
	if moveIndex%2 == 0 {
		return BarFill
	}
	return BarDrain
}

// StartLevel is the bar level at the beginning of a MOVE phase.
func StartLevel(direction BarDirection) float64 {
	if direction == BarDrain {
		return 1
	}
	return 0
}

// EndLevel is the bar level at the end of a MOVE phase.
func EndLevel(direction BarDirection) float64 {
	switch direction {
	case BarFill:
		return 1
	case BarDrain:
		return 0
	default:
		return 0
	}
}

// Level returns the bar level for a MOVE phase with remaining of total seconds left.
func Level(direction BarDirection, remaining, total int) float64 {
	if direction == BarNone {
		return 0
	}
	if total <= 0 {
		return EndLevel(direction)
	}
	done := float64(total-remaining) / float64(total)
	if done < 0 {
		done = 0
	}
	if done > 1 {
		done = 1
	}
	if direction == BarDrain {
		return 1 - done
	}
	return done
}
