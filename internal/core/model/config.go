package model

// Default routine timing used when a value is missing or invalid.
const (
	DefaultSecondsPerStep = 45
	DefaultRestSeconds    = 3
	DefaultRounds         = 2

	MinSecondsPerStep = 5
)

// Step is one unit of practice: a movement, gaze or breath phase.
type Step struct {
	ID    string
	Label string
}

// SequenceConfig defines the timing of a routine.
type SequenceConfig struct {
	SecondsPerStep int
	RestSeconds    int
	Rounds         int
}

// DefaultSequenceConfig returns the routine defaults.
func DefaultSequenceConfig() SequenceConfig {
	return SequenceConfig{
		SecondsPerStep: DefaultSecondsPerStep,
		RestSeconds:    DefaultRestSeconds,
		Rounds:         DefaultRounds,
	}
}

// Normalize clamps the config to safe values. It never fails.
//
// SecondsPerStep: non-positive -> 45, otherwise at least 5.
// RestSeconds: at least 0, zero disables the rest phase.
// Rounds: zero -> 2, otherwise at least 1.
func (config SequenceConfig) Normalize() SequenceConfig {
	if config.SecondsPerStep <= 0 {
		config.SecondsPerStep = DefaultSecondsPerStep
	}
	if config.SecondsPerStep < MinSecondsPerStep {
		config.SecondsPerStep = MinSecondsPerStep
	}
	config.RestSeconds = max(0, config.RestSeconds)
	if config.Rounds == 0 {
		config.Rounds = DefaultRounds
	}
	config.Rounds = max(1, config.Rounds)
	return config
}

// TotalSeconds returns the nominal length of a full run over stepCount steps.
func (config SequenceConfig) TotalSeconds(stepCount int) int {
	if stepCount <= 0 {
		return 0
	}
	perStep := config.SecondsPerStep
	if config.RestSeconds > 0 {
		perStep += config.RestSeconds
	}
	return perStep * stepCount * config.Rounds
}
