package catalog

import (
	"fmt"
	"math/rand/v2"

	"innervation/internal/core/model"
)

// Mudra limits and defaults.
const (
	MudraSectionName  = "Mudras"
	MudraTotal        = 45
	DefaultMudraCount = 3
	MinMudraSeconds   = 5
	MaxMudraSeconds   = 300
	MaxMudraRest      = 120
)

// MudraFiles lists 1.svg through 45.svg.
func MudraFiles() []string {
	files := make([]string, MudraTotal)
	for i := range files {
		files[i] = fmt.Sprintf("%d.svg", i+1)
	}
	return files
}

// MudraSequence draws count distinct mudras, clamped to [1, 45]. Labels
// follow play order, not the file number.
func MudraSequence(count int, rng *rand.Rand) []model.Step {
	count = max(1, min(count, MudraTotal))

	files := MudraFiles()
	rng.Shuffle(len(files), func(i, j int) {
		files[i], files[j] = files[j], files[i]
	})

	steps := make([]model.Step, 0, count)
	for i, file := range files[:count] {
		steps = append(steps, model.Step{ID: file, Label: fmt.Sprintf("Mudra %d", i+1)})
	}
	return steps
}

// MudraConfig returns the timing of a mudra session: one pass, seconds in
// [5, 300] (45 when unset) and rest in [0, 120].
func MudraConfig(seconds, rest int) model.SequenceConfig {
	if seconds <= 0 {
		seconds = model.DefaultSecondsPerStep
	}
	return model.SequenceConfig{
		SecondsPerStep: max(MinMudraSeconds, min(seconds, MaxMudraSeconds)),
		RestSeconds:    max(0, min(rest, MaxMudraRest)),
		Rounds:         1,
	}
}
