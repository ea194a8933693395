package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   SequenceConfig
		want SequenceConfig
	}{
		{"zero value uses defaults", SequenceConfig{}, SequenceConfig{SecondsPerStep: 45, RestSeconds: 0, Rounds: 2}},
		{"short step is raised to minimum", SequenceConfig{SecondsPerStep: 2, RestSeconds: 1, Rounds: 1}, SequenceConfig{SecondsPerStep: 5, RestSeconds: 1, Rounds: 1}},
		{"negative values", SequenceConfig{SecondsPerStep: -10, RestSeconds: -1, Rounds: -3}, SequenceConfig{SecondsPerStep: 45, RestSeconds: 0, Rounds: 1}},
		{"negative rest clamps to zero", SequenceConfig{SecondsPerStep: 30, RestSeconds: -2, Rounds: 3}, SequenceConfig{SecondsPerStep: 30, RestSeconds: 0, Rounds: 3}},
		{"negative rounds clamp to one", SequenceConfig{SecondsPerStep: 30, RestSeconds: 2, Rounds: -3}, SequenceConfig{SecondsPerStep: 30, RestSeconds: 2, Rounds: 1}},
		{"zero rounds uses default", SequenceConfig{SecondsPerStep: 30, RestSeconds: 2, Rounds: 0}, SequenceConfig{SecondsPerStep: 30, RestSeconds: 2, Rounds: 2}},
		{"valid config untouched", SequenceConfig{SecondsPerStep: 30, RestSeconds: 5, Rounds: 4}, SequenceConfig{SecondsPerStep: 30, RestSeconds: 5, Rounds: 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestTotalSeconds(t *testing.T) {
	config := SequenceConfig{SecondsPerStep: 5, RestSeconds: 2, Rounds: 2}
	assert.Equal(t, 42, config.TotalSeconds(3))

	config.RestSeconds = 0
	assert.Equal(t, 30, config.TotalSeconds(3))
	assert.Equal(t, 0, config.TotalSeconds(0))
}
