package preferences

import (
	"innervation/internal/catalog"
	"innervation/internal/core/breath"
	"innervation/internal/core/model"
)

// Storage backends for the practice log.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Settings defines editable user preferences.
type Settings struct {
	SecondsPerStep int
	RestSeconds    int
	Rounds         int
	AudioEnabled   bool

	StorageBackend string
	// DataDir holds the practice log. Empty means the config directory.
	DataDir string

	NostrilPhaseSeconds int
	HyperSpeed          breath.Speed
	HyperRounds         int
	HyperBreaths        int

	MudraCount   int
	MudraSeconds int
	MudraRest    int
}

// DefaultSettings returns default settings for Innervation.
func DefaultSettings() Settings {
	return Settings{
		SecondsPerStep:      model.DefaultSecondsPerStep,
		RestSeconds:         model.DefaultRestSeconds,
		Rounds:              model.DefaultRounds,
		AudioEnabled:        true,
		StorageBackend:      BackendFile,
		NostrilPhaseSeconds: breath.DefaultPhaseSeconds,
		HyperSpeed:          breath.SpeedStandard,
		HyperRounds:         breath.DefaultHyperRounds,
		HyperBreaths:        breath.DefaultBreaths,
		MudraCount:          catalog.DefaultMudraCount,
		MudraSeconds:        model.DefaultSecondsPerStep,
		MudraRest:           model.DefaultRestSeconds,
	}
}

// SequenceConfig converts settings to the body and eye routine timing.
func (settings Settings) SequenceConfig() model.SequenceConfig {
	return model.SequenceConfig{
		SecondsPerStep: settings.SecondsPerStep,
		RestSeconds:    settings.RestSeconds,
		Rounds:         settings.Rounds,
	}.Normalize()
}

// MudraConfig converts settings to the single-pass mudra timing.
func (settings Settings) MudraConfig() model.SequenceConfig {
	return catalog.MudraConfig(settings.MudraSeconds, settings.MudraRest)
}

// HyperConfig converts settings to hyperventilation options.
func (settings Settings) HyperConfig() breath.HyperConfig {
	return breath.HyperConfig{
		Speed:   settings.HyperSpeed,
		Rounds:  settings.HyperRounds,
		Breaths: settings.HyperBreaths,
	}.Normalize()
}
