package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"innervation/internal/catalog"
	"innervation/internal/core/breath"
	"innervation/internal/core/model"
	"innervation/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	SecondsPerStep      int    `yaml:"seconds_per_step"`
	RestSeconds         *int   `yaml:"rest_seconds"`
	Rounds              int    `yaml:"rounds"`
	AudioEnabled        *bool  `yaml:"audio_enabled"`
	StorageBackend      string `yaml:"storage_backend"`
	DataDir             string `yaml:"data_dir,omitempty"`
	NostrilPhaseSeconds int    `yaml:"nostril_phase_seconds"`
	HyperSpeed          string `yaml:"hyper_speed"`
	HyperRounds         int    `yaml:"hyper_rounds"`
	HyperBreaths        int    `yaml:"hyper_breaths"`
	MudraCount          int    `yaml:"mudra_count"`
	MudraSeconds        int    `yaml:"mudra_seconds"`
	MudraRest           *int   `yaml:"mudra_rest"`
}

// LoadSettings reads user preferences from YAML in configDir.
// If the config file does not exist, default settings are returned.
func LoadSettings(configDir string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath := filepath.Join(configDir, settingsFileName)

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML in configDir.
func SaveSettings(configDir string, settings preferences.Settings) error {
	configPath := filepath.Join(configDir, settingsFileName)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	rest := settings.RestSeconds
	audio := settings.AudioEnabled
	mudraRest := settings.MudraRest
	fileData := yamlSettings{
		SecondsPerStep:      settings.SecondsPerStep,
		RestSeconds:         &rest,
		Rounds:              settings.Rounds,
		AudioEnabled:        &audio,
		StorageBackend:      settings.StorageBackend,
		DataDir:             settings.DataDir,
		NostrilPhaseSeconds: settings.NostrilPhaseSeconds,
		HyperSpeed:          string(settings.HyperSpeed),
		HyperRounds:         settings.HyperRounds,
		HyperBreaths:        settings.HyperBreaths,
		MudraCount:          settings.MudraCount,
		MudraSeconds:        settings.MudraSeconds,
		MudraRest:           &mudraRest,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// applyYamlSettings ignores values outside the ranges the players accept.
func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.SecondsPerStep >= model.MinSecondsPerStep {
		settings.SecondsPerStep = fileData.SecondsPerStep
	}
	if fileData.RestSeconds != nil && *fileData.RestSeconds >= 0 {
		settings.RestSeconds = *fileData.RestSeconds
	}
	if fileData.Rounds >= 1 {
		settings.Rounds = fileData.Rounds
	}
	if fileData.AudioEnabled != nil {
		settings.AudioEnabled = *fileData.AudioEnabled
	}

	switch fileData.StorageBackend {
	case preferences.BackendFile, preferences.BackendSQLite:
		settings.StorageBackend = fileData.StorageBackend
	}
	settings.DataDir = fileData.DataDir

	if fileData.NostrilPhaseSeconds > 0 {
		settings.NostrilPhaseSeconds = fileData.NostrilPhaseSeconds
	}
	if speed, ok := breath.ParseSpeed(fileData.HyperSpeed); ok {
		settings.HyperSpeed = speed
	}
	if fileData.HyperRounds >= breath.MinHyperRounds && fileData.HyperRounds <= breath.MaxHyperRounds {
		settings.HyperRounds = fileData.HyperRounds
	}
	if fileData.HyperBreaths >= breath.MinBreaths && fileData.HyperBreaths <= breath.MaxBreaths {
		settings.HyperBreaths = fileData.HyperBreaths
	}

	if fileData.MudraCount >= 1 && fileData.MudraCount <= catalog.MudraTotal {
		settings.MudraCount = fileData.MudraCount
	}
	if fileData.MudraSeconds >= catalog.MinMudraSeconds && fileData.MudraSeconds <= catalog.MaxMudraSeconds {
		settings.MudraSeconds = fileData.MudraSeconds
	}
	if fileData.MudraRest != nil && *fileData.MudraRest >= 0 && *fileData.MudraRest <= catalog.MaxMudraRest {
		settings.MudraRest = *fileData.MudraRest
	}
}
