package main

import (
	"fmt"

	"go.uber.org/zap"

	"innervation/internal/core/tracker"
	"innervation/internal/platform"
	"innervation/internal/storage"
	"innervation/internal/ui/preferences"
)

// environment is the settings and practice log shared by every command.
type environment struct {
	configDir string
	settings  preferences.Settings
	store     storage.BlobStore
	tracker   *tracker.Tracker
}

func openEnvironment() (*environment, error) {
	configDir, err := platform.ConfigDir(appName, configDirFlag)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	settings, err := storage.LoadSettings(configDir)
	if err != nil {
		logger.Warn("settings unreadable, using defaults", zap.Error(err))
	}
	if backendFlag != "" {
		settings.StorageBackend = backendFlag
	}

	store, err := storage.OpenBlobStore(settings, configDir, tracker.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("open practice log: %w", err)
	}
	logger.Debug("environment ready",
		zap.String("config_dir", configDir),
		zap.String("backend", settings.StorageBackend))

	return &environment{
		configDir: configDir,
		settings:  settings,
		store:     store,
		tracker:   tracker.New(store, tracker.WithLogger(logger)),
	}, nil
}

func (env *environment) saveSettings(settings preferences.Settings) {
	env.settings = settings
	if err := storage.SaveSettings(env.configDir, settings); err != nil {
		logger.Warn("save settings failed", zap.Error(err))
	}
}

func (env *environment) Close() {
	if err := env.store.Close(); err != nil {
		logger.Warn("close practice log", zap.Error(err))
	}
}
