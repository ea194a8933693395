package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"innervation/internal/catalog"
	"innervation/internal/core/breath"
	"innervation/internal/core/routine"
	"innervation/internal/core/sequencer"
	"innervation/internal/platform"
	"innervation/internal/ui/breathe"
	"innervation/internal/ui/player"
	"innervation/internal/ui/preferences"
	"innervation/internal/ui/stats"
	"innervation/internal/ui/tray"
	"innervation/resources"
)

func init() {
	rootCmd.AddCommand(guiCmd)
}

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the desktop player (default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGUI()
	},
}

func runGUI() error {
	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("already running, activating existing instance")
		if err := platform.ActivateRunning(appName); err != nil {
			return fmt.Errorf("activate running instance: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	settings := env.settings
	rng := newRand()
	cue := newBellCue(os.Stderr, settings.AudioEnabled)

	seq := sequencer.New(sequencer.RealClock{}, logger)
	defer seq.Close()

	var playerWindow *player.Window
	controller := routine.New(seq, env.tracker,
		routine.WithCue(cue),
		routine.WithLogger(logger),
		routine.WithCompletion(func(summary routine.Summary) {
			playerWindow.ShowSummary(summary)
		}),
	)
	playerWindow = player.New(fyneApp, controller)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	playerWindow.Listen(ctx)

	breathWindow := breathe.New(fyneApp, env.tracker, cue)
	statsWindow := stats.New(fyneApp, env.tracker, logger)
	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		env.saveSettings(updated)
		cue.SetEnabled(updated.AudioEnabled)
		if section, _, loaded := controller.Loaded(); loaded {
			if section == catalog.MudraSectionName {
				controller.UpdateConfig(updated.MudraConfig())
			} else {
				controller.UpdateConfig(updated.SequenceConfig())
			}
		}
	})

	play := func(sectionArg, routineArg string) {
		choice, err := resolveRoutine(cat, settings, sectionArg, routineArg, 0, rng)
		if err != nil {
			logger.Warn("routine unavailable", zap.String("section", sectionArg), zap.String("routine", routineArg), zap.Error(err))
			return
		}
		breathWindow.Stop()
		if !controller.Load(choice.section, choice.routineKey, choice.routineName, choice.steps, choice.config) {
			return
		}
		playerWindow.Open()
		controller.Start()
	}

	trayManager := tray.New(desktopApp, cat.Sections(), tray.Callbacks{
		OnRoutine: play,
		OnCustom: func(sectionKey string) {
			play(sectionKey, catalog.CustomKey)
		},
		OnMudras: func() {
			play(catalog.MudraSectionName, "")
		},
		OnNostril: func(pattern breath.Pattern) {
			playerWindow.Hide()
			breathWindow.StartNostril(pattern, settings.NostrilPhaseSeconds)
		},
		OnHyper: func() {
			playerWindow.Hide()
			breathWindow.StartHyper(settings.HyperConfig())
		},
		OnTogglePause: controller.TogglePause,
		OnStop:        playerWindow.Hide,
		OnStatistics:  statsWindow.Show,
		OnPreferences: prefsWindow.Show,
		OnQuit: func() {
			controller.Stop()
			breathWindow.Stop()
			fyneApp.Quit()
		},
	})
	desktopApp.SetSystemTrayIcon(resources.MustIcon())

	go followStatus(seq.Subscribe(8), controller, trayManager)

	guard.Serve(func() {
		fyne.Do(statsWindow.Show)
	})

	statsWindow.Show()
	fyneApp.Run()
	return nil
}

// followStatus mirrors sequencer state into the tray menu.
func followStatus(events <-chan sequencer.Event, controller *routine.Controller, trayManager *tray.Manager) {
	for range events {
		state := controller.Sequencer().State()
		_, name, _ := controller.Loaded()
		active := state.Phase == sequencer.PhaseMove || state.Phase == sequencer.PhaseRest
		status := "idle"
		switch {
		case active:
			status = fmt.Sprintf("%s · %s", name, player.PhaseText(state))
		case state.Phase == sequencer.PhaseComplete:
			status = fmt.Sprintf("%s complete", name)
		}
		fyne.Do(func() {
			trayManager.SetRunning(active, active && !state.Running)
			trayManager.SetStatus(status)
		})
	}
}
