package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"innervation/internal/catalog"
	"innervation/internal/core/model"
	"innervation/internal/core/routine"
	"innervation/internal/core/sequencer"
	"innervation/internal/ui/tui"
)

var (
	playSeconds int
	playRest    int
	playRounds  int
	playCount   int
	playQuiet   bool
)

func init() {
	playCmd.Flags().IntVar(&playSeconds, "seconds", 0, "Seconds per step (default: from settings)")
	playCmd.Flags().IntVar(&playRest, "rest", -1, "Rest seconds between steps, 0 disables rest (default: from settings)")
	playCmd.Flags().IntVar(&playRounds, "rounds", 0, "Rounds through the routine (default: from settings)")
	playCmd.Flags().IntVar(&playCount, "count", 0, "Steps in a custom or mudra session")
	playCmd.Flags().BoolVar(&playQuiet, "quiet", false, "Do not ring the bell at phase changes")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <section> [routine]",
	Short: "Play a routine in the terminal",
	Long: `Play a routine in the terminal. The routine is a key from "innervation routines
<section>", "custom" for a random sequence, or "random" (the default) for one of
the section's routines. Use "mudras" as the section for a mudra session.

Keys: space pauses and resumes, r restarts, q quits.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnvironment()
		if err != nil {
			return err
		}
		defer env.Close()

		cat, err := catalog.Default()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		routineArg := ""
		if len(args) > 1 {
			routineArg = args[1]
		}
		choice, err := resolveRoutine(cat, env.settings, args[0], routineArg, playCount, newRand())
		if err != nil {
			return err
		}
		choice.config = overrideConfig(choice.config)

		seq := sequencer.New(sequencer.RealClock{}, logger)
		defer seq.Close()

		summaries := make(chan routine.Summary, 1)
		controller := routine.New(seq, env.tracker,
			routine.WithCue(newBellCue(os.Stderr, env.settings.AudioEnabled && !playQuiet)),
			routine.WithLogger(logger),
			routine.WithCompletion(func(summary routine.Summary) {
				select {
				case summaries <- summary:
				default:
				}
			}),
		)
		if !controller.Load(choice.section, choice.routineKey, choice.routineName, choice.steps, choice.config) {
			return fmt.Errorf("%s has no steps", choice.routineName)
		}

		title := fmt.Sprintf("%s · %s", choice.section, choice.routineName)
		final, err := tea.NewProgram(tui.NewPlayer(controller, summaries, title)).Run()
		controller.Stop()
		if err != nil {
			return fmt.Errorf("run player: %w", err)
		}
		if summary, ok := final.(tui.Player).Summary(); ok {
			logger.Info("session recorded",
				zap.String("routine", summary.Routine),
				zap.Int("seconds", summary.Seconds))
		}
		return nil
	},
}

// overrideConfig applies the timing flags that were set.
func overrideConfig(config model.SequenceConfig) model.SequenceConfig {
	if playSeconds > 0 {
		config.SecondsPerStep = playSeconds
	}
	if playRest >= 0 {
		config.RestSeconds = playRest
	}
	if playRounds > 0 {
		config.Rounds = playRounds
	}
	return config.Normalize()
}
