package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"innervation/internal/core/tracker"
	"innervation/internal/ui/stats"
	"innervation/internal/ui/tui"
)

var clearConfirmed bool

func init() {
	clearCmd.Flags().BoolVar(&clearConfirmed, "yes", false, "Confirm deleting all recorded practice")
	rootCmd.AddCommand(statsCmd, exportCmd, importCmd, clearCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnvironment()
		if err != nil {
			return err
		}
		defer env.Close()

		fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(stats.Build(env.tracker), tui.DefaultStyles()))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the practice log to a JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnvironment()
		if err != nil {
			return err
		}
		defer env.Close()

		path := tracker.ExportFileName(time.Now())
		if len(args) == 1 {
			path = args[0]
		}
		data, err := env.tracker.Export()
		if err != nil {
			return fmt.Errorf("export practice log: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d movements to %s\n", len(env.tracker.Events()), path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the practice log with an exported file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnvironment()
		if err != nil {
			return err
		}
		defer env.Close()

		payload, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import: %w", err)
		}
		if err := env.tracker.Import(payload); err != nil {
			logger.Warn("import rejected", zap.String("file", args[0]), zap.Error(err))
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d movements\n", len(env.tracker.Events()))
		return nil
	},
}

var errClearNotConfirmed = errors.New("refusing to clear without --yes")

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded practice",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearConfirmed {
			return errClearNotConfirmed
		}
		env, err := openEnvironment()
		if err != nil {
			return err
		}
		defer env.Close()

		env.tracker.ClearAll()
		fmt.Fprintln(cmd.OutOrStdout(), "Practice log cleared")
		return nil
	},
}
