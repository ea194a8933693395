package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	appName = "innervation"
	appID   = "com.innervation.app"
)

var (
	verbose       bool
	configDirFlag string
	backendFlag   string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Innervation - guided movement, eye, mudra and breathwork routines",
	Long: `Innervation plays timed practice routines step by step and keeps a local
log of the time spent on every movement.

Run without arguments to open the desktop player in the system tray.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		built, err := config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		logger = built
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGUI()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Settings directory (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Practice log backend: file or sqlite (default: from settings)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
