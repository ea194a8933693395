package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"innervation/internal/catalog"
	"innervation/internal/ui/tui"
)

func init() {
	rootCmd.AddCommand(routinesCmd)
}

var routinesCmd = &cobra.Command{
	Use:   "routines [section]",
	Short: "List sections, or the routines of one section",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Default()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		styles := tui.DefaultStyles()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			fmt.Fprint(out, tui.RenderSections(cat.Sections(), styles))
			fmt.Fprintf(out, "%s  %s\n", styles.Step.Render("mudras"), catalog.MudraSectionName)
			return nil
		}

		section, err := cat.Section(args[0])
		if err != nil {
			return fmt.Errorf("%q: %w", args[0], err)
		}
		fmt.Fprint(out, tui.RenderRoutines(section, styles))
		return nil
	},
}
