package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/vidya/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the terminal app",
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("no-welcome")
		return runApp(cmd, skip)
	},
}

func init() {
	runCmd.Flags().Bool("no-welcome", false, "Start at the login screen")
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command, skipWelcome bool) error {
	d, err := buildDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close(context.Background())

	if err := app.Run(app.Options{
		Orchestrator: d.orch,
		Language:     d.cfg.DefaultLanguage(),
		SkipWelcome:  skipWelcome,
		Logger:       d.logger,
	}); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}
