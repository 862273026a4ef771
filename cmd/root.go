package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vidya",
	Short: "Multilingual AI tutor for primary school learners",
	Long:  "Vidya is a terminal tutor that teaches short lessons in English, Tamil or Hindi, quizzes the learner and tracks progress along a lesson path.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default $XDG_CONFIG_HOME/vidya/config.yaml)")
	pf.String("log-file", "", "Write JSON logs to this file (rotated)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("trace-file", "", "Export OpenTelemetry spans to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(tutorCmd)
	rootCmd.AddCommand(insightCmd)
	rootCmd.AddCommand(curriculumCmd)
	rootCmd.AddCommand(versionCmd)
}
