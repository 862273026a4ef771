package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vidya/internal/analytics"
	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/orchestrator"
)

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Print the class report and an AI insight for the teacher",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close(context.Background())

		return classInsight(cmd.Context(), cmd.OutOrStdout(), d.orch)
	},
}

// classInsight signs in as the teacher and prints the class report
// followed by the generated insight.
func classInsight(ctx context.Context, w io.Writer, orch *orchestrator.Orchestrator) error {
	if _, err := orch.Login(catalog.RoleTeacher); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer orch.Logout()

	report, err := orch.ClassReport()
	if err != nil {
		return err
	}
	printReport(w, report)

	text, err := orch.ClassInsight(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Insight:", text)
	return nil
}

func printReport(w io.Writer, r analytics.Report) {
	rule := strings.Repeat("─", 48)

	fmt.Fprintf(w, "Class of %d · attendance %.0f%%\n", r.Students, r.Attendance)
	fmt.Fprintln(w, rule)
	for _, c := range r.Heatmap {
		fmt.Fprintf(w, "%-20s  %3d  %s\n", truncate(c.Name, 20), c.Value, c.Band)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subject averages")
	fmt.Fprintln(w, rule)
	for _, s := range r.Subjects {
		fmt.Fprintf(w, "%-20s  %5.1f\n", s.Subject, s.Average)
	}

	if len(r.LowPerformers) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Needs attention")
		fmt.Fprintln(w, rule)
		for _, p := range r.LowPerformers {
			fmt.Fprintf(w, "%-20s  math %d · english %d\n", truncate(p.StudentName, 20), p.MathScore, p.EnglishScore)
		}
	}
}
