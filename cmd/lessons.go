package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vidya/internal/catalog"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "Print the lesson path",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		printLessons(cmd.OutOrStdout(), catalog.SeedPath())
		return nil
	},
}

// printLessons writes the path grouped by grade, one lesson per line.
func printLessons(w io.Writer, path *catalog.Path) {
	for i, grade := range path.Grades() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, grade)
		fmt.Fprintln(w, strings.Repeat("─", 60))
		for _, l := range path.ByGrade(grade) {
			stars := ""
			if l.Completed {
				stars = catalog.StarString(l.Stars)
			}
			fmt.Fprintf(w, "%s  %-8s  %-28s  %-8s  %s\n",
				l.StatusIcon(), l.ID, truncate(l.Title, 28), l.Subject, stars)
		}
	}

	completed, stars := path.Progress()
	fmt.Fprintf(w, "\n%d of %d lessons completed, %d stars earned\n", completed, path.Len(), stars)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
