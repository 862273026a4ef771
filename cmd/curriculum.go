package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/content"
	"github.com/abhisek/vidya/internal/orchestrator"
)

var curriculumCmd = &cobra.Command{
	Use:   "curriculum",
	Short: "Draft a weekly curriculum for a grade and subject as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, _ := cmd.Flags().GetString("grade")
		subjectFlag, _ := cmd.Flags().GetString("subject")

		subject, ok := catalog.ParseSubject(subjectFlag)
		if !ok {
			return fmt.Errorf("unknown subject %q", subjectFlag)
		}

		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close(context.Background())

		return draftCurriculum(cmd.Context(), cmd.OutOrStdout(), d.orch, grade, subject)
	},
}

func init() {
	curriculumCmd.Flags().String("grade", "Class 3", "Grade to plan for")
	curriculumCmd.Flags().String("subject", string(catalog.SubjectMath), "Subject: Math, English, Tamil or Hindi")
}

// curriculumJSON is the printed form of a draft.
type curriculumJSON struct {
	Grade    string                    `json:"grade"`
	Subject  string                    `json:"subject"`
	FellBack bool                      `json:"fellBack"`
	Topics   []content.CurriculumTopic `json:"topics"`
}

// draftCurriculum signs in as the administrator and prints the draft.
func draftCurriculum(ctx context.Context, w io.Writer, orch *orchestrator.Orchestrator, grade string, subject catalog.Subject) error {
	if _, err := orch.Login(catalog.RoleAdmin); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer orch.Logout()

	draft, err := orch.DraftCurriculum(ctx, grade, subject)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(curriculumJSON{
		Grade:    draft.Grade,
		Subject:  string(draft.Subject),
		FellBack: draft.FellBack,
		Topics:   draft.Topics,
	})
}
