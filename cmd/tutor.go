package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/chat"
	"github.com/abhisek/vidya/internal/orchestrator"
	"github.com/abhisek/vidya/internal/session"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Take a lesson line by line in the terminal",
	Long: `Take a lesson without the full-screen app. Type to chat with the tutor,
/quiz to start the quiz, an option number to answer, /next to move on and
/exit to leave. Token usage and estimated cost are printed at exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lessonID, _ := cmd.Flags().GetString("lesson")
		langFlag, _ := cmd.Flags().GetString("lang")

		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close(context.Background())

		lang := d.cfg.DefaultLanguage()
		if langFlag != "" {
			l, ok := catalog.ParseLanguage(langFlag)
			if !ok {
				return fmt.Errorf("unknown language %q (want en, ta or hi)", langFlag)
			}
			lang = l
		}

		out := cmd.OutOrStdout()
		t := &tutor{orch: d.orch, out: out}
		if err := t.run(cmd.Context(), lessonID, lang, cmd.InOrStdin()); err != nil {
			return err
		}

		fmt.Fprintln(out)
		return printUsage(cmd.Context(), out, d.events)
	},
}

func init() {
	tutorCmd.Flags().String("lesson", "", "Lesson ID to take (default: the next open lesson)")
	tutorCmd.Flags().String("lang", "", "Lesson language: en, ta or hi (default from config)")
}

const tutorHelp = "Commands: /quiz  1-4 (answer)  /next  /help  /exit"

// tutor drives one lesson through the orchestrator from line input.
type tutor struct {
	orch  *orchestrator.Orchestrator
	out   io.Writer
	shown int // chat messages already considered for printing
}

// run signs in as the student, opens the lesson and processes input
// until /exit or end of input.
func (t *tutor) run(ctx context.Context, lessonID string, lang catalog.Language, in io.Reader) error {
	if _, err := t.orch.Login(catalog.RoleStudent); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer t.orch.Logout()

	if lessonID == "" {
		lessonID = nextOpenLesson(t.orch.Lessons())
	}
	if err := t.orch.StartLesson(ctx, lessonID, lang); err != nil {
		return fmt.Errorf("start lesson: %w", err)
	}

	snap := t.orch.Snapshot().Session
	if snap.Lesson != nil {
		fmt.Fprintf(t.out, "%s %s · %s · %s\n", snap.Lesson.Subject.Icon(), snap.Lesson.Title, snap.Lesson.Grade, lang.DisplayName())
	}
	fmt.Fprintln(t.out, tutorHelp)
	fmt.Fprintln(t.out)
	t.printMessages(snap.Messages)

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(t.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(t.out)
			break
		}
		done, err := t.handle(ctx, strings.TrimSpace(sc.Text()))
		if err != nil {
			fmt.Fprintln(t.out, "!", err)
			continue
		}
		if done {
			break
		}
	}
	return sc.Err()
}

// handle executes one input line and reports whether the learner is done.
func (t *tutor) handle(ctx context.Context, line string) (bool, error) {
	switch line {
	case "":
		return false, nil
	case "/exit", "/quit":
		return true, nil
	case "/help":
		fmt.Fprintln(t.out, tutorHelp)
		return false, nil
	case "/quiz":
		if err := t.orch.StartQuiz(ctx); err != nil {
			return false, err
		}
		t.printQuestion()
		return false, nil
	case "/next":
		return false, t.next()
	}

	snap := t.orch.Snapshot().Session
	if snap.State == session.StateQuizzing {
		n, err := strconv.Atoi(line)
		if err != nil {
			return false, fmt.Errorf("answer with an option number")
		}
		return false, t.answer(n - 1)
	}

	if err := t.orch.SendMessage(ctx, line); err != nil {
		return false, err
	}
	snap = t.orch.Snapshot().Session
	t.printMessages(snap.Messages)
	if snap.State == session.StateQuizzing {
		t.printQuestion()
	}
	return false, nil
}

func (t *tutor) answer(index int) error {
	recorded, err := t.orch.SelectOption(index)
	if err != nil {
		return err
	}
	v := t.orch.Snapshot().Session.Quiz
	if v == nil {
		return nil
	}
	if !recorded {
		fmt.Fprintln(t.out, "Already answered.")
	}
	if v.SelectionCorrect() {
		fmt.Fprintln(t.out, "✓ Correct!")
	} else {
		fmt.Fprintf(t.out, "✗ Not quite. The answer is %s.\n", v.Question.Options[v.Question.CorrectIndex])
	}
	if v.Question.Explanation != "" {
		fmt.Fprintln(t.out, " ", v.Question.Explanation)
	}
	if v.IsLast {
		fmt.Fprintln(t.out, "Type /next to see your result.")
	} else {
		fmt.Fprintln(t.out, "Type /next for the next question.")
	}
	return nil
}

func (t *tutor) next() error {
	outcome, err := t.orch.Advance()
	if err != nil {
		return err
	}
	if outcome == nil {
		t.printQuestion()
		return nil
	}

	r := outcome.Result
	fmt.Fprintln(t.out)
	fmt.Fprintf(t.out, "You got %d of %d right (%d%%)  %s  +%d XP\n",
		r.Correct, r.Total, r.Score, catalog.StarString(catalog.StarsFor(r.Score)), outcome.XP)
	if outcome.Improved {
		fmt.Fprintln(t.out, "New best for", outcome.Lesson.Title+"!")
	}
	if outcome.Unlocked != nil {
		fmt.Fprintln(t.out, "Unlocked:", outcome.Unlocked.Title)
	}
	fmt.Fprintln(t.out, "Type /exit to finish.")
	return nil
}

// printMessages prints tutor messages not yet shown. Learner messages
// are skipped since they echo the input.
func (t *tutor) printMessages(msgs []chat.Message) {
	for _, m := range msgs[min(t.shown, len(msgs)):] {
		if m.Author != chat.AuthorTutor {
			continue
		}
		fmt.Fprintln(t.out, "Tutor:", m.Text)
		if m.VisualKeyword != "" {
			fmt.Fprintf(t.out, "  [picture: %s]\n", m.VisualKeyword)
		}
	}
	t.shown = len(msgs)
}

func (t *tutor) printQuestion() {
	snap := t.orch.Snapshot().Session
	v := snap.Quiz
	if v == nil {
		return
	}
	if snap.QuizFallback && v.Index == 0 {
		fmt.Fprintln(t.out, "(The tutor could not write a quiz, so here is a practice question.)")
	}
	fmt.Fprintf(t.out, "\nQuestion %d of %d: %s\n", v.Index+1, v.Total, v.Question.Prompt)
	for i, opt := range v.Question.Options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
	}
}

// nextOpenLesson returns the first unlocked lesson not yet completed,
// falling back to the first unlocked one.
func nextOpenLesson(lessons []catalog.Lesson) string {
	first := ""
	for _, l := range lessons {
		if l.Locked {
			continue
		}
		if !l.Completed {
			return l.ID
		}
		if first == "" {
			first = l.ID
		}
	}
	return first
}
