package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/chat"
	"github.com/abhisek/vidya/internal/session"
	"github.com/abhisek/vidya/internal/ui/layout"
	"github.com/abhisek/vidya/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	var body string
	switch s.snap.State {
	case session.StateChatting:
		body = s.renderChat(width, height-3)
	case session.StateQuizLoading:
		body = s.renderLoading(width)
	case session.StateQuizzing:
		body = s.renderQuiz(width)
	case session.StateResult:
		body = s.renderResult(width)
	default:
		if s.pending == 0 {
			body = layout.Centered("\n\n"+s.noticeOr("Lesson closed."), theme.TextDim, width)
		} else {
			body = s.renderLoading(width)
		}
	}
	return s.renderInfoLine(width) + "\n" + body
}

// renderInfoLine renders the lesson title bar with the language and grade.
func (s *LessonScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s %s", s.lesson.Subject.Icon(), s.lesson.Title))

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s  ·  %s", s.lesson.Grade, s.lang.Label()))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line + "\n" + lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0)))
}

func (s *LessonScreen) renderLoading(width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n\n"+s.spinner.View())
}

// renderChat renders the most recent messages that fit above the input.
func (s *LessonScreen) renderChat(width, height int) string {
	bubbleWidth := min(width*2/3, 72)

	var lines []string
	for _, m := range s.snap.Messages {
		lines = append(lines, strings.Split(renderMessage(m, bubbleWidth, width), "\n")...)
	}
	if s.snap.Busy {
		lines = append(lines, "  "+s.spinner.View())
	}

	footer := []string{""}
	if s.notice != "" {
		footer = append(footer, "  "+theme.ErrorText.Render(s.notice))
	}
	footer = append(footer, "  "+lipgloss.NewStyle().Foreground(theme.Primary).Render("> ")+s.input.View())

	room := max(height-len(footer), 1)
	if len(lines) > room {
		lines = lines[len(lines)-room:]
	} else {
		for len(lines) < room {
			lines = append(lines, "")
		}
	}
	return strings.Join(append(lines, footer...), "\n")
}

func renderMessage(m chat.Message, bubbleWidth, width int) string {
	if m.Author == chat.AuthorLearner {
		bubble := theme.LearnerBubble.Width(bubbleWidth).Render(m.Text)
		return lipgloss.PlaceHorizontal(width-2, lipgloss.Right, bubble)
	}

	out := "  " + strings.ReplaceAll(theme.TutorBubble.Width(bubbleWidth).Render(m.Text), "\n", "\n  ")
	if m.VisualKeyword != "" {
		out += "\n  " + theme.Hint.Render("🖼  "+m.VisualKeyword)
	}
	return out
}

func (s *LessonScreen) renderQuiz(width int) string {
	q := s.snap.Quiz
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	progress := fmt.Sprintf("Question %d of %d   %s %d", q.Index+1, q.Total,
		theme.Correct.Render("✓"), q.Correct)
	b.WriteString(layout.Centered(progress, theme.TextDim, width))
	b.WriteString("\n")
	if s.snap.QuizFallback {
		b.WriteString(layout.Centered("We couldn't make a new quiz, so here is a practice question.", theme.Warning, width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	block := lipgloss.NewStyle().Width(min(width-8, 70)).Render(s.mc.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	b.WriteString("\n")

	if q.Answered {
		if q.SelectionCorrect() {
			b.WriteString(layout.Centered("Correct!", theme.Success, width))
		} else {
			b.WriteString(layout.Centered("Not quite", theme.Error, width))
		}
		b.WriteString("\n")
		if exp := q.Question.Explanation; exp != "" {
			expBlock := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(exp)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, expBlock))
			b.WriteString("\n")
		}
		next := "Press Enter for the next question"
		if q.IsLast {
			next = "Press Enter to see your score"
		}
		b.WriteString("\n")
		b.WriteString(layout.Centered(next, theme.TextDim, width))
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(s.notice, theme.Error, width))
	}
	return b.String()
}

func (s *LessonScreen) renderResult(width int) string {
	r := s.snap.Result
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(layout.Centered("Quiz complete!", theme.Accent, width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(fmt.Sprintf("You got %d of %d right (%d%%)", r.Correct, r.Total, r.Score), theme.Text, width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(catalog.StarString(catalog.StarsFor(r.Score)), theme.Highlight, width))
	b.WriteString("\n\n")

	if out := s.outcome; out != nil {
		if out.XP > 0 {
			b.WriteString(layout.Centered(fmt.Sprintf("+%d XP", out.XP), theme.Success, width))
			b.WriteString("\n")
		}
		if out.Improved {
			b.WriteString(layout.Centered("New best for this lesson!", theme.Accent, width))
			b.WriteString("\n")
		}
		if out.Unlocked != nil {
			b.WriteString(layout.Centered(fmt.Sprintf("Unlocked: %s %s", out.Unlocked.Subject.Icon(), out.Unlocked.Title), theme.Secondary, width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(layout.Centered("Enter: back to your path   R: try again", theme.TextDim, width))
	return b.String()
}

func (s *LessonScreen) noticeOr(fallback string) string {
	if s.notice != "" {
		return s.notice
	}
	return fallback
}
