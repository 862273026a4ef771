// Package content generates lesson material with a language model: intros,
// tutoring replies, quizzes, class insights and curriculum drafts.
package content

import (
	"context"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/chat"
	"github.com/abhisek/vidya/internal/quiz"
)

// Provider is the capability the tutoring session depends on. Any method
// may fail or return malformed output; callers degrade to fixed fallbacks.
type Provider interface {
	// GenerateIntro returns a short opening message for a lesson.
	GenerateIntro(ctx context.Context, topic, grade string, lang catalog.Language) (string, error)

	// GenerateReply answers newText given the prior conversation.
	GenerateReply(ctx context.Context, history []chat.Message, newText, topic, grade string, lang catalog.Language) (Reply, error)

	// GenerateQuiz returns multiple-choice questions about topic, in order.
	// The questions are not sanitized.
	GenerateQuiz(ctx context.Context, topic, grade string) ([]quiz.Question, error)

	// GenerateInsight summarizes class performance for a teacher.
	GenerateInsight(ctx context.Context, rows []catalog.StudentProgress) (string, error)

	// GenerateCurriculum drafts a weekly topic plan for a grade and subject.
	GenerateCurriculum(ctx context.Context, grade string, subject catalog.Subject) ([]CurriculumTopic, error)
}

// Reply is the tutor's answer to a learner message.
type Reply struct {
	Text          string
	VisualKeyword string
}

// CurriculumTopic is one week of a drafted curriculum.
type CurriculumTopic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Week        int    `json:"week"`
}

// CurriculumTopicCount is the number of topics requested per draft.
const CurriculumTopicCount = 5
