package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/chat"
	"github.com/abhisek/vidya/internal/llm"
	"github.com/abhisek/vidya/internal/quiz"
)

// Service implements Provider on top of an llm.Provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

var _ Provider = (*Service)(nil)

// NewService creates a content generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// ModelID returns the model serving content requests.
func (s *Service) ModelID() string {
	return s.provider.ModelID()
}

func (s *Service) GenerateIntro(ctx context.Context, topic, grade string, lang catalog.Language) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeIntro)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: introSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildIntroUserMessage(topic, grade, lang)},
		},
		MaxTokens:   s.cfg.Intro.MaxTokens,
		Temperature: s.cfg.Intro.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("intro generation: %w", Classify(err))
	}
	return strings.TrimSpace(resp.Text()), nil
}

func (s *Service) GenerateReply(ctx context.Context, history []chat.Message, newText, topic, grade string, lang catalog.Language) (Reply, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeReply)

	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: replyContextMessage(topic)})
	for _, m := range history {
		role := llm.RoleUser
		if m.Author == chat.AuthorTutor {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Text})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: newText})

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      buildReplySystemPrompt(topic, grade, lang),
		Messages:    msgs,
		JSONMode:    true,
		MaxTokens:   s.cfg.Reply.MaxTokens,
		Temperature: s.cfg.Reply.Temperature,
	})
	if err != nil {
		// A reply cut off at the token limit is still shown, verbatim.
		var truncated *llm.ErrMaxTokensExceeded
		if errors.As(err, &truncated) && strings.TrimSpace(string(truncated.Content)) != "" {
			return ParseReply(string(truncated.Content)), nil
		}
		return Reply{}, fmt.Errorf("reply generation: %w", Classify(err))
	}

	reply := ParseReply(resp.Text())
	if reply.Text == "" {
		return Reply{}, fmt.Errorf("reply generation: %w: empty reply", ErrMalformedResponse)
	}
	return reply, nil
}

type quizOutput struct {
	Questions []quizQuestionOutput `json:"questions"`
}

type quizQuestionOutput struct {
	ID                 int      `json:"id"`
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

func (s *Service) GenerateQuiz(ctx context.Context, topic, grade string) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizUserMessage(topic, grade, quiz.QuestionCount)},
		},
		Schema:      QuizSchema,
		MaxTokens:   s.cfg.Quiz.MaxTokens,
		Temperature: s.cfg.Quiz.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", Classify(err))
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w: %w", ErrMalformedResponse, err)
	}

	questions := make([]quiz.Question, 0, len(out.Questions))
	for _, q := range out.Questions {
		questions = append(questions, quiz.Question{
			ID:           uuid.NewString(),
			Prompt:       strings.TrimSpace(q.Question),
			Options:      q.Options,
			CorrectIndex: q.CorrectAnswerIndex,
			Explanation:  strings.TrimSpace(q.Explanation),
		})
	}
	return questions, nil
}

func (s *Service) GenerateInsight(ctx context.Context, rows []catalog.StudentProgress) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeInsight)

	userMsg, err := buildInsightUserMessage(rows)
	if err != nil {
		return "", err
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: insightSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		MaxTokens:   s.cfg.Insight.MaxTokens,
		Temperature: s.cfg.Insight.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("insight generation: %w", Classify(err))
	}
	return strings.TrimSpace(resp.Text()), nil
}

type curriculumOutput struct {
	Topics []CurriculumTopic `json:"topics"`
}

func (s *Service) GenerateCurriculum(ctx context.Context, grade string, subject catalog.Subject) ([]CurriculumTopic, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeCurriculum)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: curriculumSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCurriculumUserMessage(grade, subject, CurriculumTopicCount)},
		},
		Schema:      CurriculumSchema,
		MaxTokens:   s.cfg.Curriculum.MaxTokens,
		Temperature: s.cfg.Curriculum.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("curriculum generation: %w", Classify(err))
	}

	var out curriculumOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse curriculum response: %w: %w", ErrMalformedResponse, err)
	}
	return out.Topics, nil
}
