package analytics

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/content"
)

// ErrBusy is returned when a generation of the same kind is already running.
var ErrBusy = errors.New("generation already in progress")

// Fixed texts used when the insight cannot be generated.
const (
	FallbackInsight = "Unable to generate insight."
	EmptyInsight    = "Focus on weak areas."
)

// Draft is a generated curriculum plan.
type Draft struct {
	Grade    string
	Subject  catalog.Subject
	Topics   []content.CurriculumTopic
	FellBack bool // generation failed and Topics is empty
}

// Service generates class insights and curriculum drafts. Each kind of
// generation is single-flight; a second request while one runs fails with
// ErrBusy instead of queueing.
type Service struct {
	provider content.Provider
	rows     []catalog.StudentProgress
	logger   *zap.Logger

	insightBusy    *semaphore.Weighted
	curriculumBusy *semaphore.Weighted

	mu          sync.Mutex
	lastInsight string
	lastDraft   *Draft
}

// NewService creates a Service over a fixed class roster.
func NewService(provider content.Provider, rows []catalog.StudentProgress, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	cp := make([]catalog.StudentProgress, len(rows))
	for i, r := range rows {
		cp[i] = r.Clone()
	}
	return &Service{
		provider:       provider,
		rows:           cp,
		logger:         logger.Named("analytics"),
		insightBusy:    semaphore.NewWeighted(1),
		curriculumBusy: semaphore.NewWeighted(1),
	}
}

// Rows returns a copy of the class roster.
func (s *Service) Rows() []catalog.StudentProgress {
	out := make([]catalog.StudentProgress, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.Clone()
	}
	return out
}

// Report returns the derived class views.
func (s *Service) Report() Report {
	return BuildReport(s.rows)
}

// Insight asks the provider for a one-sentence summary of the class.
// Provider failures yield FallbackInsight and an empty answer yields
// EmptyInsight; only ErrBusy is returned as an error.
func (s *Service) Insight(ctx context.Context) (string, error) {
	if !s.insightBusy.TryAcquire(1) {
		return "", ErrBusy
	}
	defer s.insightBusy.Release(1)

	text, err := s.provider.GenerateInsight(ctx, s.Rows())
	switch {
	case err != nil:
		s.logger.Warn("insight generation failed, using fallback",
			zap.String("kind", content.Kind(err)),
			zap.Error(err))
		text = FallbackInsight
	case strings.TrimSpace(text) == "":
		text = EmptyInsight
	default:
		text = strings.TrimSpace(text)
	}

	s.mu.Lock()
	s.lastInsight = text
	s.mu.Unlock()
	return text, nil
}

// LastInsight returns the most recent insight, if any.
func (s *Service) LastInsight() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastInsight, s.lastInsight != ""
}

// DraftCurriculum asks the provider for a weekly topic plan. On failure the
// draft is empty and marked FellBack. Only ErrBusy is returned as an error.
func (s *Service) DraftCurriculum(ctx context.Context, grade string, subject catalog.Subject) (Draft, error) {
	if !s.curriculumBusy.TryAcquire(1) {
		return Draft{}, ErrBusy
	}
	defer s.curriculumBusy.Release(1)

	d := Draft{Grade: grade, Subject: subject}
	topics, err := s.provider.GenerateCurriculum(ctx, grade, subject)
	if err != nil {
		s.logger.Warn("curriculum generation failed",
			zap.String("grade", grade),
			zap.String("subject", string(subject)),
			zap.String("kind", content.Kind(err)),
			zap.Error(err))
		d.FellBack = true
		d.Topics = []content.CurriculumTopic{}
	} else {
		d.Topics = normalizeTopics(topics)
	}

	s.mu.Lock()
	s.lastDraft = &d
	s.mu.Unlock()
	return d, nil
}

// LastDraft returns the most recent curriculum draft, if any.
func (s *Service) LastDraft() (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastDraft == nil {
		return Draft{}, false
	}
	d := *s.lastDraft
	d.Topics = append([]content.CurriculumTopic(nil), d.Topics...)
	return d, true
}

// normalizeTopics drops untitled topics and numbers missing weeks in order.
func normalizeTopics(topics []content.CurriculumTopic) []content.CurriculumTopic {
	out := make([]content.CurriculumTopic, 0, len(topics))
	for _, t := range topics {
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" {
			continue
		}
		t.Description = strings.TrimSpace(t.Description)
		if t.Week <= 0 {
			t.Week = len(out) + 1
		}
		out = append(out, t)
	}
	return out
}
