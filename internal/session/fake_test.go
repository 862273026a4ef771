package session

import (
	"context"
	"sync"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/chat"
	"github.com/abhisek/vidya/internal/content"
	"github.com/abhisek/vidya/internal/llm"
	"github.com/abhisek/vidya/internal/quiz"
)

// fakeProvider is a scripted content.Provider. When gate is set every call
// announces itself on started and then blocks until gate is closed.
type fakeProvider struct {
	intro     string
	introErr  error
	reply     content.Reply
	replyErr  error
	questions []quiz.Question
	quizErr   error

	gate    chan struct{}
	started chan string

	mu        sync.Mutex
	histories [][]chat.Message
	newTexts  []string
	calls     []string
	sessions  []string
}

var _ content.Provider = (*fakeProvider)(nil)

func (f *fakeProvider) enter(ctx context.Context, name string) error {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.sessions = append(f.sessions, llm.SessionFrom(ctx))
	gate, started := f.gate, f.started
	f.mu.Unlock()

	if started != nil {
		started <- name
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (f *fakeProvider) GenerateIntro(ctx context.Context, _, _ string, _ catalog.Language) (string, error) {
	if err := f.enter(ctx, "intro"); err != nil {
		return "", err
	}
	return f.intro, f.introErr
}

func (f *fakeProvider) GenerateReply(ctx context.Context, history []chat.Message, newText, _, _ string, _ catalog.Language) (content.Reply, error) {
	if err := f.enter(ctx, "reply"); err != nil {
		return content.Reply{}, err
	}
	f.mu.Lock()
	f.histories = append(f.histories, history)
	f.newTexts = append(f.newTexts, newText)
	f.mu.Unlock()
	return f.reply, f.replyErr
}

func (f *fakeProvider) GenerateQuiz(ctx context.Context, _, _ string) ([]quiz.Question, error) {
	if err := f.enter(ctx, "quiz"); err != nil {
		return nil, err
	}
	return f.questions, f.quizErr
}

func (f *fakeProvider) GenerateInsight(ctx context.Context, _ []catalog.StudentProgress) (string, error) {
	return "", f.enter(ctx, "insight")
}

func (f *fakeProvider) GenerateCurriculum(ctx context.Context, _ string, _ catalog.Subject) ([]content.CurriculumTopic, error) {
	return nil, f.enter(ctx, "curriculum")
}

func (f *fakeProvider) callNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// block makes subsequent calls wait for release.
func (f *fakeProvider) block() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
	f.started = make(chan string, 8)
}

func (f *fakeProvider) release() {
	f.mu.Lock()
	gate := f.gate
	f.gate = nil
	f.started = nil
	f.mu.Unlock()
	close(gate)
}

func threeQuestions() []quiz.Question {
	return []quiz.Question{
		{ID: "q1", Prompt: "2 + 2 = ?", Options: []string{"3", "4", "5"}, CorrectIndex: 1, Explanation: "Two and two make four."},
		{ID: "q2", Prompt: "Which shape is round?", Options: []string{"Circle", "Square"}, CorrectIndex: 0, Explanation: "A circle has no corners."},
		{ID: "q3", Prompt: "5 - 3 = ?", Options: []string{"1", "2", "3", "8"}, CorrectIndex: 1, Explanation: "Take 3 away from 5."},
	}
}

func testLesson() catalog.Lesson {
	return catalog.Lesson{
		ID:      "m1",
		Title:   "Counting 1-20",
		Subject: catalog.SubjectMath,
		Grade:   "UKG",
		Topics:  []string{"numbers"},
	}
}
