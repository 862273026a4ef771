package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/vidya/internal/catalog"
	"github.com/abhisek/vidya/internal/chat"
	"github.com/abhisek/vidya/internal/content"
	"github.com/abhisek/vidya/internal/quiz"
	"github.com/abhisek/vidya/internal/store"
	"github.com/abhisek/vidya/internal/store/storetest"
)

func newTestSession(t *testing.T, p *fakeProvider) (*Session, store.EventRepo) {
	t.Helper()
	repo := storetest.Open(t)
	return New(p, repo, zap.NewNop()), repo
}

func chatting(t *testing.T, p *fakeProvider) (*Session, store.EventRepo) {
	t.Helper()
	s, repo := newTestSession(t, p)
	require.NoError(t, s.StartLesson(t.Context(), testLesson(), catalog.LanguageEnglish))
	require.Equal(t, StateChatting, s.State())
	return s, repo
}

// waitStarted waits for the provider to report an outstanding call.
func waitStarted(t *testing.T, p *fakeProvider) string {
	t.Helper()
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	select {
	case name := <-started:
		return name
	case <-time.After(5 * time.Second):
		t.Fatal("provider call never started")
		return ""
	}
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("command never returned")
		return nil
	}
}

func TestStartLesson_Intro(t *testing.T) {
	p := &fakeProvider{intro: "Let's count to 20! 🔢"}
	s, _ := chatting(t, p)

	snap := s.Snapshot()
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, chat.AuthorTutor, snap.Messages[0].Author)
	assert.Equal(t, "Let's count to 20! 🔢", snap.Messages[0].Text)
	assert.Equal(t, "m1", snap.Lesson.ID)
	assert.Equal(t, catalog.LanguageEnglish, snap.Language)
	assert.NotEmpty(t, snap.ID)
	assert.False(t, snap.Busy)
}

func TestContentCallsCarrySessionID(t *testing.T) {
	p := &fakeProvider{intro: "Hi", reply: content.Reply{Text: "Yes"}, questions: threeQuestions()}
	s, _ := chatting(t, p)
	require.NoError(t, s.SendMessage(t.Context(), "why?"))
	require.NoError(t, s.StartQuiz(t.Context()))

	id := s.Snapshot().ID
	p.mu.Lock()
	defer p.mu.Unlock()
	require.Len(t, p.sessions, 3)
	for _, got := range p.sessions {
		assert.Equal(t, id, got)
	}
}

func TestStartLesson_IntroFailureStillChats(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := &fakeProvider{introErr: content.ErrProviderUnavailable}
	s := New(p, nil, zap.New(core))

	require.NoError(t, s.StartLesson(t.Context(), testLesson(), catalog.LanguageTamil))

	snap := s.Snapshot()
	assert.Equal(t, StateChatting, snap.State)
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, FallbackIntro, snap.Messages[0].Text)

	entries := logs.FilterMessage("content generation failed, using fallback").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "intro", entries[0].ContextMap()["purpose"])
	assert.Equal(t, "unavailable", entries[0].ContextMap()["kind"])
}

func TestStartLesson_EmptyIntroGreets(t *testing.T) {
	s, _ := chatting(t, &fakeProvider{intro: "  "})
	assert.Equal(t, FallbackGreeting, s.Snapshot().Messages[0].Text)
}

func TestStartLesson_Rejections(t *testing.T) {
	s, _ := chatting(t, &fakeProvider{intro: "hi"})

	err := s.StartLesson(t.Context(), testLesson(), catalog.LanguageEnglish)
	var ice *InvalidCommandError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, CmdStartLesson, ice.Command)
	assert.Equal(t, StateChatting, ice.State)
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.NotErrorIs(t, err, ErrBusy)

	idle, _ := newTestSession(t, &fakeProvider{})
	err = idle.StartLesson(t.Context(), testLesson(), catalog.Language("fr"))
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.Equal(t, StateIdle, idle.State())
}

func TestSendMessage_RoundTrip(t *testing.T) {
	p := &fakeProvider{intro: "What is 2 + 2?", reply: content.Reply{Text: "Yes, 4! 🍎", VisualKeyword: "four apples"}}
	s, _ := chatting(t, p)

	require.NoError(t, s.SendMessage(t.Context(), "  4  "))

	msgs := s.Snapshot().Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, chat.AuthorLearner, msgs[1].Author)
	assert.Equal(t, "4", msgs[1].Text)
	assert.Equal(t, chat.AuthorTutor, msgs[2].Author)
	assert.Equal(t, "Yes, 4! 🍎", msgs[2].Text)
	assert.Equal(t, "four apples", msgs[2].VisualKeyword)

	// The provider sees the prior log, then the new text separately.
	require.Len(t, p.histories, 1)
	require.Len(t, p.histories[0], 1)
	assert.Equal(t, "What is 2 + 2?", p.histories[0][0].Text)
	assert.Equal(t, []string{"4"}, p.newTexts)
}

func TestSendMessage_LogGrowsByTwoPerRoundTrip(t *testing.T) {
	p := &fakeProvider{intro: "hi", reply: content.Reply{Text: "ok"}}
	s, _ := chatting(t, p)

	inputs := []string{"one", "two", "three", "four"}
	for i, in := range inputs {
		require.NoError(t, s.SendMessage(t.Context(), in))
		msgs := s.Snapshot().Messages
		require.Len(t, msgs, 1+2*(i+1))
		assert.Equal(t, chat.AuthorLearner, msgs[len(msgs)-2].Author)
		assert.Equal(t, in, msgs[len(msgs)-2].Text)
		assert.Equal(t, chat.AuthorTutor, msgs[len(msgs)-1].Author)
	}

	msgs := s.Snapshot().Messages
	for i := 1; i < len(msgs); i++ {
		assert.False(t, msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt), "message %d out of order", i)
	}
	// Each request carried the whole log before the new message.
	for i, h := range p.histories {
		assert.Len(t, h, 1+2*i)
	}
}

func TestSendMessage_ReplyFailure(t *testing.T) {
	p := &fakeProvider{intro: "hi", replyErr: content.ErrMalformedResponse}
	s, _ := chatting(t, p)

	require.NoError(t, s.SendMessage(t.Context(), "why is the sky blue"))

	snap := s.Snapshot()
	assert.Equal(t, StateChatting, snap.State)
	assert.False(t, snap.Busy)
	require.Len(t, snap.Messages, 3)
	assert.Equal(t, FallbackReply, snap.Messages[2].Text)
	assert.Empty(t, snap.Messages[2].VisualKeyword)
}

func TestSendMessage_BlankRejected(t *testing.T) {
	p := &fakeProvider{intro: "hi"}
	s, _ := chatting(t, p)

	for _, text := range []string{"", "   ", "\n\t"} {
		err := s.SendMessage(t.Context(), text)
		assert.ErrorIs(t, err, ErrInvalidCommand)
	}
	assert.Len(t, s.Snapshot().Messages, 1)
	assert.Equal(t, []string{"intro"}, p.callNames())
}

func TestSendMessage_NotChatting(t *testing.T) {
	s, _ := newTestSession(t, &fakeProvider{})
	err := s.SendMessage(t.Context(), "hello")
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.Empty(t, s.Snapshot().Messages)
}

func TestWantsQuiz(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"quiz", true},
		{"can we Quiz now?", true},
		{"QUIZ ME", true},
		{"quizzes are fun", true},
		{"let's play a game", false},
		{"qu iz", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WantsQuiz(tt.text), tt.text)
	}
}

func TestSendMessage_QuizKeywordStartsQuiz(t *testing.T) {
	p := &fakeProvider{intro: "hi", questions: threeQuestions()}
	s, _ := chatting(t, p)

	p.block()
	done := make(chan error, 1)
	go func() { done <- s.SendMessage(context.Background(), "can we Quiz now?") }()

	assert.Equal(t, "quiz", waitStarted(t, p))
	snap := s.Snapshot()
	assert.Equal(t, StateQuizLoading, snap.State)
	assert.True(t, snap.Busy)
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "can we Quiz now?", snap.Messages[1].Text)

	p.release()
	require.NoError(t, wait(t, done))

	snap = s.Snapshot()
	assert.Equal(t, StateQuizzing, snap.State)
	require.NotNil(t, snap.Quiz)
	assert.Equal(t, 3, snap.Quiz.Total)
	assert.Equal(t, "2 + 2 = ?", snap.Quiz.Question.Prompt)
	assert.NotContains(t, p.callNames(), "reply")
}

func TestStartQuiz_FallbackOnFailure(t *testing.T) {
	p := &fakeProvider{intro: "hi", quizErr: content.ErrProviderUnavailable}
	s, repo := chatting(t, p)

	require.NoError(t, s.StartQuiz(t.Context()))

	snap := s.Snapshot()
	assert.Equal(t, StateQuizzing, snap.State)
	assert.True(t, snap.QuizFallback)
	require.NotNil(t, snap.Quiz)
	assert.Equal(t, 1, snap.Quiz.Total)
	assert.Equal(t, quiz.Fallback()[0].Prompt, snap.Quiz.Question.Prompt)

	evs, err := repo.QuerySessionEvents(t.Context(), store.QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, store.ActionQuizStarted, evs[0].Action)
	assert.True(t, evs[0].Fallback)
	assert.Equal(t, 1, evs[0].Questions)
}

func TestStartQuiz_UnusableQuestions(t *testing.T) {
	tests := []struct {
		name      string
		questions []quiz.Question
		wantTotal int
		fallback  bool
	}{
		{"empty", nil, 1, true},
		{"all invalid", []quiz.Question{{Prompt: "?", Options: []string{"a"}, CorrectIndex: 0}}, 1, true},
		{"some invalid", append([]quiz.Question{{Prompt: "bad", Options: []string{"a", "b"}, CorrectIndex: 5}}, threeQuestions()[:2]...), 2, false},
		{"too many", append(threeQuestions(), threeQuestions()...), 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := chatting(t, &fakeProvider{intro: "hi", questions: tt.questions})
			require.NoError(t, s.StartQuiz(t.Context()))

			snap := s.Snapshot()
			assert.Equal(t, StateQuizzing, snap.State)
			assert.Equal(t, tt.wantTotal, snap.Quiz.Total)
			assert.Equal(t, tt.fallback, snap.QuizFallback)
		})
	}
}

func TestStartQuiz_OnlyFromChatting(t *testing.T) {
	s, _ := newTestSession(t, &fakeProvider{})
	assert.ErrorIs(t, s.StartQuiz(t.Context()), ErrInvalidCommand)

	s, _ = chatting(t, &fakeProvider{intro: "hi", questions: threeQuestions()})
	require.NoError(t, s.StartQuiz(t.Context()))
	assert.ErrorIs(t, s.StartQuiz(t.Context()), ErrInvalidCommand)
}

func TestBusy_RejectsContentCommands(t *testing.T) {
	p := &fakeProvider{intro: "hi", reply: content.Reply{Text: "ok"}}
	s, _ := newTestSession(t, p)

	p.block()
	done := make(chan error, 1)
	go func() { done <- s.StartLesson(context.Background(), testLesson(), catalog.LanguageHindi) }()
	assert.Equal(t, "intro", waitStarted(t, p))

	snap := s.Snapshot()
	assert.Equal(t, StateIntroLoading, snap.State)
	assert.True(t, snap.Busy)

	for name, err := range map[string]error{
		CmdStartLesson: s.StartLesson(t.Context(), testLesson(), catalog.LanguageEnglish),
		CmdSendMessage: s.SendMessage(t.Context(), "hello"),
		CmdStartQuiz:   s.StartQuiz(t.Context()),
	} {
		assert.ErrorIs(t, err, ErrBusy, name)
		assert.ErrorIs(t, err, ErrInvalidCommand, name)
	}
	_, err := s.SelectOption(0)
	assert.ErrorIs(t, err, ErrInvalidCommand)

	p.release()
	require.NoError(t, wait(t, done))

	snap = s.Snapshot()
	assert.Equal(t, StateChatting, snap.State)
	assert.False(t, snap.Busy)
	assert.Len(t, snap.Messages, 1)
	assert.Equal(t, []string{"intro"}, p.callNames())
}

func TestBusy_ReplyInFlight(t *testing.T) {
	p := &fakeProvider{intro: "hi", reply: content.Reply{Text: "ok"}}
	s, _ := chatting(t, p)

	p.block()
	done := make(chan error, 1)
	go func() { done <- s.SendMessage(context.Background(), "first") }()
	waitStarted(t, p)

	assert.ErrorIs(t, s.SendMessage(t.Context(), "second"), ErrBusy)
	assert.Len(t, s.Snapshot().Messages, 2, "rejected message must not be appended")

	p.release()
	require.NoError(t, wait(t, done))
	assert.Len(t, s.Snapshot().Messages, 3)
}

func TestReturnToDashboard_DiscardsStaleResult(t *testing.T) {
	p := &fakeProvider{intro: "hi", questions: threeQuestions()}
	s, repo := chatting(t, p)

	p.block()
	done := make(chan error, 1)
	go func() { done <- s.StartQuiz(context.Background()) }()
	waitStarted(t, p)

	require.NoError(t, s.ReturnToDashboard())
	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Lesson)
	assert.Empty(t, snap.Messages)
	assert.True(t, snap.Busy, "outstanding request keeps the session busy")

	assert.ErrorIs(t, s.StartLesson(t.Context(), testLesson(), catalog.LanguageEnglish), ErrBusy)

	p.release()
	require.NoError(t, wait(t, done))

	snap = s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Quiz)
	assert.False(t, snap.Busy)

	require.NoError(t, s.StartLesson(t.Context(), testLesson(), catalog.LanguageEnglish))
	assert.Equal(t, StateChatting, s.State())

	evs, err := repo.QuerySessionEvents(t.Context(), store.QueryOpts{})
	require.NoError(t, err)
	var actions []string
	for _, ev := range evs {
		actions = append(actions, ev.Action)
	}
	// Newest first; the discarded quiz never recorded quiz_started.
	assert.Equal(t, []string{store.ActionLessonStarted, store.ActionReturned, store.ActionLessonStarted}, actions)
}

func TestReturnToDashboard_FromIdleRejected(t *testing.T) {
	s, _ := newTestSession(t, &fakeProvider{})
	assert.ErrorIs(t, s.ReturnToDashboard(), ErrInvalidCommand)
}

func TestSelectOption_Idempotent(t *testing.T) {
	s, _ := chatting(t, &fakeProvider{intro: "hi", questions: threeQuestions()})
	require.NoError(t, s.StartQuiz(t.Context()))

	recorded, err := s.SelectOption(1)
	require.NoError(t, err)
	assert.True(t, recorded)

	recorded, err = s.SelectOption(0)
	require.NoError(t, err)
	assert.False(t, recorded)

	v := s.Snapshot().Quiz
	assert.Equal(t, 1, v.Selected)
	assert.Equal(t, 1, v.Correct)
	assert.True(t, v.Answered)
}

func TestSelectOption_OutOfRange(t *testing.T) {
	s, _ := chatting(t, &fakeProvider{intro: "hi", questions: threeQuestions()})
	require.NoError(t, s.StartQuiz(t.Context()))

	_, err := s.SelectOption(7)
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.ErrorIs(t, err, quiz.ErrOptionOutOfRange)
	assert.False(t, s.Snapshot().Quiz.Answered)
}

func TestSelectOption_AnsweredIgnoresAnyIndex(t *testing.T) {
	s, _ := chatting(t, &fakeProvider{intro: "hi", questions: threeQuestions()})
	require.NoError(t, s.StartQuiz(t.Context()))
	_, err := s.SelectOption(0)
	require.NoError(t, err)

	recorded, err := s.SelectOption(7)
	require.NoError(t, err)
	assert.False(t, recorded)
	assert.Equal(t, 0, s.Snapshot().Quiz.Selected)
}

func TestAdvance_RequiresAnswer(t *testing.T) {
	s, _ := chatting(t, &fakeProvider{intro: "hi", questions: threeQuestions()})
	_, err := s.Advance()
	assert.ErrorIs(t, err, ErrInvalidCommand)

	require.NoError(t, s.StartQuiz(t.Context()))
	_, err = s.Advance()
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.True(t, errors.Is(err, quiz.ErrNotAnswered))
}

func TestEndToEnd(t *testing.T) {
	p := &fakeProvider{
		intro:     "Welcome! Let's count.",
		reply:     content.Reply{Text: "4! Great 🎉", VisualKeyword: "four apples"},
		questions: threeQuestions(),
	}
	s, repo := newTestSession(t, p)

	require.NoError(t, s.StartLesson(t.Context(), testLesson(), catalog.LanguageEnglish))
	require.NoError(t, s.SendMessage(t.Context(), "2+2?"))
	assert.Equal(t, "four apples", s.Snapshot().Messages[2].VisualKeyword)

	require.NoError(t, s.SendMessage(t.Context(), "quiz"))
	require.Equal(t, StateQuizzing, s.State())
	require.Equal(t, 3, s.Snapshot().Quiz.Total)

	answers := []int{1, 0, 3} // right, right, wrong
	var result *quiz.Result
	for i, a := range answers {
		_, err := s.SelectOption(a)
		require.NoError(t, err)
		r, err := s.Advance()
		require.NoError(t, err)
		if i < len(answers)-1 {
			assert.Nil(t, r)
		} else {
			result = r
		}
	}

	require.NotNil(t, result)
	assert.Equal(t, quiz.Result{Total: 3, Correct: 2, Score: 67}, *result)

	snap := s.Snapshot()
	assert.Equal(t, StateResult, snap.State)
	assert.Nil(t, snap.Quiz)
	assert.Equal(t, result, snap.Result)

	_, err := s.Advance()
	assert.ErrorIs(t, err, ErrInvalidCommand)

	evs, err := repo.QuerySessionEvents(t.Context(), store.QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, store.ActionQuizCompleted, evs[0].Action)
	assert.Equal(t, 67, evs[0].Score)
	assert.Equal(t, 2, evs[0].Correct)

	// A new lesson can start straight from Result.
	require.NoError(t, s.StartLesson(t.Context(), testLesson(), catalog.LanguageTamil))
	snap = s.Snapshot()
	assert.Equal(t, StateChatting, snap.State)
	assert.Nil(t, snap.Result)
	assert.Len(t, snap.Messages, 1)
}

func TestSnapshot_DoesNotAlias(t *testing.T) {
	s, _ := chatting(t, &fakeProvider{intro: "hi", reply: content.Reply{Text: "ok"}})

	snap := s.Snapshot()
	snap.Messages[0].Text = "mutated"
	snap.Lesson.Topics[0] = "mutated"

	again := s.Snapshot()
	assert.Equal(t, "hi", again.Messages[0].Text)
	assert.Equal(t, "numbers", again.Lesson.Topics[0])
}
