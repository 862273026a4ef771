package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuestions is returned when a quiz is built from an empty set.
	ErrNoQuestions = errors.New("quiz has no questions")

	// ErrOptionOutOfRange is returned when a selection does not name an option.
	ErrOptionOutOfRange = errors.New("option index out of range")

	// ErrNotAnswered is returned when advancing past an unanswered question.
	ErrNotAnswered = errors.New("current question not answered")

	// ErrFinished is returned when interacting with a finished quiz.
	ErrFinished = errors.New("quiz already finished")
)

// Quiz tracks progress through a question set. Quiz is not safe for
// concurrent use; its owner serializes access.
type Quiz struct {
	questions []Question
	current   int
	selected  int // -1 when nothing is selected
	answered  bool
	correct   int
	result    *Result
}

// New starts a quiz at the first question.
func New(questions []Question) (*Quiz, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	qs := make([]Question, len(questions))
	for i, q := range questions {
		qs[i] = q.Clone()
	}
	return &Quiz{questions: qs, selected: -1}, nil
}

// Len returns the number of questions.
func (q *Quiz) Len() int {
	return len(q.questions)
}

// Current returns the question being asked.
func (q *Quiz) Current() Question {
	return q.questions[q.current].Clone()
}

// Select records the learner's choice for the current question. The first
// selection is final: once answered, further selections are ignored and
// Select returns false, whatever the index. On an unanswered question an
// index outside the options is rejected.
func (q *Quiz) Select(index int) (bool, error) {
	if q.result != nil {
		return false, ErrFinished
	}
	if q.answered {
		return false, nil
	}
	cur := q.questions[q.current]
	if index < 0 || index >= len(cur.Options) {
		return false, fmt.Errorf("%w: %d of %d", ErrOptionOutOfRange, index, len(cur.Options))
	}
	q.selected = index
	q.answered = true
	if index == cur.CorrectIndex {
		q.correct++
	}
	return true, nil
}

// Advance moves to the next question, or finishes the quiz after the last
// one and returns its Result. It is the only way a Result is produced.
func (q *Quiz) Advance() (*Result, error) {
	if q.result != nil {
		return nil, ErrFinished
	}
	if !q.answered {
		return nil, ErrNotAnswered
	}
	if q.current == len(q.questions)-1 {
		r := NewResult(q.correct, len(q.questions))
		q.result = &r
		return &r, nil
	}
	q.current++
	q.selected = -1
	q.answered = false
	return nil, nil
}

// Result returns the final result once the quiz is finished.
func (q *Quiz) Result() (Result, bool) {
	if q.result == nil {
		return Result{}, false
	}
	return *q.result, true
}

// View is a read-only picture of quiz progress for rendering.
type View struct {
	Question Question
	Index    int // zero-based
	Total    int
	Selected int // -1 when nothing is selected
	Answered bool
	Correct  int // running count of correct answers
	IsLast   bool
}

// SelectionCorrect reports whether the recorded selection is right.
func (v View) SelectionCorrect() bool {
	return v.Answered && v.Selected == v.Question.CorrectIndex
}

// View returns the current progress.
func (q *Quiz) View() View {
	return View{
		Question: q.Current(),
		Index:    q.current,
		Total:    len(q.questions),
		Selected: q.selected,
		Answered: q.answered,
		Correct:  q.correct,
		IsLast:   q.current == len(q.questions)-1,
	}
}
