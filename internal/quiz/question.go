// Package quiz holds multiple-choice question sets and their scoring.
package quiz

import (
	"math"
	"slices"
	"strings"
)

// QuestionCount is the number of questions requested per quiz.
const QuestionCount = 3

// MinOptions is the fewest options a usable question may have.
const MinOptions = 2

// Question is a single multiple-choice question. Immutable.
type Question struct {
	ID           string
	Prompt       string
	Options      []string
	CorrectIndex int
	Explanation  string
}

// Valid reports whether q can be asked: a non-empty prompt, at least
// MinOptions non-empty options, and a correct index that points at one of them.
func (q Question) Valid() bool {
	if strings.TrimSpace(q.Prompt) == "" || len(q.Options) < MinOptions {
		return false
	}
	for _, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return false
		}
	}
	return q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options)
}

// Clone returns a deep copy of q.
func (q Question) Clone() Question {
	q.Options = slices.Clone(q.Options)
	return q
}

// Fallback returns the built-in question used when generation fails.
func Fallback() []Question {
	return []Question{{
		ID:           "fallback-1",
		Prompt:       "What comes after 2?",
		Options:      []string{"1", "3", "4", "10"},
		CorrectIndex: 1,
		Explanation:  "The order is 1, 2, 3!",
	}}
}

// Sanitize drops unusable questions and keeps at most QuestionCount,
// preserving order. The second return value reports whether the fallback
// set was substituted because nothing usable remained.
func Sanitize(qs []Question) ([]Question, bool) {
	out := make([]Question, 0, QuestionCount)
	for _, q := range qs {
		if !q.Valid() {
			continue
		}
		out = append(out, q.Clone())
		if len(out) == QuestionCount {
			break
		}
	}
	if len(out) == 0 {
		return Fallback(), true
	}
	return out, false
}

// Result is the outcome of a finished quiz.
type Result struct {
	Total   int
	Correct int
	Score   int // percentage, rounded half away from zero
}

// NewResult computes the score for correct answers out of total.
// total must be positive.
func NewResult(correct, total int) Result {
	return Result{
		Total:   total,
		Correct: correct,
		Score:   int(math.Round(float64(correct) / float64(total) * 100)),
	}
}
