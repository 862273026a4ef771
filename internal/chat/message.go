// Package chat holds the conversation record of a lesson.
package chat

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Author identifies who wrote a message.
type Author string

const (
	AuthorLearner Author = "learner"
	AuthorTutor   Author = "tutor"
)

// Message is a single chat entry. Messages are immutable once appended.
type Message struct {
	ID            string
	Author        Author
	Text          string
	CreatedAt     time.Time
	VisualKeyword string // optional picture hint from the tutor
	AudioRef      string // optional reference to synthesized speech
}

// Log is an ordered, append-only conversation record. Insertion order is
// chronological and defines the context sent to the tutor. Log is not safe
// for concurrent use; its owner serializes access.
type Log struct {
	msgs []Message
	now  func() time.Time
}

// NewLog returns an empty log using the wall clock.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// NewLogWithClock returns an empty log using the given clock.
func NewLogWithClock(now func() time.Time) *Log {
	return &Log{now: now}
}

// Append adds a message and returns it. Timestamps never go backwards: a
// clock reading earlier than the last entry is clamped to that entry's time.
func (l *Log) Append(author Author, text, visualKeyword string) Message {
	ts := l.now()
	if n := len(l.msgs); n > 0 && ts.Before(l.msgs[n-1].CreatedAt) {
		ts = l.msgs[n-1].CreatedAt
	}
	m := Message{
		ID:            uuid.NewString(),
		Author:        author,
		Text:          text,
		CreatedAt:     ts,
		VisualKeyword: visualKeyword,
	}
	l.msgs = append(l.msgs, m)
	return m
}

// Len returns the number of messages.
func (l *Log) Len() int {
	return len(l.msgs)
}

// Last returns the most recent message.
func (l *Log) Last() (Message, bool) {
	if len(l.msgs) == 0 {
		return Message{}, false
	}
	return l.msgs[len(l.msgs)-1], true
}

// Snapshot returns a copy of the messages in order. Later appends are not
// visible through the returned slice.
func (l *Log) Snapshot() []Message {
	return slices.Clone(l.msgs)
}
