package catalog

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrLessonNotFound is returned when a lesson ID is not on the path.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrLessonLocked is returned when a locked lesson is started.
	ErrLessonLocked = errors.New("lesson is locked")
)

// Path is the ordered lesson path. A Path is never mutated after
// construction; Complete returns an updated copy.
type Path struct {
	lessons []Lesson
	index   map[string]int
}

// NewPath builds a Path from lessons in path order after validating them.
func NewPath(lessons []Lesson) (*Path, error) {
	if err := validateLessons(lessons); err != nil {
		return nil, err
	}
	return newPath(lessons), nil
}

func newPath(lessons []Lesson) *Path {
	p := &Path{
		lessons: make([]Lesson, len(lessons)),
		index:   make(map[string]int, len(lessons)),
	}
	for i, l := range lessons {
		p.lessons[i] = l.Clone()
		p.index[l.ID] = i
	}
	return p
}

// Len returns the number of lessons on the path.
func (p *Path) Len() int {
	return len(p.lessons)
}

// Lessons returns a copy of all lessons in path order.
func (p *Path) Lessons() []Lesson {
	out := make([]Lesson, len(p.lessons))
	for i, l := range p.lessons {
		out[i] = l.Clone()
	}
	return out
}

// Lookup returns the lesson with the given ID.
func (p *Path) Lookup(id string) (Lesson, bool) {
	i, ok := p.index[id]
	if !ok {
		return Lesson{}, false
	}
	return p.lessons[i].Clone(), true
}

// Startable returns the lesson with the given ID if it can be started.
func (p *Path) Startable(id string) (Lesson, error) {
	l, ok := p.Lookup(id)
	if !ok {
		return Lesson{}, fmt.Errorf("%w: %q", ErrLessonNotFound, id)
	}
	if l.Locked {
		return Lesson{}, fmt.Errorf("%w: %q", ErrLessonLocked, id)
	}
	return l, nil
}

// Grades returns the distinct grade bands in path order.
func (p *Path) Grades() []string {
	var grades []string
	for _, l := range p.lessons {
		if !slices.Contains(grades, l.Grade) {
			grades = append(grades, l.Grade)
		}
	}
	return grades
}

// ByGrade returns the lessons for a grade band in path order.
func (p *Path) ByGrade(grade string) []Lesson {
	var out []Lesson
	for _, l := range p.lessons {
		if l.Grade == grade {
			out = append(out, l.Clone())
		}
	}
	return out
}

// Completion describes the effect of completing a lesson.
type Completion struct {
	Lesson   Lesson  // the completed lesson after the update
	Unlocked *Lesson // the lesson unlocked by this completion, if any
	Improved bool    // whether the star rating went up
}

// Complete marks the lesson completed with at least the given stars and
// unlocks the next lesson in path order. Stars never go down.
// It returns the updated path; p itself is left untouched.
func (p *Path) Complete(id string, stars int) (*Path, Completion, error) {
	i, ok := p.index[id]
	if !ok {
		return p, Completion{}, fmt.Errorf("%w: %q", ErrLessonNotFound, id)
	}
	stars = min(max(stars, 0), MaxStars)

	next := newPath(p.lessons)
	l := &next.lessons[i]
	l.Completed = true
	l.Locked = false

	var c Completion
	if stars > l.Stars {
		l.Stars = stars
		c.Improved = true
	}
	c.Lesson = l.Clone()

	if i+1 < len(next.lessons) && next.lessons[i+1].Locked {
		next.lessons[i+1].Locked = false
		unlocked := next.lessons[i+1].Clone()
		c.Unlocked = &unlocked
	}

	return next, c, nil
}

// Progress returns the number of completed lessons and the total stars earned.
func (p *Path) Progress() (completed, stars int) {
	for _, l := range p.lessons {
		if l.Completed {
			completed++
		}
		stars += l.Stars
	}
	return completed, stars
}
