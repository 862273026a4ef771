package catalog

import "slices"

// MaxStars is the highest star rating a lesson can earn.
const MaxStars = 3

// Lesson is a single node on the learner's lesson path.
type Lesson struct {
	ID          string
	Title       string
	Subject     Subject
	Grade       string
	Description string
	Locked      bool
	Completed   bool
	Stars       int
	Topics      []string
}

// Clone returns a deep copy of l.
func (l Lesson) Clone() Lesson {
	l.Topics = slices.Clone(l.Topics)
	return l
}

// StarsFor converts a quiz score percentage into a star rating.
func StarsFor(score int) int {
	switch {
	case score >= 90:
		return 3
	case score >= 60:
		return 2
	case score > 0:
		return 1
	default:
		return 0
	}
}

// StarString renders a rating as filled and empty stars, e.g. "★★☆".
func StarString(stars int) string {
	stars = min(max(stars, 0), MaxStars)
	out := make([]rune, 0, MaxStars)
	for i := range MaxStars {
		if i < stars {
			out = append(out, '★')
		} else {
			out = append(out, '☆')
		}
	}
	return string(out)
}

// StatusIcon returns the path icon for a lesson.
func (l Lesson) StatusIcon() string {
	switch {
	case l.Completed:
		return "✅"
	case l.Locked:
		return "🔒"
	default:
		return "▶"
	}
}
