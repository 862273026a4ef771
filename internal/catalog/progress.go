package catalog

import "slices"

// LowScoreThreshold is the score below which a student needs attention.
const LowScoreThreshold = 60

// StudentProgress is one row of class analytics.
type StudentProgress struct {
	StudentID      string   `json:"studentId"`
	StudentName    string   `json:"studentName"`
	MathScore      int      `json:"mathScore"`
	EnglishScore   int      `json:"englishScore"`
	TamilScore     int      `json:"tamilScore"`
	HindiScore     int      `json:"hindiScore"`
	Attendance     int      `json:"attendance"`
	WeakTopics     []string `json:"weakTopics"`
	RecentActivity []int    `json:"recentActivity"`
}

// Clone returns a deep copy of p.
func (p StudentProgress) Clone() StudentProgress {
	p.WeakTopics = slices.Clone(p.WeakTopics)
	p.RecentActivity = slices.Clone(p.RecentActivity)
	return p
}

// Score returns the student's score for a subject.
func (p StudentProgress) Score(s Subject) int {
	switch s {
	case SubjectMath:
		return p.MathScore
	case SubjectEnglish:
		return p.EnglishScore
	case SubjectTamil:
		return p.TamilScore
	case SubjectHindi:
		return p.HindiScore
	default:
		return 0
	}
}

// Average returns the mean of the four subject scores.
func (p StudentProgress) Average() float64 {
	return float64(p.MathScore+p.EnglishScore+p.TamilScore+p.HindiScore) / 4
}

// NeedsAttention reports whether the student scores below the threshold
// in Math or English.
func (p StudentProgress) NeedsAttention() bool {
	return p.MathScore < LowScoreThreshold || p.EnglishScore < LowScoreThreshold
}
