// Package analytics derives class-level views from student progress and
// generates the teacher insight and admin curriculum drafts.
package analytics

import (
	"math"

	"github.com/abhisek/vidya/internal/catalog"
)

// Band classifies a heatmap score.
type Band int

const (
	BandNeedsHelp Band = iota // below 50
	BandAverage               // 50 to 79
	BandGood                  // 80 and above
)

// Band thresholds.
const (
	GoodThreshold    = 80
	AverageThreshold = 50
)

// BandFor returns the heatmap band of a score.
func BandFor(score int) Band {
	switch {
	case score >= GoodThreshold:
		return BandGood
	case score >= AverageThreshold:
		return BandAverage
	default:
		return BandNeedsHelp
	}
}

func (b Band) String() string {
	switch b {
	case BandGood:
		return "Good"
	case BandAverage:
		return "Average"
	default:
		return "Needs Help"
	}
}

// HeatmapCell is one student's overall score.
type HeatmapCell struct {
	StudentID string
	Name      string
	Value     int // rounded mean of the subject scores
	Band      Band
}

// Heatmap returns one cell per student, in input order.
func Heatmap(rows []catalog.StudentProgress) []HeatmapCell {
	cells := make([]HeatmapCell, 0, len(rows))
	for _, r := range rows {
		v := int(math.Round(r.Average()))
		cells = append(cells, HeatmapCell{
			StudentID: r.StudentID,
			Name:      r.StudentName,
			Value:     v,
			Band:      BandFor(v),
		})
	}
	return cells
}

// LowPerformers returns the students scoring below the attention threshold
// in Math or English, in input order.
func LowPerformers(rows []catalog.StudentProgress) []catalog.StudentProgress {
	var out []catalog.StudentProgress
	for _, r := range rows {
		if r.NeedsAttention() {
			out = append(out, r.Clone())
		}
	}
	return out
}

// SubjectAverage is the class mean for one subject.
type SubjectAverage struct {
	Subject catalog.Subject
	Average float64
}

// SubjectAverages returns the class mean per subject in catalog order.
// An empty class averages to zero.
func SubjectAverages(rows []catalog.StudentProgress) []SubjectAverage {
	out := make([]SubjectAverage, 0, len(catalog.AllSubjects()))
	for _, s := range catalog.AllSubjects() {
		var sum int
		for _, r := range rows {
			sum += r.Score(s)
		}
		var avg float64
		if len(rows) > 0 {
			avg = float64(sum) / float64(len(rows))
		}
		out = append(out, SubjectAverage{Subject: s, Average: avg})
	}
	return out
}

// AverageAttendance returns the mean attendance percentage.
func AverageAttendance(rows []catalog.StudentProgress) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum int
	for _, r := range rows {
		sum += r.Attendance
	}
	return float64(sum) / float64(len(rows))
}

// Report bundles the derived class views.
type Report struct {
	Students      int
	Heatmap       []HeatmapCell
	LowPerformers []catalog.StudentProgress
	Subjects      []SubjectAverage
	Attendance    float64
}

// BuildReport computes every class view for rows.
func BuildReport(rows []catalog.StudentProgress) Report {
	return Report{
		Students:      len(rows),
		Heatmap:       Heatmap(rows),
		LowPerformers: LowPerformers(rows),
		Subjects:      SubjectAverages(rows),
		Attendance:    AverageAttendance(rows),
	}
}
