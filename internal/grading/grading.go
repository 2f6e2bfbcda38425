// Package grading derives totals, percentages, letter grades, GPA and the
// overall classification from a student's mark set. Everything here is pure
// and deterministic: no I/O, no clock, no storage.
package grading

import (
	"math"

	"resultportal/internal/catalog"
)

// Letter grades
const (
	GradeAPlus = "A+"
	GradeA     = "A"
	GradeBPlus = "B+"
	GradeB     = "B"
	GradeC     = "C"
	GradeF     = "F"
)

// Overall statuses
const (
	StatusDistinction = "Distinction"
	StatusFirstClass  = "First Class"
	StatusSecondClass = "Second Class"
	StatusPass        = "Pass"
	StatusFail        = "Fail"
)

// SubjectResult is one row of the per-subject breakdown.
type SubjectResult struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
	Score   int    `json:"score"`
	Grade   string `json:"grade"`
}

// GradedView is the derived, never-persisted summary of a student's
// performance. It is a snapshot computed from a mark set and holds no
// reference back to the originating record.
type GradedView struct {
	Subjects      []SubjectResult `json:"subjects"`
	TotalScore    int             `json:"total_score"`    // 0..500
	Percentage    float64         `json:"percentage"`     // 2-decimal precision
	GPA           float64         `json:"gpa"`            // 0.0..4.0
	OverallGrade  string          `json:"overall_grade"`  // A+..F
	OverallStatus string          `json:"overall_status"` // Distinction..Fail
}

// Total sums the scores across all catalog subjects. A subject missing from
// the mark set counts as zero.
func Total(marks map[string]int) int {
	total := 0
	for _, code := range catalog.Codes() {
		total += marks[code]
	}
	return total
}

// Percentage computes total/maxTotal*100 rounded half-up to two decimals.
func Percentage(marks map[string]int) float64 {
	raw := float64(Total(marks)) / float64(catalog.MaxTotal()) * 100
	return round2(raw)
}

// round2 rounds half-up to two decimal places.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// SubjectGrade maps a single subject score to its letter grade. Bands are
// contiguous and exhaustive over [0,100], inclusive on the lower bound.
func SubjectGrade(score int) string {
	switch {
	case score >= 90:
		return GradeAPlus
	case score >= 80:
		return GradeA
	case score >= 70:
		return GradeBPlus
	case score >= 60:
		return GradeB
	case score >= 50:
		return GradeC
	default:
		return GradeF
	}
}

// Classify maps a GPA to the overall grade and status.
func Classify(gpa float64) (grade, status string) {
	switch {
	case gpa >= 3.8:
		return GradeAPlus, StatusDistinction
	case gpa >= 3.5:
		return GradeA, StatusFirstClass
	case gpa >= 3.0:
		return GradeBPlus, StatusSecondClass
	case gpa >= 2.5:
		return GradeB, StatusSecondClass
	case gpa >= 2.0:
		return GradeC, StatusPass
	default:
		return GradeF, StatusFail
	}
}

// BuildView computes the full GradedView for a mark set. A record with no
// recorded marks yields the well-defined zero view (total 0, GPA 0.0, Fail),
// not an error.
func BuildView(marks map[string]int) GradedView {
	view := GradedView{
		TotalScore: Total(marks),
		Percentage: Percentage(marks),
	}

	for _, subject := range catalog.All() {
		score := marks[subject.Code]
		view.Subjects = append(view.Subjects, SubjectResult{
			Code:    subject.Code,
			Name:    subject.DisplayName,
			Credits: subject.CreditWeight,
			Score:   score,
			Grade:   SubjectGrade(score),
		})
	}

	view.GPA = GPA(view.Percentage)
	view.OverallGrade, view.OverallStatus = Classify(view.GPA)
	return view
}
