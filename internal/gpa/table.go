// Package gpa holds the grade point scale and the arithmetic built on it:
// cumulative aggregation, target planning and grade projection.
package gpa

import "strings"

// MaxPoints is the top of the grading scale.
const MaxPoints = 4.0

// Withdrawal is the selectable grade that removes a course from both sums.
const Withdrawal = "W"

// GradePoint is one row of the grading scale.
type GradePoint struct {
	Letter string
	Points float64
}

// scale is ordered from highest to lowest; position defines rank.
var scale = []GradePoint{
	{"A", 4.0},
	{"B+", 3.5},
	{"B", 3.0},
	{"C+", 2.5},
	{"C", 2.0},
	{"D+", 1.5},
	{"D", 1.0},
	{"F", 0.0},
}

// Scale returns a copy of the grading scale, highest first.
func Scale() []GradePoint {
	out := make([]GradePoint, len(scale))
	copy(out, scale)
	return out
}

// Letter returns the grade at rank (0 is the top grade). Ranks past the end
// clamp to the lowest grade.
func Letter(rank int) string {
	if rank < 0 {
		rank = 0
	}
	if rank >= len(scale) {
		rank = len(scale) - 1
	}
	return scale[rank].Letter
}

// NormalizeGrade trims and uppercases a grade token.
func NormalizeGrade(grade string) string {
	return strings.ToUpper(strings.TrimSpace(grade))
}

// Points looks up the point value of grade. Anything that is not on the
// scale (W, blank, ongoing, P, N/A...) reports false rather than zero.
func Points(grade string) (float64, bool) {
	g := NormalizeGrade(grade)
	for _, gp := range scale {
		if gp.Letter == g {
			return gp.Points, true
		}
	}
	return 0, false
}

// IsGraded reports whether grade participates in GPA computation.
func IsGraded(grade string) bool {
	_, ok := Points(grade)
	return ok
}

// IsWithdrawal reports whether grade is a W in any case or spacing.
func IsWithdrawal(grade string) bool {
	return NormalizeGrade(grade) == Withdrawal
}

// Options lists the grades a student can pick as an expected outcome.
func Options() []string {
	out := make([]string, 0, len(scale)+1)
	for _, gp := range scale {
		out = append(out, gp.Letter)
	}
	return append(out, Withdrawal)
}
