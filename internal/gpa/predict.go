package gpa

import (
	"fmt"

	"github.com/julianstephens/gradeboard/internal/models"
)

// PredictStatus is the outcome of a projection.
type PredictStatus string

const (
	PredictNoCourses  PredictStatus = "no_courses"
	PredictIncomplete PredictStatus = "incomplete"
	PredictNoBasis    PredictStatus = "no_basis"
	PredictProjected  PredictStatus = "projected"
)

// Projection is the cumulative GPA expected after the current term.
type Projection struct {
	Status       PredictStatus
	ProjectedGPA float64
	AddedCredits float64
	AddedPoints  float64
	// Missing lists keys of courses without a usable expected grade.
	Missing []string
}

// Predict projects the cumulative GPA from expected grades keyed by
// OngoingCourse.Key. W removes a course from both sums. Every course must
// have a grade on the scale or W before anything is computed.
func Predict(profile Profile, courses []models.OngoingCourse, expected map[string]string) Projection {
	var p Projection
	if len(courses) == 0 {
		p.Status = PredictNoCourses
		return p
	}
	for _, c := range courses {
		g := expected[c.Key]
		if !IsGraded(g) && !IsWithdrawal(g) {
			p.Missing = append(p.Missing, c.Key)
		}
	}
	if len(p.Missing) > 0 {
		p.Status = PredictIncomplete
		return p
	}

	for _, c := range courses {
		pts, ok := Points(expected[c.Key])
		if !ok {
			continue
		}
		p.AddedPoints += pts * c.Credits
		p.AddedCredits += c.Credits
	}

	denominator := profile.GradedCredits + p.AddedCredits
	if denominator <= 0 {
		p.Status = PredictNoBasis
		return p
	}
	p.Status = PredictProjected
	p.ProjectedGPA = (profile.TotalGradePoints + p.AddedPoints) / denominator
	return p
}

// Summary renders the projection as a sentence.
func (p Projection) Summary() string {
	switch p.Status {
	case PredictNoCourses:
		return "No ongoing courses found right now."
	case PredictIncomplete:
		return "Select all grades first"
	case PredictNoBasis:
		return "No graded credits to project from."
	case PredictProjected:
		return fmt.Sprintf("Predicted GPA: %.2f", p.ProjectedGPA)
	}
	return ""
}
