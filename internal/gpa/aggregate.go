package gpa

import (
	"math"
	"strings"
	"unicode"

	"github.com/julianstephens/gradeboard/internal/models"
)

// Summary is the cumulative picture computed from a grade history.
type Summary struct {
	CompletedCredits float64
	GradedCredits    float64
	TotalGradePoints float64
	// GPA is nil when no graded credit exists.
	GPA *float64

	RequiredCredits     float64
	RemainingCredits    float64
	PercentComplete     float64
	MaxGPACredits       float64
	RemainingGPACredits float64

	InProgressCredits float64
	TransferCredits   float64
	WithdrawnCredits  float64

	Records int
}

// Profile is the student's standing fed into the planners.
type Profile struct {
	CurrentGPA             *float64
	CompletedCredits       float64
	GradedCredits          float64
	TotalGradePoints       float64
	CurrentSemesterCredits float64
}

// CodeKey normalizes a course code for deduplication: all whitespace removed
// and uppercased.
func CodeKey(code string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, code))
}

// Dedupe keeps the first record for each normalized code. Records without a
// code are always kept.
func Dedupe(records []models.GradeRecord) []models.GradeRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.GradeRecord, 0, len(records))
	for _, r := range records {
		key := CodeKey(r.Code)
		if key != "" {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, r)
	}
	return out
}

// Aggregate deduplicates records and sums them against program.
//
// Completed credits are inclusive: every record with a parseable credit
// counts, whatever its grade. Callers that want completed-only figures apply
// WithInProgress.
func Aggregate(records []models.GradeRecord, program models.Program) Summary {
	var s Summary
	for _, r := range Dedupe(records) {
		s.Records++
		if !r.CreditOK {
			continue
		}
		s.CompletedCredits += r.Credit

		if pts, ok := Points(r.Grade); ok {
			s.GradedCredits += r.Credit
			s.TotalGradePoints += r.Credit * pts
			continue
		}
		switch r.Status {
		case models.StatusInProgress:
			s.InProgressCredits += r.Credit
		case models.StatusTransfer:
			s.TransferCredits += r.Credit
		case models.StatusWithdrawn:
			s.WithdrawnCredits += r.Credit
		}
	}
	if s.GradedCredits > 0 {
		g := s.TotalGradePoints / s.GradedCredits
		s.GPA = &g
	}

	s.RequiredCredits = program.RequiredCredits()
	s.MaxGPACredits = math.Max(program.MaxGPACredits(), 0)
	s.RemainingGPACredits = math.Max(s.MaxGPACredits-s.GradedCredits, 0)
	s.recomputeProgress()
	return s
}

func (s *Summary) recomputeProgress() {
	s.RemainingCredits = math.Max(s.RequiredCredits-s.CompletedCredits, 0)
	if s.RequiredCredits > 0 {
		s.PercentComplete = math.Min(100, 100*s.CompletedCredits/s.RequiredCredits)
	} else {
		s.PercentComplete = 0
	}
}

// WithInProgress returns a copy of s with credits currently in progress
// taken out of the completed total.
func (s Summary) WithInProgress(credits float64) Summary {
	if credits <= 0 {
		return s
	}
	s.CompletedCredits = math.Max(s.CompletedCredits-credits, 0)
	s.recomputeProgress()
	return s
}

// Profile snapshots the planner inputs.
func (s Summary) Profile(currentSemesterCredits float64) Profile {
	var current *float64
	if s.GPA != nil {
		g := *s.GPA
		current = &g
	}
	return Profile{
		CurrentGPA:             current,
		CompletedCredits:       s.CompletedCredits,
		GradedCredits:          s.GradedCredits,
		TotalGradePoints:       s.TotalGradePoints,
		CurrentSemesterCredits: math.Max(currentSemesterCredits, 0),
	}
}
