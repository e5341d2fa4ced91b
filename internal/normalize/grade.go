package normalize

import (
	"fmt"
	"strings"

	"github.com/julianstephens/gradeboard/internal/constants"
	"github.com/julianstephens/gradeboard/internal/gpa"
	"github.com/julianstephens/gradeboard/internal/models"
)

// inProgressMarkers are grade tokens that mean the course has no result yet.
var inProgressMarkers = []string{"n/a", "na", "n.a", "ip"}

// IsInProgressGrade reports whether a grade token marks an unfinished course.
func IsInProgressGrade(grade string) bool {
	g := strings.ToLower(strings.TrimSpace(grade))
	if g == "" || strings.Contains(g, "ongoing") || strings.Contains(g, "in progress") {
		return true
	}
	for _, m := range inProgressMarkers {
		if g == m {
			return true
		}
	}
	return false
}

// Status resolves a record status. A grade on the scale is always graded,
// since the aggregator counts it toward the GPA whatever the source says.
// Otherwise an explicit, recognized status field wins, and failing that the
// status is inferred from the grade token.
func Status(explicit, grade string) models.RecordStatus {
	if gpa.IsGraded(grade) {
		return models.StatusGraded
	}
	s := models.RecordStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(explicit)), " ", "_"))
	if s.Valid() {
		return s
	}
	switch {
	case gpa.IsWithdrawal(grade):
		return models.StatusWithdrawn
	case IsInProgressGrade(grade):
		return models.StatusInProgress
	}
	return models.StatusTransfer
}

// Grade normalizes one grade history record.
func Grade(rec models.RawRecord) models.GradeRecord {
	grade := Lookup(rec, FieldGrade)
	creditText := Lookup(rec, FieldCredit)
	credit, ok := ParseCredit(creditText)
	return models.GradeRecord{
		Code:       Lookup(rec, FieldCode),
		Name:       Lookup(rec, FieldName),
		Section:    Lookup(rec, FieldSection),
		Grade:      grade,
		Credit:     credit,
		CreditOK:   ok,
		CreditText: creditText,
		Status:     Status(Lookup(rec, FieldStatus), grade),
	}
}

// Grades normalizes every grade record, keeping order.
func Grades(recs []models.RawRecord) []models.GradeRecord {
	out := make([]models.GradeRecord, 0, len(recs))
	for _, r := range recs {
		out = append(out, Grade(r))
	}
	return out
}

// OngoingCourses lists the courses open for grade projection: the whole
// timetable, then in-progress grade records, deduplicated by normalized code
// or, for codeless entries, by name. Records already carrying a grade on the
// scale are never listed. A missing or non-positive credit is replaced by the
// default and flagged.
func OngoingCourses(timetable []models.Course, grades []models.GradeRecord) []models.OngoingCourse {
	var out []models.OngoingCourse
	seen := make(map[string]struct{})
	add := func(code, name, creditText string) {
		if key := ongoingKey(code, name); key != "" {
			if _, dup := seen[key]; dup {
				return
			}
			seen[key] = struct{}{}
		}
		base := code
		if base == "" {
			base = name
		}
		if base == "" {
			base = "course"
		}
		credit, ok := ParseCredit(creditText)
		estimated := !ok || credit <= 0
		if estimated {
			credit = constants.DefaultPlannedCredits
		}
		out = append(out, models.OngoingCourse{
			Key:             fmt.Sprintf("%s-%d", base, len(out)),
			Code:            code,
			Name:            name,
			Credits:         credit,
			CreditEstimated: estimated,
		})
	}

	for _, c := range timetable {
		add(c.Code, c.Name, c.Credit)
	}
	for _, g := range grades {
		if g.Status != models.StatusInProgress || gpa.IsGraded(g.Grade) {
			continue
		}
		add(g.Code, g.Name, g.CreditText)
	}
	return out
}

func ongoingKey(code, name string) string {
	if key := gpa.CodeKey(code); key != "" {
		return key
	}
	if name = strings.ToLower(strings.Join(strings.Fields(name), " ")); name != "" {
		return "name:" + name
	}
	return ""
}

// Credits sums the credits of courses.
func Credits(courses []models.OngoingCourse) float64 {
	total := 0.0
	for _, c := range courses {
		total += c.Credits
	}
	return total
}
