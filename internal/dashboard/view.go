package dashboard

import (
	"sort"
	"time"

	"github.com/julianstephens/gradeboard/internal/catalog"
	"github.com/julianstephens/gradeboard/internal/gpa"
	"github.com/julianstephens/gradeboard/internal/models"
	"github.com/julianstephens/gradeboard/internal/normalize"
	"github.com/julianstephens/gradeboard/internal/timetable"
)

// View is everything derived from one document. It is rebuilt on every
// load and never mutated in place.
type View struct {
	Now time.Time

	Timetable []models.Course
	Grades    []models.GradeRecord
	Today     []models.Course
	Week      []timetable.Day
	Active    *models.Course
	Catalog   []catalog.Entry

	Summary     gpa.Summary
	Profile     gpa.Profile
	Ongoing     []models.OngoingCourse
	CourseCount int
	TermCredits float64
}

// Build derives the dashboard view for doc as of now.
func Build(doc models.Document, settings models.Settings, now time.Time) View {
	courses := normalize.Timetable(doc.Timetable)
	grades := normalize.Grades(doc.Grades)
	ongoing := normalize.OngoingCourses(courses, grades)

	summary := gpa.Aggregate(grades, settings.Program())
	if settings.SubtractInProgress {
		summary = summary.WithInProgress(summary.InProgressCredits)
	}

	term := settings.CurrentTermCredits
	if term <= 0 {
		term = normalize.Credits(ongoing)
	}

	v := View{
		Now:         now,
		Timetable:   courses,
		Grades:      grades,
		Today:       timetable.Today(courses, now),
		Week:        timetable.Week(courses, now),
		Catalog:     catalog.Merge(courses, grades),
		Summary:     summary,
		Profile:     summary.Profile(term),
		Ongoing:     ongoing,
		CourseCount: normalize.CourseCount(courses),
		TermCredits: term,
	}
	if active, ok := timetable.Active(courses, now); ok {
		v.Active = &active
	}
	return v
}

// PlanTarget runs the goal planner against the view's profile.
func (v View) PlanTarget(target float64) gpa.GoalPlan {
	return gpa.PlanTarget(target, v.Profile, gpa.CourseCount(v.CourseCount, v.TermCredits))
}

// Predict runs the predictive planner with expected grades keyed by
// OngoingCourse.Key.
func (v View) Predict(expected map[string]string) gpa.Projection {
	return gpa.Predict(v.Profile, v.Ongoing, expected)
}

// ExpectedByCode maps grades keyed by course code (or name, for courses
// without one) onto OngoingCourse keys. Unknown codes are returned so the
// caller can report them.
func (v View) ExpectedByCode(byCode map[string]string) (map[string]string, []string) {
	expected := make(map[string]string, len(byCode))
	matched := make(map[string]bool, len(byCode))
	for _, c := range v.Ongoing {
		for code, grade := range byCode {
			if matchesCourse(c, code) {
				expected[c.Key] = grade
				matched[code] = true
			}
		}
	}
	var unknown []string
	for code := range byCode {
		if !matched[code] {
			unknown = append(unknown, code)
		}
	}
	sort.Strings(unknown)
	return expected, unknown
}

func matchesCourse(c models.OngoingCourse, code string) bool {
	key := gpa.CodeKey(code)
	if key == "" {
		return false
	}
	if c.Code != "" {
		return gpa.CodeKey(c.Code) == key
	}
	return gpa.CodeKey(c.Name) == key
}
