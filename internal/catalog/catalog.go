// Package catalog merges the timetable and grade history into one course
// list that can be grouped, searched and totalled.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/julianstephens/gradeboard/internal/constants"
	"github.com/julianstephens/gradeboard/internal/gpa"
	"github.com/julianstephens/gradeboard/internal/models"
	"github.com/julianstephens/gradeboard/internal/normalize"
)

// Entry is one merged course row.
type Entry struct {
	Code      string
	Name      string
	Day       string
	StartTime string
	EndTime   string
	Location  string
	Lecturer  string
	Section   string
	Grade     string
	Credit    string
}

// Key is the merge key: code, falling back to name.
func (e Entry) Key() string {
	if e.Code != "" {
		return e.Code
	}
	return e.Name
}

// CreditValue parses the credit text.
func (e Entry) CreditValue() (float64, bool) {
	return normalize.ParseCredit(e.Credit)
}

// StatusText is the grade, or the scheduling state when there is none.
func (e Entry) StatusText() string {
	credit := ""
	if e.Credit != "" {
		credit = fmt.Sprintf(" (%s cr)", e.Credit)
	}
	switch {
	case e.Grade != "":
		return e.Grade + credit
	case e.Day != "":
		return "Ongoing" + credit
	}
	return "In progress" + credit
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func mergeKey(code, name string) string {
	if key := gpa.CodeKey(code); key != "" {
		return key
	}
	if name = strings.ToLower(strings.Join(strings.Fields(name), " ")); name != "" {
		return "name:" + name
	}
	return ""
}

// Merge combines timetable rows and grade records by normalized code, falling
// back to name. Later non-empty timetable fields override earlier ones;
// timetable rows without a section are labeled as the current timetable.
// Grade records are deduplicated first-wins the same way the aggregator does,
// and the first grade record for a course fixes its grade and credit. The
// result is sorted by code.
func Merge(timetable []models.Course, grades []models.GradeRecord) []Entry {
	byKey := map[string]*Entry{}
	graded := map[string]bool{}
	var order []string
	upsert := func(key string) *Entry {
		if e, ok := byKey[key]; ok {
			return e
		}
		e := &Entry{}
		byKey[key] = e
		order = append(order, key)
		return e
	}

	for _, c := range timetable {
		key := mergeKey(c.Code, c.Name)
		if key == "" {
			continue
		}
		e := upsert(key)
		override(&e.Code, c.Code)
		override(&e.Name, c.Name)
		override(&e.Day, c.Day)
		override(&e.StartTime, c.StartTime)
		override(&e.EndTime, c.EndTime)
		override(&e.Location, c.Location)
		override(&e.Lecturer, c.Lecturer)
		override(&e.Section, c.Section)
		if e.Section == "" {
			e.Section = constants.CurrentTimetableSection
		}
		override(&e.Credit, c.Credit)
	}
	for _, g := range gpa.Dedupe(grades) {
		key := mergeKey(g.Code, g.Name)
		if key == "" || graded[key] {
			continue
		}
		graded[key] = true
		e := upsert(key)
		fill(&e.Code, g.Code)
		override(&e.Name, g.Name)
		override(&e.Section, g.Section)
		override(&e.Grade, g.Grade)
		override(&e.Credit, g.CreditText)
	}

	out := make([]Entry, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Code) < strings.ToLower(out[j].Code)
	})
	return out
}

var yearPattern = regexp.MustCompile(`(\d{4})`)

// Search filters entries by a case-insensitive substring of code, name,
// term, or the term's year. An empty query keeps everything.
func Search(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		term := strings.ToLower(e.Section)
		year := yearPattern.FindString(term)
		if strings.Contains(strings.ToLower(e.Code), q) ||
			strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(term, q) ||
			(year != "" && strings.Contains(year, q)) {
			out = append(out, e)
		}
	}
	return out
}

// Totals sums credits and grade points over entries.
type Totals struct {
	Credits    float64
	GPACredits float64
	Points     float64
	GPA        *float64
}

// Sum computes totals for entries.
func Sum(entries []Entry) Totals {
	var t Totals
	for _, e := range entries {
		credit, ok := e.CreditValue()
		if !ok {
			continue
		}
		t.Credits += credit
		if pts, graded := gpa.Points(e.Grade); graded {
			t.GPACredits += credit
			t.Points += credit * pts
		}
	}
	if t.GPACredits > 0 {
		g := t.Points / t.GPACredits
		t.GPA = &g
	}
	return t
}
