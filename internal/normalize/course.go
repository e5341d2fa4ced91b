package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/gradeboard/internal/models"
)

var dayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Day normalizes a weekday to Mon..Sun. Numeric codes are 0=Sunday through
// 6=Saturday. Anything unrecognized yields "".
func Day(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return ""
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		if n == math.Trunc(n) && n >= 0 && n <= 6 {
			return dayLabels[int(n)]
		}
		return ""
	}
	if len(v) < 3 {
		return ""
	}
	prefix := v[:3]
	for _, label := range dayLabels {
		if strings.ToLower(label) == prefix {
			return label
		}
	}
	return ""
}

// Course normalizes one timetable record.
func Course(rec models.RawRecord) models.Course {
	start := Lookup(rec, FieldStart)
	end := Lookup(rec, FieldEnd)
	if start == "" || end == "" {
		if rangeStart, rangeEnd, ok := strings.Cut(Lookup(rec, FieldTimeRange), "-"); ok {
			if start == "" {
				start = strings.TrimSpace(rangeStart)
			}
			if end == "" {
				end = strings.TrimSpace(rangeEnd)
			}
		}
	}
	return models.Course{
		Code:      Lookup(rec, FieldCode),
		Name:      Lookup(rec, FieldName),
		Day:       Day(Lookup(rec, FieldDay)),
		StartTime: start,
		EndTime:   end,
		Location:  Lookup(rec, FieldLocation),
		Lecturer:  Lookup(rec, FieldLecturer),
		Section:   Lookup(rec, FieldSection),
		Credit:    Lookup(rec, FieldCredit),
	}
}

// Timetable normalizes every timetable record, keeping order.
func Timetable(recs []models.RawRecord) []models.Course {
	out := make([]models.Course, 0, len(recs))
	for _, r := range recs {
		out = append(out, Course(r))
	}
	return out
}

// CourseCount is the number of distinct courses on the timetable, keyed by
// code or name. Entries with neither fall back to the raw entry count.
func CourseCount(courses []models.Course) int {
	seen := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		if k := c.Key(); k != "" {
			seen[k] = struct{}{}
		}
	}
	if len(seen) > 0 {
		return len(seen)
	}
	return len(courses)
}
