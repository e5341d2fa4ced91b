// Package normalize maps heterogeneous schedule document records onto the
// canonical course and grade shapes.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/gradeboard/internal/models"
)

// Field is a canonical record field.
type Field string

const (
	FieldCode      Field = "code"
	FieldName      Field = "name"
	FieldDay       Field = "day"
	FieldStart     Field = "start"
	FieldEnd       Field = "end"
	FieldTimeRange Field = "time_range"
	FieldLocation  Field = "location"
	FieldLecturer  Field = "lecturer"
	FieldSection   Field = "section"
	FieldGrade     Field = "grade"
	FieldCredit    Field = "credit"
	FieldStatus    Field = "status"
)

// Candidates lists, per canonical field, the source keys tried in order.
// Supporting a new source shape means adding keys here.
var Candidates = map[Field][]string{
	FieldCode:      {"course_code", "courseCode", "coursecode", "code"},
	FieldName:      {"course_name", "courseName", "coursename", "name"},
	FieldDay:       {"day", "dayOfWeek", "Day", "day_label"},
	FieldStart:     {"start_time", "startTime"},
	FieldEnd:       {"end_time", "endTime"},
	FieldTimeRange: {"time", "Time"},
	FieldLocation:  {"location", "room", "classroom", "place"},
	FieldLecturer:  {"lecturer", "instructor", "teacher"},
	FieldSection:   {"section", "term", "semester"},
	FieldGrade:     {"grade", "Grade", "letter_grade"},
	FieldCredit:    {"credit", "credits", "creditHours", "credit_hours"},
	FieldStatus:    {"status", "Status"},
}

// Lookup returns the first non-empty candidate value for f.
func Lookup(rec models.RawRecord, f Field) string {
	for _, key := range Candidates[f] {
		v, ok := rec[key]
		if !ok {
			continue
		}
		if s, ok := scalar(v); ok && s != "" {
			return s
		}
	}
	return ""
}

// scalar renders strings and numbers as trimmed text. Other JSON values
// (booleans, objects, arrays, null) carry no usable field value.
func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", false
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case json.Number:
		return x.String(), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	}
	return "", false
}

// ParseCredit reads the leading decimal number of s. Negative values and
// text without a numeric prefix are rejected.
func ParseCredit(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
