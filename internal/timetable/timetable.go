// Package timetable answers "what's on" questions over normalized courses.
package timetable

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/gradeboard/internal/models"
)

var weekdayLabels = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayLabel is the three letter label for t's weekday.
func DayLabel(t time.Time) string {
	return weekdayLabels[t.Weekday()]
}

// Minutes parses "HH:MM" into minutes after midnight.
func Minutes(hhmm string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	mins, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil || mins < 0 || mins > 59 {
		return 0, false
	}
	return hours*60 + mins, true
}

// OnDay returns the classes held on the given day label, by start time.
func OnDay(courses []models.Course, label string) []models.Course {
	var out []models.Course
	for _, c := range courses {
		if c.Day != "" && c.Day == label {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// Today returns the classes held on now's weekday.
func Today(courses []models.Course, now time.Time) []models.Course {
	return OnDay(courses, DayLabel(now))
}

// Day is one column of the weekly view.
type Day struct {
	Label   string
	Date    time.Time
	IsToday bool
	Classes []models.Course
}

// Week lays out Monday through Sunday of the week containing now.
func Week(courses []models.Course, now time.Time) []Day {
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.Date()
	monday := time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())

	days := make([]Day, 7)
	for i := range days {
		date := monday.AddDate(0, 0, i)
		label := DayLabel(date)
		days[i] = Day{
			Label:   label,
			Date:    date,
			IsToday: i == offset,
			Classes: OnDay(courses, label),
		}
	}
	return days
}

// Active returns the first class in progress at now. Classes with malformed
// times are skipped.
func Active(courses []models.Course, now time.Time) (models.Course, bool) {
	label := DayLabel(now)
	current := now.Hour()*60 + now.Minute()
	for _, c := range courses {
		if c.Day != label {
			continue
		}
		start, ok := Minutes(c.StartTime)
		if !ok {
			continue
		}
		end, ok := Minutes(c.EndTime)
		if !ok {
			continue
		}
		if start <= current && current <= end {
			return c, true
		}
	}
	return models.Course{}, false
}
