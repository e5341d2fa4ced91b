package cli

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/gradeboard/internal/models"
)

// FormatGPA renders an optional GPA with two decimals.
func FormatGPA(gpa *float64) string {
	if gpa == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *gpa)
}

// FormatCredits renders a credit figure without trailing zeros.
func FormatCredits(credits float64) string {
	return strconv.FormatFloat(credits, 'f', -1, 64)
}

// FormatClass renders one timetable row.
func FormatClass(c models.Course) string {
	line := fmt.Sprintf("%s-%s  %s", c.StartTime, c.EndTime, c.Key())
	if c.Name != "" && c.Code != "" {
		line += " " + c.Name
	}
	if c.Location != "" {
		line += "  @ " + c.Location
	}
	if c.Lecturer != "" {
		line += "  (" + c.Lecturer + ")"
	}
	return line
}
