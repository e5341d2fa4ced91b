package progress

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/gradeboard/internal/gpa"
	"github.com/julianstephens/gradeboard/internal/models"
)

// promptGrades asks for an expected grade per course.
func promptGrades(courses []models.OngoingCourse) (map[string]string, error) {
	values := make([]string, len(courses))
	fields := make([]huh.Field, len(courses))
	for i, course := range courses {
		fields[i] = huh.NewSelect[string]().
			Title(fmt.Sprintf("%s (%g cr)", course.Label(), course.Credits)).
			Options(huh.NewOptions(gpa.Options()...)...).
			Value(&values[i])
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return nil, fmt.Errorf("reading expected grades: %w", err)
	}

	expected := make(map[string]string, len(courses))
	for i, course := range courses {
		expected[course.Key] = values[i]
	}
	return expected, nil
}
