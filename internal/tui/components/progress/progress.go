package progress

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/dashboard"
)

var (
	gpaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(22)

	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type Model struct {
	bar  progress.Model
	Data *dashboard.View
}

func New(width int) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = barWidth(width)
	return Model{bar: bar}
}

func barWidth(width int) int {
	if width <= 0 {
		return 40
	}
	return max(min(width-8, 60), 10)
}

func (m *Model) SetSize(width int) {
	m.bar.Width = barWidth(width)
}

func (m *Model) SetView(v *dashboard.View) {
	m.Data = v
}

func (m Model) View() string {
	if m.Data == nil {
		return "Loading progress..."
	}
	s := m.Data.Summary

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		gpaStyle.Render("Cumulative GPA  "+cli.FormatGPA(s.GPA)),
		"",
		m.bar.ViewAs(min(s.PercentComplete/100, 1)),
		row("Completed credits", fmt.Sprintf("%s / %s (%.1f%%)",
			cli.FormatCredits(s.CompletedCredits), cli.FormatCredits(s.RequiredCredits), s.PercentComplete)),
		row("Remaining credits", cli.FormatCredits(s.RemainingCredits)),
		row("GPA credits", fmt.Sprintf("%s / %s (%s remaining)",
			cli.FormatCredits(s.GradedCredits), cli.FormatCredits(s.MaxGPACredits), cli.FormatCredits(s.RemainingGPACredits))),
		row("In progress", cli.FormatCredits(s.InProgressCredits)),
		row("Transfer/pass", cli.FormatCredits(s.TransferCredits)),
		row("Withdrawn", cli.FormatCredits(s.WithdrawnCredits)),
		row("This term", fmt.Sprintf("%s credits across %d courses",
			cli.FormatCredits(m.Data.TermCredits), m.Data.CourseCount)),
	)
}
