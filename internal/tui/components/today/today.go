package today

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/gradeboard/internal/dashboard"
	"github.com/julianstephens/gradeboard/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(13)

	classStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(40).
			Align(lipgloss.Center)

	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Model struct {
	Data   *dashboard.View
	width  int
	height int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) SetView(v *dashboard.View) {
	m.Data = v
}

func (m Model) View() string {
	if m.Data == nil {
		return titleStyle.Render("Loading schedule...")
	}
	v := m.Data

	current := "Free time"
	if v.Active != nil {
		current = activeStyle.Render(v.Active.Key() + "\n" + detail(*v.Active))
	}

	var rows []string
	if len(v.Today) == 0 {
		rows = append(rows, detailStyle.Render("No classes today."))
	}
	for _, c := range v.Today {
		marker := "  "
		if v.Active != nil && v.Active.Key() == c.Key() && v.Active.StartTime == c.StartTime {
			marker = "▶ "
		}
		label := c.Key()
		if c.Name != "" && c.Code != "" {
			label += " " + c.Name
		}
		rows = append(rows, marker+timeStyle.Render(c.StartTime+"-"+c.EndTime)+classStyle.Render(label))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(fmt.Sprintf("Now: %s  (%s)", v.Now.Format("15:04"), v.Now.Format("Mon 2006-01-02"))),
		current,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func detail(c models.Course) string {
	parts := []string{c.StartTime + "-" + c.EndTime}
	if c.Location != "" {
		parts = append(parts, "@ "+c.Location)
	}
	if c.Lecturer != "" {
		parts = append(parts, c.Lecturer)
	}
	return detailStyle.Render(strings.Join(parts, "  "))
}
