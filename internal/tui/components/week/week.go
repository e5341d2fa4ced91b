package week

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/gradeboard/internal/dashboard"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(13)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	Data     *dashboard.View
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Data == nil {
		return "Loading schedule..."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

func (m *Model) SetView(v *dashboard.View) {
	m.Data = v
	m.render()
}

func (m *Model) render() {
	if m.Data == nil {
		return
	}
	var b strings.Builder
	for i, day := range m.Data.Week {
		if i > 0 {
			b.WriteString("\n")
		}
		header := day.Label + " " + day.Date.Format("2006-01-02")
		if day.IsToday {
			b.WriteString(todayStyle.Render(header+" (today)") + "\n")
		} else {
			b.WriteString(dayStyle.Render(header) + "\n")
		}
		if len(day.Classes) == 0 {
			b.WriteString("  " + emptyStyle.Render("-") + "\n")
			continue
		}
		for _, c := range day.Classes {
			line := c.Key()
			if c.Name != "" && c.Code != "" {
				line += " " + c.Name
			}
			if c.Location != "" {
				line += "  @ " + c.Location
			}
			b.WriteString("  " + timeStyle.Render(c.StartTime+"-"+c.EndTime) + line + "\n")
		}
	}
	m.viewport.SetContent(b.String())
}
