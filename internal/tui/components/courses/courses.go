package courses

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/gradeboard/internal/catalog"
	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/constants"
)

var (
	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	totalsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(40)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type Model struct {
	search   textinput.Model
	viewport viewport.Model
	entries  []catalog.Entry
	mode     catalog.GroupMode
	loaded   bool
}

func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "code, name, term or year"
	ti.Prompt = "Search: "
	ti.CharLimit = 64
	return Model{
		search:   ti,
		viewport: viewport.New(width, height),
		mode:     catalog.GroupBySemester,
	}
}

// Searching reports whether keystrokes go to the search box.
func (m Model) Searching() bool {
	return m.search.Focused()
}

func (m Model) Mode() catalog.GroupMode {
	return m.mode
}

func (m Model) Query() string {
	return m.search.Value()
}

func (m *Model) Focus() tea.Cmd {
	return m.search.Focus()
}

func (m *Model) Blur() {
	m.search.Blur()
}

func (m *Model) ToggleGroup() {
	m.mode = m.mode.Toggle()
	m.render()
}

func (m *Model) SetEntries(entries []catalog.Entry) {
	m.entries = entries
	m.loaded = true
	m.render()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)
	m.render()
}

// Groups returns the filtered entries grouped by the current mode.
func (m Model) Groups() []catalog.Group {
	return catalog.GroupBy(catalog.Search(m.entries, m.search.Value()), m.mode)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.search.Focused() {
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.render()
		}
		return m, cmd
	}
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.loaded {
		return "Loading courses..."
	}
	header := fmt.Sprintf("%s   Grouped by %s", m.search.View(), m.mode)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.viewport.View())
}

func (m *Model) render() {
	groups := m.Groups()
	if len(groups) == 0 {
		m.viewport.SetContent(constants.MsgNoCourses)
		return
	}
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(groupStyle.Render(g.Label) + " " +
			totalsStyle.Render(fmt.Sprintf("(%s cr, GPA %s)", cli.FormatCredits(g.Credits), cli.FormatGPA(g.GPA))) + "\n")
		for _, e := range g.Entries {
			label := e.Key()
			if e.Name != "" && e.Code != "" {
				label += " " + e.Name
			}
			b.WriteString("  " + nameStyle.Render(label) + statusStyle.Render(e.StatusText()) + "\n")
		}
	}
	m.viewport.SetContent(b.String())
}
