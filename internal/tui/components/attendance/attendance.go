package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/gradeboard/internal/models"
)

var (
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42")).
		Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	presentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Model is the attendance pane. Each status update replaces the previous
// one wholesale.
type Model struct {
	Result     *models.CheckinResult
	SessionID  string
	Monitoring bool
	Status     *models.AttendanceStatus
	StatusErr  string
	UpdatedAt  time.Time
}

func New() Model {
	return Model{}
}

func (m *Model) SetResult(r models.CheckinResult) {
	m.Result = &r
}

// StartMonitor clears the previous session's state.
func (m *Model) StartMonitor(sessionID string) {
	m.SessionID = sessionID
	m.Monitoring = true
	m.Status = nil
	m.StatusErr = ""
	m.UpdatedAt = time.Time{}
}

func (m *Model) StopMonitor() {
	m.Monitoring = false
}

func (m *Model) SetStatus(s models.AttendanceStatus, at time.Time) {
	m.Status = &s
	m.StatusErr = ""
	m.UpdatedAt = at
}

func (m *Model) SetStatusError(msg string, at time.Time) {
	m.StatusErr = msg
	m.UpdatedAt = at
}

func (m Model) View() string {
	var sections []string

	if m.Result != nil {
		if m.Result.OK {
			sections = append(sections, okStyle.Render("✓ "+m.Result.Message))
		} else {
			sections = append(sections, failStyle.Render("❌ "+m.Result.Message))
		}
	} else {
		sections = append(sections, mutedStyle.Render("Press c to check in with a session code."))
	}
	sections = append(sections, "")

	if m.SessionID == "" {
		sections = append(sections, mutedStyle.Render("Press m to monitor an attendance session."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	state := "stopped"
	if m.Monitoring {
		state = "live"
	}
	header := fmt.Sprintf("Session %s (%s)", m.SessionID, state)
	if !m.UpdatedAt.IsZero() {
		header += mutedStyle.Render("  updated " + m.UpdatedAt.Format("15:04:05"))
	}
	sections = append(sections, header)

	if m.StatusErr != "" {
		sections = append(sections, failStyle.Render(m.StatusErr))
	}
	if m.Status == nil {
		if m.StatusErr == "" {
			sections = append(sections, mutedStyle.Render("Waiting for status..."))
		}
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	code := m.Status.CurrentCode
	if code == "" {
		code = "-"
	}
	sections = append(sections,
		codeStyle.Render("Code "+code),
		fmt.Sprintf("Present %d / %d", m.Status.Present(), len(m.Status.Students)),
		"",
	)
	var rows []string
	for _, s := range m.Status.Students {
		status := s.Status
		if status == "present" {
			status = presentStyle.Render(status)
		}
		rows = append(rows, fmt.Sprintf("%-12s %-24s %-10s %s", s.ID, s.Name, status, s.Time))
	}
	sections = append(sections, strings.Join(rows, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
