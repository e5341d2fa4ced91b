package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/constants"
	"github.com/julianstephens/gradeboard/internal/dashboard"
	"github.com/julianstephens/gradeboard/internal/gpa"
)

var tabTitles = []string{"Today", "Week", "Courses", "Progress", "Planner", "Attendance"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.form != nil:
		content = docStyle.Render(m.form.View())
	case m.state == constants.StateToday:
		content = m.todayModel.View()
	case m.state == constants.StateWeek:
		content = docStyle.Render(m.weekModel.View())
	case m.state == constants.StateCourses:
		content = docStyle.Render(m.coursesModel.View())
	case m.state == constants.StateProgress:
		content = docStyle.Render(m.progressModel.View())
	case m.state == constants.StatePlanner:
		content = docStyle.Render(m.viewPlanner())
	case m.state == constants.StateAttendance:
		content = docStyle.Render(m.attendanceModel.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewBanner(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewBanner reports load state: in flight, failed, or served offline.
func (m Model) viewBanner() string {
	switch {
	case m.loading && m.result != nil:
		return mutedStyle.Render("Refreshing...")
	case m.loadErr != "":
		return dangerStyle.Render(m.loadErr)
	case m.result != nil && m.result.Source == dashboard.SourceSnapshot:
		return warningStyle.Render(fmt.Sprintf("Offline: showing data from %s",
			m.result.FetchedAt.Local().Format(constants.DateFormat+" "+constants.TimeFormat)))
	}
	return ""
}

func (m Model) viewPlanner() string {
	if m.view == nil {
		return "Loading planner..."
	}
	v := m.view

	sections := []string{
		headingStyle.Render("Target GPA"),
	}
	if m.goalPlan == nil {
		sections = append(sections, mutedStyle.Render(constants.MsgEnterTarget+" (press t)"))
	} else {
		sections = append(sections, m.goalPlan.Summary())
		if (m.goalPlan.Status == gpa.GoalRequired || m.goalPlan.Status == gpa.GoalUnreachable) && len(m.goalPlan.Mix) > 0 {
			sections = append(sections, "", fmt.Sprintf("Suggested mix across %d courses:", m.goalPlan.CourseCount))
			for _, item := range m.goalPlan.Mix {
				sections = append(sections, "  "+item.String())
			}
		}
	}

	sections = append(sections, "", headingStyle.Render("Expected grades"))
	switch {
	case m.projection == nil && len(v.Ongoing) == 0:
		sections = append(sections, mutedStyle.Render(constants.MsgNoOngoing))
	case m.projection == nil:
		sections = append(sections, mutedStyle.Render(fmt.Sprintf("%d current courses. Press e to pick expected grades.", len(v.Ongoing))))
	case m.projection.Status == gpa.PredictIncomplete:
		labels := make([]string, 0, len(m.projection.Missing))
		for _, c := range v.Ongoing {
			for _, k := range m.projection.Missing {
				if c.Key == k {
					labels = append(labels, c.Label())
				}
			}
		}
		sort.Strings(labels)
		sections = append(sections, warningStyle.Render(m.projection.Summary()), mutedStyle.Render("Missing: "+strings.Join(labels, ", ")))
	default:
		sections = append(sections, m.projection.Summary())
		if m.projection.Status == gpa.PredictProjected {
			sections = append(sections, mutedStyle.Render(fmt.Sprintf("Adds %s credits and %.2f grade points",
				cli.FormatCredits(m.projection.AddedCredits), m.projection.AddedPoints)))
		}
	}
	for _, c := range v.Ongoing {
		if c.CreditEstimated {
			sections = append(sections, mutedStyle.Render(fmt.Sprintf("* %s assumed %s credits", c.Label(), cli.FormatCredits(c.Credits))))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
