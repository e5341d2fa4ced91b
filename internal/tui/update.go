package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/gradeboard/internal/constants"
	"github.com/julianstephens/gradeboard/internal/dashboard"
	apperrors "github.com/julianstephens/gradeboard/internal/errors"
	"github.com/julianstephens/gradeboard/internal/gpa"
	"github.com/julianstephens/gradeboard/internal/logger"
)

const tabCount = int(constants.StateAttendance) + 1

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m, nil

	case loadedMsg:
		return m.handleLoaded(msg), nil

	case clockTickMsg:
		m.rebuild()
		return m, clockTick()

	case checkinMsg:
		if msg.err != nil {
			logger.Warn("Check-in request failed", "error", msg.err)
		}
		m.attendanceModel.SetResult(msg.result)
		return m, nil

	case statusMsg:
		if msg.gen != m.pollGen || !m.attendanceModel.Monitoring {
			return m, nil
		}
		if msg.err != nil {
			logger.Warn("Attendance status poll failed", "session", m.attendanceModel.SessionID, "error", msg.err)
			m.attendanceModel.SetStatusError(apperrors.Message(msg.err), msg.at)
		} else {
			m.attendanceModel.SetStatus(msg.status, msg.at)
		}
		return m, pollTick(msg.gen, m.pollInterval())

	case pollTickMsg:
		if msg.gen != m.pollGen || !m.attendanceModel.Monitoring {
			return m, nil
		}
		return m, m.statusCmd(msg.gen, m.attendanceModel.SessionID)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == constants.StateCourses && m.coursesModel.Searching() {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			return m.quit()
		case tea.KeyEsc, tea.KeyEnter:
			m.coursesModel.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.coursesModel, cmd = m.coursesModel.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.quit()
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.switchTab(1)
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.switchTab(-1)
		return m, nil
	case key.Matches(keyMsg, m.keys.Reload):
		return m.reload()
	}

	switch m.state {
	case constants.StateWeek:
		var cmd tea.Cmd
		m.weekModel, cmd = m.weekModel.Update(msg)
		return m, cmd

	case constants.StateCourses:
		switch {
		case key.Matches(keyMsg, m.keys.Search):
			cmd := m.coursesModel.Focus()
			return m, cmd
		case key.Matches(keyMsg, m.keys.Group):
			m.coursesModel.ToggleGroup()
			return m, nil
		}
		var cmd tea.Cmd
		m.coursesModel, cmd = m.coursesModel.Update(msg)
		return m, cmd

	case constants.StatePlanner:
		switch {
		case key.Matches(keyMsg, m.keys.Target):
			return m.openTargetForm()
		case key.Matches(keyMsg, m.keys.Grades):
			return m.openGradesForm()
		}

	case constants.StateAttendance:
		switch {
		case key.Matches(keyMsg, m.keys.Checkin):
			return m.openCheckinForm()
		case key.Matches(keyMsg, m.keys.Monitor):
			return m.openSessionForm()
		case key.Matches(keyMsg, m.keys.Stop):
			m.stopMonitor()
			return m, nil
		}
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.stopMonitor()
	m.quitting = true
	return m, tea.Quit
}

// switchTab moves between tabs. Leaving the attendance tab stops the
// status monitor.
func (m *Model) switchTab(step int) {
	next := constants.SessionState((int(m.state) + step + tabCount) % tabCount)
	if m.state == constants.StateAttendance && next != constants.StateAttendance {
		m.stopMonitor()
	}
	m.state = next
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.deps.Loader == nil {
		return m, nil
	}
	m.deps.Loader.Invalidate(m.deps.Settings.StudentID)
	m.loadGen++
	m.loading = true
	m.loadErr = ""
	return m, m.loadCmd(m.loadGen)
}

func (m Model) handleLoaded(msg loadedMsg) Model {
	if msg.gen != m.loadGen {
		return m
	}
	m.loading = false
	if msg.err != nil {
		logger.Error("Failed to load schedule", "student", m.deps.Settings.StudentID, "error", msg.err)
		m.loadErr = apperrors.Message(msg.err)
		return m
	}
	m.loadErr = ""
	res := msg.result
	m.result = &res
	m.rebuild()
	return m
}

// rebuild derives the view from the last loaded document as of now and
// recomputes the planner results against it.
func (m *Model) rebuild() {
	if m.result == nil {
		return
	}
	v := dashboard.Build(m.result.Document, m.deps.Settings, m.deps.Clock())
	m.view = &v
	m.todayModel.SetView(m.view)
	m.weekModel.SetView(m.view)
	m.coursesModel.SetEntries(v.Catalog)
	m.progressModel.SetView(m.view)

	if m.target != nil {
		plan := v.PlanTarget(*m.target)
		m.goalPlan = &plan
	}
	if m.expected != nil {
		proj := v.Predict(m.expected)
		m.projection = &proj
	}
}

func (m *Model) resize() {
	contentHeight := max(m.height-6, 1)
	contentWidth := max(m.width-4, 1)
	m.todayModel.SetSize(m.width, contentHeight)
	m.weekModel.SetSize(contentWidth, contentHeight)
	m.coursesModel.SetSize(contentWidth, contentHeight)
	m.progressModel.SetSize(contentWidth)
	m.help.Width = m.width
}

// ApplyTarget runs the goal planner for a typed target. Text that does not
// parse as a number is treated as no target.
func (m *Model) ApplyTarget(text string) {
	target, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		target = 0
	}
	m.target = &target
	if m.view != nil {
		plan := m.view.PlanTarget(target)
		m.goalPlan = &plan
	}
}

// ApplyExpected runs the predictive planner for grades keyed by course key.
func (m *Model) ApplyExpected(expected map[string]string) {
	m.expected = expected
	if m.view != nil {
		proj := m.view.Predict(expected)
		m.projection = &proj
	}
}

// StartMonitor begins polling sessionID. Any earlier monitor's pending
// ticks are dropped by the generation bump.
func (m *Model) StartMonitor(sessionID string) tea.Cmd {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	m.pollGen++
	m.attendanceModel.StartMonitor(sessionID)
	logger.Debug("Attendance monitor started", "session", sessionID, "interval", m.pollInterval())
	return m.statusCmd(m.pollGen, sessionID)
}

func (m *Model) stopMonitor() {
	if !m.attendanceModel.Monitoring {
		return
	}
	m.pollGen++
	m.attendanceModel.StopMonitor()
	logger.Debug("Attendance monitor stopped", "session", m.attendanceModel.SessionID)
}

func (m Model) openForm(kind formKind, form *huh.Form) (tea.Model, tea.Cmd) {
	m.form = form.WithShowHelp(true)
	m.formKind = kind
	if m.width > 0 {
		m.form = m.form.WithWidth(min(m.width-4, 72))
	}
	return m, m.form.Init()
}

func (m Model) openTargetForm() (tea.Model, tea.Cmd) {
	m.targetForm = &TargetFormModel{}
	if m.target != nil && *m.target > 0 {
		m.targetForm.Target = strconv.FormatFloat(*m.target, 'f', -1, 64)
	}
	return m.openForm(formTarget, NewTargetForm(m.targetForm))
}

func (m Model) openGradesForm() (tea.Model, tea.Cmd) {
	if m.view == nil {
		return m, nil
	}
	if len(m.view.Ongoing) == 0 {
		m.ApplyExpected(map[string]string{})
		return m, nil
	}
	m.gradesForm = &GradesFormModel{
		Courses: m.view.Ongoing,
		Grades:  make([]string, len(m.view.Ongoing)),
	}
	for i, c := range m.view.Ongoing {
		m.gradesForm.Grades[i] = m.expected[c.Key]
	}
	return m.openForm(formGrades, NewGradesForm(m.gradesForm))
}

func (m Model) openCheckinForm() (tea.Model, tea.Cmd) {
	m.checkinForm = &CheckinFormModel{}
	return m.openForm(formCheckin, NewCheckinForm(m.checkinForm))
}

func (m Model) openSessionForm() (tea.Model, tea.Cmd) {
	m.sessionForm = &SessionFormModel{SessionID: m.attendanceModel.SessionID}
	return m.openForm(formSession, NewSessionForm(m.sessionForm))
}

func (m Model) closeForm() Model {
	m.form = nil
	m.formKind = formNone
	return m
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return m.closeForm(), nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		kind := m.formKind
		m = m.closeForm()
		switch kind {
		case formTarget:
			m.ApplyTarget(m.targetForm.Target)
		case formGrades:
			expected := make(map[string]string, len(m.gradesForm.Courses))
			for i, c := range m.gradesForm.Courses {
				expected[c.Key] = m.gradesForm.Grades[i]
			}
			m.ApplyExpected(expected)
		case formCheckin:
			cmds = append(cmds, m.checkinCmd(m.checkinForm.Code))
		case formSession:
			cmds = append(cmds, m.StartMonitor(m.sessionForm.SessionID))
		}
	case huh.StateAborted:
		m = m.closeForm()
	}
	return m, tea.Batch(cmds...)
}

// NewTargetForm asks for a target cumulative GPA.
func NewTargetForm(fm *TargetFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target GPA").
				Placeholder("e.g. 3.5").
				Value(&fm.Target).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return fmt.Errorf("enter a number")
					}
					if v < 0 || v > 4 {
						return fmt.Errorf("target must be between 0 and 4")
					}
					return nil
				}),
		),
	)
}

// NewGradesForm asks for an expected grade per in-progress course. The
// empty option leaves a course unselected.
func NewGradesForm(fm *GradesFormModel) *huh.Form {
	options := []huh.Option[string]{huh.NewOption("(not selected)", "")}
	options = append(options, huh.NewOptions(gpa.Options()...)...)

	fields := make([]huh.Field, len(fm.Courses))
	for i, c := range fm.Courses {
		title := fmt.Sprintf("%s (%g cr)", c.Label(), c.Credits)
		if c.CreditEstimated {
			title += " *"
		}
		fields[i] = huh.NewSelect[string]().
			Title(title).
			Options(options...).
			Value(&fm.Grades[i])
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

func NewCheckinForm(fm *CheckinFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Session code").
				Value(&fm.Code),
		),
	)
}

func NewSessionForm(fm *SessionFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Session ID").
				Value(&fm.SessionID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("session ID is required")
					}
					return nil
				}),
		),
	)
}
