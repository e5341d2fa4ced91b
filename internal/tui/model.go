package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/gradeboard/internal/constants"
	"github.com/julianstephens/gradeboard/internal/dashboard"
	"github.com/julianstephens/gradeboard/internal/gpa"
	"github.com/julianstephens/gradeboard/internal/models"
	"github.com/julianstephens/gradeboard/internal/poller"
	"github.com/julianstephens/gradeboard/internal/tui/components/attendance"
	"github.com/julianstephens/gradeboard/internal/tui/components/courses"
	"github.com/julianstephens/gradeboard/internal/tui/components/progress"
	"github.com/julianstephens/gradeboard/internal/tui/components/today"
	"github.com/julianstephens/gradeboard/internal/tui/components/week"
)

const (
	requestTimeout = 10 * time.Second
	clockInterval  = 30 * time.Second
)

// Loader serves the student's schedule document.
type Loader interface {
	Load(ctx context.Context, studentID string) (dashboard.Result, error)
	Invalidate(studentID string)
}

// AttendanceClient posts check-ins and polls session status.
type AttendanceClient interface {
	CheckIn(ctx context.Context, token string) (models.CheckinResult, error)
	AttendanceStatus(ctx context.Context, sessionID string) (models.AttendanceStatus, error)
}

type Deps struct {
	Loader   Loader
	Client   AttendanceClient
	Settings models.Settings
	Clock    func() time.Time
}

type formKind int

const (
	formNone formKind = iota
	formTarget
	formGrades
	formCheckin
	formSession
)

type TargetFormModel struct {
	Target string
}

type GradesFormModel struct {
	Courses []models.OngoingCourse
	Grades  []string
}

type CheckinFormModel struct {
	Code string
}

type SessionFormModel struct {
	SessionID string
}

type Model struct {
	deps  Deps
	state constants.SessionState
	keys  KeyMap
	help  help.Model

	todayModel      today.Model
	weekModel       week.Model
	coursesModel    courses.Model
	progressModel   progress.Model
	attendanceModel attendance.Model

	loading bool
	loadGen int
	loadErr string
	result  *dashboard.Result
	view    *dashboard.View

	// Planner inputs are kept so a reload recomputes the results.
	target     *float64
	expected   map[string]string
	goalPlan   *gpa.GoalPlan
	projection *gpa.Projection

	form        *huh.Form
	formKind    formKind
	targetForm  *TargetFormModel
	gradesForm  *GradesFormModel
	checkinForm *CheckinFormModel
	sessionForm *SessionFormModel

	pollGen int

	quitting bool
	width    int
	height   int
}

func NewModel(deps Deps) Model {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return Model{
		deps:            deps,
		state:           constants.StateToday,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		todayModel:      today.New(),
		weekModel:       week.New(0, 0),
		coursesModel:    courses.New(0, 0),
		progressModel:   progress.New(0),
		attendanceModel: attendance.New(),
		loading:         true,
		loadGen:         1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(m.loadGen), clockTick())
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Reload}
	switch m.state {
	case constants.StateCourses:
		keys = append(keys, m.keys.Search, m.keys.Group)
	case constants.StatePlanner:
		keys = append(keys, m.keys.Target, m.keys.Grades)
	case constants.StateAttendance:
		keys = append(keys, m.keys.Checkin, m.keys.Monitor, m.keys.Stop)
	}
	return append(keys, m.keys.Help, m.keys.Quit)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Reload, m.keys.Help, m.keys.Quit}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Esc}

	var actions []key.Binding
	switch m.state {
	case constants.StateCourses:
		actions = []key.Binding{m.keys.Search, m.keys.Group}
	case constants.StatePlanner:
		actions = []key.Binding{m.keys.Target, m.keys.Grades}
	case constants.StateAttendance:
		actions = []key.Binding{m.keys.Checkin, m.keys.Monitor, m.keys.Stop}
	}
	return [][]key.Binding{global, navigation, actions}
}

type loadedMsg struct {
	gen    int
	result dashboard.Result
	err    error
}

type checkinMsg struct {
	result models.CheckinResult
	err    error
}

type statusMsg struct {
	gen    int
	status models.AttendanceStatus
	err    error
	at     time.Time
}

type pollTickMsg struct {
	gen int
}

type clockTickMsg time.Time

func (m Model) loadCmd(gen int) tea.Cmd {
	loader := m.deps.Loader
	studentID := m.deps.Settings.StudentID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := loader.Load(ctx, studentID)
		return loadedMsg{gen: gen, result: res, err: err}
	}
}

func (m Model) checkinCmd(code string) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := client.CheckIn(ctx, code)
		return checkinMsg{result: res, err: err}
	}
}

func (m Model) statusCmd(gen int, sessionID string) tea.Cmd {
	client := m.deps.Client
	clock := m.deps.Clock
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		st, err := client.AttendanceStatus(ctx, sessionID)
		return statusMsg{gen: gen, status: st, err: err, at: clock()}
	}
}

func (m Model) pollInterval() time.Duration {
	if m.deps.Settings.PollIntervalSeconds > 0 {
		return time.Duration(m.deps.Settings.PollIntervalSeconds) * time.Second
	}
	return poller.DefaultInterval
}

func pollTick(gen int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}
