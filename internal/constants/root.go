package constants

// SessionState identifies the active tab of the TUI.
type SessionState int

const (
	AppName            = "gradeboard"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/gradeboard/gradeboard.db"
	Version            = "v0.1.0"

	// SessionKeyringPrefix namespaces per-student session cookies in the keyring.
	SessionKeyringPrefix = "session:"

	// SessionCookieName is the cookie the schedule service expects.
	SessionCookieName = "session"

	// RequestIDHeader is attached to every outbound request.
	RequestIDHeader = "X-Request-ID"

	DateFormat = "2006-01-02"
	TimeFormat = "15:04"

	// CurrentTimetableSection labels timetable rows that carry no section.
	CurrentTimetableSection = "Current timetable"

	// DefaultPlannedCredits is assumed for an in-progress course without a usable credit value.
	DefaultPlannedCredits = 3.0

	// Static user-facing messages
	MsgDataUnavailable = "Could not load schedule data."
	MsgSignInAgain     = "Please sign in again."
	MsgEnterSession    = "Please enter the session code."
	MsgNetworkError    = "Network error. Try again."
	MsgCheckinOK       = "Attendance recorded."
	MsgCheckinFailed   = "Check-in failed."
	MsgEnterTarget     = "Enter a target GPA to see your plan."
	MsgSelectGrades    = "Select all grades first"
	MsgNoOngoing       = "No ongoing courses found right now."
	MsgNoCourses       = "No courses found."
)

// Session States
const (
	StateToday SessionState = iota
	StateWeek
	StateCourses
	StateProgress
	StatePlanner
	StateAttendance
)
