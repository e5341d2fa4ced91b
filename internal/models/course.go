package models

// RecordStatus classifies a grade record for aggregation.
type RecordStatus string

const (
	StatusGraded     RecordStatus = "graded"
	StatusInProgress RecordStatus = "in_progress"
	StatusTransfer   RecordStatus = "transfer"
	StatusWithdrawn  RecordStatus = "withdrawn"
)

// Valid reports whether s is one of the known statuses.
func (s RecordStatus) Valid() bool {
	switch s {
	case StatusGraded, StatusInProgress, StatusTransfer, StatusWithdrawn:
		return true
	}
	return false
}

// Course is a normalized timetable entry.
type Course struct {
	Code      string `json:"course_code"`
	Name      string `json:"course_name"`
	Day       string `json:"day"`        // Mon..Sun, empty when unscheduled
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	Location  string `json:"location"`
	Lecturer  string `json:"lecturer"`
	Section   string `json:"section"`
	Credit    string `json:"credit"`
}

// Key identifies the course by code, falling back to name.
func (c Course) Key() string {
	if c.Code != "" {
		return c.Code
	}
	return c.Name
}

// GradeRecord is a normalized grade history entry.
type GradeRecord struct {
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	Section    string       `json:"section"`
	Grade      string       `json:"grade"`
	Credit     float64      `json:"credit"`
	CreditOK   bool         `json:"credit_ok"` // false when the credit was missing or unparseable
	CreditText string       `json:"credit_text"`
	Status     RecordStatus `json:"status"`
}

// OngoingCourse is a course the student is currently taking, as offered to
// the predictive planner.
type OngoingCourse struct {
	Key             string  `json:"key"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Credits         float64 `json:"credits"`
	CreditEstimated bool    `json:"credit_estimated"`
}

// Label is the display name for the course.
func (c OngoingCourse) Label() string {
	switch {
	case c.Code != "" && c.Name != "":
		return c.Code + " " + c.Name
	case c.Code != "":
		return c.Code
	case c.Name != "":
		return c.Name
	}
	return "Course"
}
