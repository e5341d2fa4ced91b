package models

// CheckinResult is the outcome of a check-in attempt as shown to the student.
type CheckinResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// AttendanceStudent is one row of a live attendance session.
type AttendanceStudent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Time   string `json:"time"`
}

// AttendanceStatus is the polled state of an attendance session.
type AttendanceStatus struct {
	SessionID   string              `json:"session_id"`
	Students    []AttendanceStudent `json:"students"`
	CurrentCode string              `json:"current_code"`
}

// Present counts students marked present.
func (s AttendanceStatus) Present() int {
	n := 0
	for _, st := range s.Students {
		if st.Status == "present" {
			n++
		}
	}
	return n
}
