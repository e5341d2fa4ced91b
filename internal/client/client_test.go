package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julianstephens/gradeboard/internal/constants"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "://bad"} {
		if _, err := New(raw); err == nil {
			t.Errorf("New(%q) should fail", raw)
		}
	}
}

func TestFetchSchedule(t *testing.T) {
	var gotPath, gotCookie, gotRequestID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get(constants.RequestIDHeader)
		if ck, err := r.Cookie(constants.SessionCookieName); err == nil {
			gotCookie = ck.Value
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"timetable":[{"course_code":"CS101","day":"Mon","credit":3}],"grades":[{"code":"MA100","grade":"A"}]}`))
	}, WithSession("cookie-1"))

	doc, err := c.FetchSchedule(context.Background(), "S1001")
	if err != nil {
		t.Fatalf("FetchSchedule() error = %v", err)
	}
	if gotPath != "/schedule/S1001.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotCookie != "cookie-1" {
		t.Errorf("cookie = %q, want cookie-1", gotCookie)
	}
	if gotRequestID == "" {
		t.Error("request id header missing")
	}
	if len(doc.Timetable) != 1 || len(doc.Grades) != 1 {
		t.Fatalf("document = %+v", doc)
	}
	if doc.Timetable[0]["credit"] != float64(3) {
		t.Errorf("credit decoded as %T %v", doc.Timetable[0]["credit"], doc.Timetable[0]["credit"])
	}
}

func TestFetchScheduleErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, `{"error":"no such student"}`, ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, ``, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ``, ErrUnauthorized},
		{"server error", http.StatusInternalServerError, `boom`, ErrUnavailable},
		{"bad payload", http.StatusOK, `{"timetable": "nope"}`, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.FetchSchedule(context.Background(), "S1")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FetchSchedule() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetchScheduleTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := New(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	srv.Close()

	if _, err := c.FetchSchedule(context.Background(), "S1"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("FetchSchedule() error = %v, want %v", err, ErrUnavailable)
	}
}

func TestCheckIn(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantOK  bool
		wantMsg string
	}{
		{"accepted", http.StatusOK, `{"ok":true,"message":"Attendance recorded"}`, true, "Attendance recorded"},
		{"accepted without message", http.StatusOK, `{"ok":true}`, true, constants.MsgCheckinOK},
		{"rejected code", http.StatusBadRequest, `{"ok":false,"error":"Invalid or expired code."}`, false, "Invalid or expired code."},
		{"ok false with 200", http.StatusOK, `{"ok":false,"message":"Session closed"}`, false, "Session closed"},
		{"server error without body", http.StatusBadGateway, ``, false, constants.MsgCheckinFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got checkinRequest
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/student/attendance/checkin" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				_ = json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			res, err := c.CheckIn(context.Background(), " 483920 ")
			if err != nil {
				t.Fatalf("CheckIn() error = %v", err)
			}
			if got.SessionToken != "483920" {
				t.Errorf("session_token = %q", got.SessionToken)
			}
			if res.OK != tt.wantOK || res.Message != tt.wantMsg {
				t.Errorf("CheckIn() = %+v, want ok=%v msg=%q", res, tt.wantOK, tt.wantMsg)
			}
		})
	}
}

func TestCheckInBlankToken(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	res, err := c.CheckIn(context.Background(), "   ")
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if res.OK || res.Message != constants.MsgEnterSession {
		t.Errorf("CheckIn(blank) = %+v", res)
	}
	if called {
		t.Error("blank token should not reach the service")
	}
}

func TestCheckInNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, _ := New(srv.URL)
	srv.Close()

	res, err := c.CheckIn(context.Background(), "1234")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("CheckIn() error = %v, want %v", err, ErrUnavailable)
	}
	if res.Message != constants.MsgNetworkError {
		t.Errorf("Message = %q, want %q", res.Message, constants.MsgNetworkError)
	}
}

func TestAttendanceStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/teacher/attendance/sess-9/status" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"session_id":"sess-9","current_code":"771204","students":[{"id":"S1","name":"Ana","status":"present","time":"09:02"},{"id":"S2","name":"Ben","status":"pending","time":""}]}`))
	})

	st, err := c.AttendanceStatus(context.Background(), "sess-9")
	if err != nil {
		t.Fatalf("AttendanceStatus() error = %v", err)
	}
	if st.SessionID != "sess-9" || st.CurrentCode != "771204" || len(st.Students) != 2 {
		t.Errorf("AttendanceStatus() = %+v", st)
	}
	if st.Present() != 1 {
		t.Errorf("Present() = %d, want 1", st.Present())
	}
}
