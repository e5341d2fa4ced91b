package attendance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/constants"
	"github.com/julianstephens/gradeboard/internal/storage/sqlite"
)

func setupTestDB(t *testing.T, baseURL string) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	gokeyring.MockInit()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	out := &bytes.Buffer{}
	clock := func() time.Time { return time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC) }
	return &cli.Context{Store: store, BaseURL: baseURL, Out: out, Clock: clock}, out
}

func checkinServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/student/attendance/checkin" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			SessionToken string `json:"session_token"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.SessionToken == "ABC123" {
			w.Write([]byte(`{"ok":true}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"error":"Invalid or expired code."}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckinCmd(t *testing.T) {
	srv := checkinServer(t)
	tests := []struct {
		name string
		code string
		want string
	}{
		{"accepted", "ABC123", "✓ " + constants.MsgCheckinOK},
		{"trimmed", "  ABC123 ", "✓ " + constants.MsgCheckinOK},
		{"rejected", "WRONG", "❌ Invalid or expired code."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupTestDB(t, srv.URL)
			cmd := &CheckinCmd{Code: tt.code, Timeout: time.Second}
			if err := cmd.Run(ctx); err != nil {
				t.Fatalf("checkin failed: %v", err)
			}
			if got := strings.TrimSpace(out.String()); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckinCmdNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	ctx, _ := setupTestDB(t, url)
	cmd := &CheckinCmd{Code: "ABC123", Timeout: time.Second}
	err := cmd.Run(ctx)
	if err == nil {
		t.Fatal("expected error for unreachable service")
	}
	if !strings.Contains(err.Error(), constants.MsgNetworkError) {
		t.Errorf("error = %q, want network message", err.Error())
	}
}

func TestWatchCmd(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/teacher/attendance/sess-1/status" {
			http.NotFound(w, r)
			return
		}
		n := calls.Add(1)
		code := "C1"
		if n > 1 {
			code = "C2"
		}
		json.NewEncoder(w).Encode(map[string]any{
			"session_id":   "sess-1",
			"current_code": code,
			"students": []map[string]string{
				{"id": "s-1", "name": "Ada", "status": "present", "time": "09:01"},
				{"id": "s-2", "name": "Grace", "status": "absent"},
			},
		})
	}))
	t.Cleanup(srv.Close)

	ctx, out := setupTestDB(t, srv.URL)
	cmd := &WatchCmd{Session: "sess-1", Interval: 10 * time.Millisecond, Count: 2}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("watch failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"[09:15:00] Session sess-1  code C1  present 1/2",
		"code C2",
		"Ada",
		"Grace",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if calls.Load() < 2 {
		t.Errorf("expected at least 2 polls, got %d", calls.Load())
	}
}

func TestWatchCmdReportsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	ctx, out := setupTestDB(t, srv.URL)
	cmd := &WatchCmd{Session: "sess-1", Interval: 10 * time.Millisecond, Count: 1}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("watch should keep running on poll failures: %v", err)
	}
	if !strings.Contains(out.String(), "[09:15:00]") {
		t.Errorf("expected a timestamped failure line, got %q", out.String())
	}
}
