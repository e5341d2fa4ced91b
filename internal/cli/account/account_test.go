package account

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/keyring"
	"github.com/julianstephens/gradeboard/internal/models"
	"github.com/julianstephens/gradeboard/internal/storage"
	"github.com/julianstephens/gradeboard/internal/storage/sqlite"
)

func setupTestDB(t *testing.T, baseURL string) *cli.Context {
	t.Helper()
	gokeyring.MockInit()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store, BaseURL: baseURL, Out: &bytes.Buffer{}}
}

func scheduleServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		switch {
		case err != nil || cookie.Value != "good":
			w.WriteHeader(http.StatusUnauthorized)
		case r.URL.Path == "/schedule/s-1.json":
			w.Write([]byte(`{"timetable":[],"grades":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginCmd(t *testing.T) {
	srv := scheduleServer(t)
	ctx := setupTestDB(t, srv.URL)

	cmd := &LoginCmd{Student: "s-1", Cookie: "good", Verify: true, Timeout: time.Second}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	settings, _ := ctx.Store.GetSettings()
	if settings.StudentID != "s-1" {
		t.Errorf("StudentID = %q", settings.StudentID)
	}
	if settings.BaseURL != models.DefaultSettings().BaseURL {
		t.Errorf("flag override leaked into stored settings: %q", settings.BaseURL)
	}
	if session, err := keyring.GetSession("s-1"); err != nil || session != "good" {
		t.Errorf("session = %q, %v", session, err)
	}
}

func TestLoginCmdVerificationFailures(t *testing.T) {
	srv := scheduleServer(t)
	tests := []struct {
		name    string
		student string
		cookie  string
	}{
		{"unknown student", "s-404", "good"},
		{"bad cookie", "s-1", "bad"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestDB(t, srv.URL)
			cmd := &LoginCmd{Student: tt.student, Cookie: tt.cookie, Verify: true, Timeout: time.Second}
			if err := cmd.Run(ctx); err == nil {
				t.Fatal("login should fail")
			}
			if _, err := keyring.GetSession(tt.student); !errors.Is(err, keyring.ErrNotFound) {
				t.Errorf("session stored despite failure: %v", err)
			}
		})
	}
}

func TestLoginCmdWithoutVerify(t *testing.T) {
	ctx := setupTestDB(t, "")
	if err := (&LoginCmd{Student: " s-2 ", Cookie: "abc"}).Run(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	settings, _ := ctx.Store.GetSettings()
	if settings.StudentID != "s-2" {
		t.Errorf("StudentID = %q", settings.StudentID)
	}
}

func TestLogoutCmd(t *testing.T) {
	ctx := setupTestDB(t, "")
	if err := (&LoginCmd{Student: "s-1", Cookie: "abc"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.SaveSnapshot(models.Snapshot{StudentID: "s-1"}); err != nil {
		t.Fatal(err)
	}

	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	settings, _ := ctx.Store.GetSettings()
	if settings.StudentID != "" {
		t.Errorf("StudentID = %q after logout", settings.StudentID)
	}
	if _, err := keyring.GetSession("s-1"); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("session still stored: %v", err)
	}
	if _, err := ctx.Store.GetSnapshot("s-1"); !errors.Is(err, storage.ErrSnapshotNotFound) {
		t.Errorf("snapshot still stored: %v", err)
	}

	// Logging out twice is harmless.
	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Errorf("second logout failed: %v", err)
	}
}
