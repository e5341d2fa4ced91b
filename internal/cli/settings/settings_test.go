package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/models"
	"github.com/julianstephens/gradeboard/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	out := &bytes.Buffer{}
	return &cli.Context{Store: store, Out: out}, out
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Service URL:", "Student ID:              (none)", "Max GPA Credits:"} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, out := setupTestDB(t)

	total := 120.0
	transfer := 12.0
	subtract := false
	poll := 5
	cmd := &SettingsCmd{
		ProgramTotalCredits: &total,
		TransferCredits:     &transfer,
		SubtractInProgress:  &subtract,
		PollIntervalSeconds: &poll,
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}
	if !strings.Contains(out.String(), "Settings updated successfully.") {
		t.Errorf("unexpected output %q", out.String())
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.ProgramTotalCredits != 120 || settings.TransferCredits != 12 {
		t.Errorf("credits not saved: %+v", settings)
	}
	if settings.SubtractInProgress {
		t.Error("expected SubtractInProgress to be false")
	}
	if settings.PollIntervalSeconds != 5 {
		t.Errorf("PollIntervalSeconds = %d, want 5", settings.PollIntervalSeconds)
	}
	if settings.InternshipCredits != models.DefaultSettings().InternshipCredits {
		t.Errorf("untouched field changed: %v", settings.InternshipCredits)
	}
}

func TestSettingsCmd_RejectsInvalid(t *testing.T) {
	zero := 0
	negative := -3.0
	tooMany := 500.0
	url := "not a url"
	tests := []struct {
		name string
		cmd  *SettingsCmd
	}{
		{"poll interval below one", &SettingsCmd{PollIntervalSeconds: &zero}},
		{"negative credits", &SettingsCmd{TransferCredits: &negative}},
		{"deductions exceed total", &SettingsCmd{InternshipCredits: &tooMany}},
		{"malformed url", &SettingsCmd{BaseURL: &url}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestDB(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Fatal("expected validation error")
			}
			settings, _ := ctx.Store.GetSettings()
			if settings != models.DefaultSettings() {
				t.Errorf("settings changed despite validation failure: %+v", settings)
			}
		})
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out := setupTestDB(t)
	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("unexpected output %q", out.String())
	}
}
