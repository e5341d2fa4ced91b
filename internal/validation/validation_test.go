package validation

import (
	"strings"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/gradeboard/internal/models"
)

func TestRegister(t *testing.T) {
	newTranslator := func() ut.Translator {
		_en := en.New()
		trans, _ := ut.New(_en, _en).GetTranslator("en")
		return trans
	}

	if err := register(validator.New(), newTranslator(), hhmmTag); err != nil {
		t.Fatalf("register() error = %v", err)
	}

	err := register(validator.New(), newTranslator(), "")
	if err == nil {
		t.Fatal("register() with an empty tag should fail")
	}
	if !strings.Contains(err.Error(), "validation") {
		t.Errorf("error = %q, want it to name the failed registration", err)
	}
}

func TestValidateSettings_Defaults(t *testing.T) {
	result := New().ValidateSettings(models.DefaultSettings())
	if result.HasConflicts() {
		t.Errorf("defaults should validate, got: %s", result.FormatReport())
	}
}

func TestValidateSettings_Invalid(t *testing.T) {
	s := models.DefaultSettings()
	s.PollIntervalSeconds = 0
	s.BaseURL = "not a url"
	s.TransferCredits = -1

	result := New().ValidateSettings(s)
	fields := make(map[string]bool)
	for _, c := range result.Conflicts {
		fields[c.Field] = true
		if c.Type != ConflictInvalidSetting {
			t.Errorf("conflict type = %s", c.Type)
		}
	}
	for _, want := range []string{"poll_interval_seconds", "base_url", "transfer_credits"} {
		if !fields[want] {
			t.Errorf("expected conflict on %s, got: %s", want, result.FormatReport())
		}
	}
}

func TestValidateSettings_CreditsExceedTotal(t *testing.T) {
	s := models.DefaultSettings()
	s.ProgramTotalCredits = 10
	s.InternshipCredits = 5
	s.TransferCredits = 18

	result := New().ValidateSettings(s)
	if !result.HasConflicts() {
		t.Fatal("expected a conflict when exclusions exceed the total")
	}
	if !strings.Contains(result.FormatReport(), "exceed the program total") {
		t.Errorf("report = %s", result.FormatReport())
	}
}

func TestValidateTimetable(t *testing.T) {
	tests := []struct {
		name     string
		courses  []models.Course
		wantType ConflictType
		want     int
	}{
		{
			name: "disjoint classes",
			courses: []models.Course{
				{Code: "CS101", Day: "Mon", StartTime: "09:00", EndTime: "10:00"},
				{Code: "MA100", Day: "Mon", StartTime: "10:00", EndTime: "11:00"},
				{Code: "PH110", Day: "Tue", StartTime: "09:30", EndTime: "10:30"},
			},
			want: 0,
		},
		{
			name: "overlap on same day",
			courses: []models.Course{
				{Code: "CS101", Day: "Wed", StartTime: "09:00", EndTime: "10:00"},
				{Code: "MA100", Day: "Wed", StartTime: "09:30", EndTime: "10:30"},
			},
			wantType: ConflictOverlappingClasses,
			want:     1,
		},
		{
			name: "malformed time",
			courses: []models.Course{
				{Code: "CS101", Day: "Mon", StartTime: "9am", EndTime: "10:00"},
			},
			wantType: ConflictInvalidTime,
			want:     1,
		},
		{
			name: "end before start",
			courses: []models.Course{
				{Code: "CS101", Day: "Mon", StartTime: "11:00", EndTime: "10:00"},
			},
			wantType: ConflictInvalidTime,
			want:     1,
		},
		{
			name: "duplicate entry",
			courses: []models.Course{
				{Code: "CS101", Day: "Fri", StartTime: "08:00", EndTime: "09:00"},
				{Code: "CS101", Day: "Fri", StartTime: "08:00", EndTime: "09:00"},
			},
			wantType: ConflictDuplicateClass,
			want:     1,
		},
		{
			name: "unscheduled courses ignored",
			courses: []models.Course{
				{Code: "TH900", Name: "Thesis"},
				{Code: "CS101", Day: "Mon"},
			},
			want: 0,
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateTimetable(tt.courses)
			if len(result.Conflicts) != tt.want {
				t.Fatalf("got %d conflicts, want %d: %s", len(result.Conflicts), tt.want, result.FormatReport())
			}
			if tt.want > 0 && result.Conflicts[0].Type != tt.wantType {
				t.Errorf("conflict type = %s, want %s", result.Conflicts[0].Type, tt.wantType)
			}
		})
	}
}

func TestFormatReport_Empty(t *testing.T) {
	var r ValidationResult
	if r.FormatReport() != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", r.FormatReport())
	}
}
