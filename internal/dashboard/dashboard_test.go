package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/gradeboard/internal/client"
	"github.com/julianstephens/gradeboard/internal/constants"
	apperrors "github.com/julianstephens/gradeboard/internal/errors"
	"github.com/julianstephens/gradeboard/internal/gpa"
	"github.com/julianstephens/gradeboard/internal/models"
	"github.com/julianstephens/gradeboard/internal/storage/sqlite"
)

type fakeFetcher struct {
	doc   models.Document
	err   error
	calls int
}

func (f *fakeFetcher) FetchSchedule(_ context.Context, _ string) (models.Document, error) {
	f.calls++
	return f.doc, f.err
}

func setupStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleDocument() models.Document {
	return models.Document{
		Timetable: []models.RawRecord{
			{"course_code": "CS201", "course_name": "Algorithms", "day": "Mon", "time": "09:00-10:30", "credit": "3"},
			{"courseCode": "EN150", "courseName": "Writing", "dayOfWeek": "Wednesday", "startTime": "13:00", "endTime": "14:00"},
		},
		Grades: []models.RawRecord{
			{"code": "CS101", "name": "Intro", "grade": "A", "credit": 3.0, "term": "SEMESTER 1 2024"},
			{"code": "MA100", "name": "Calculus", "grade": "B+", "credits": "4", "term": "SEMESTER 1 2024"},
			{"code": "CS201", "name": "Algorithms", "grade": "ongoing", "credit": "3"},
			{"code": "TR100", "name": "Transfer", "grade": "P", "credit": "3"},
		},
	}
}

func TestLoadRequiresStudent(t *testing.T) {
	loader := NewLoader(&fakeFetcher{}, nil, 0)
	_, err := loader.Load(context.Background(), "   ")
	if !errors.Is(err, ErrNoStudent) {
		t.Fatalf("Load() error = %v, want ErrNoStudent", err)
	}
	if apperrors.Message(err) != constants.MsgSignInAgain {
		t.Errorf("message = %q", apperrors.Message(err))
	}
}

func TestLoadLiveCachesAndSnapshots(t *testing.T) {
	store := setupStore(t)
	fetcher := &fakeFetcher{doc: sampleDocument()}
	loader := NewLoader(fetcher, store, time.Minute)

	first, err := loader.Load(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first.Source != SourceLive {
		t.Errorf("first Source = %s, want live", first.Source)
	}

	second, err := loader.Load(context.Background(), "s-1")
	if err != nil {
		t.Fatal(err)
	}
	if second.Source != SourceCache || fetcher.calls != 1 {
		t.Errorf("second Source = %s, calls = %d", second.Source, fetcher.calls)
	}

	loader.Invalidate("s-1")
	if _, err := loader.Load(context.Background(), "s-1"); err != nil {
		t.Fatal(err)
	}
	if fetcher.calls != 2 {
		t.Errorf("calls after Invalidate = %d, want 2", fetcher.calls)
	}

	snap, err := store.GetSnapshot("s-1")
	if err != nil {
		t.Fatalf("GetSnapshot() error = %v", err)
	}
	if len(snap.Document.Grades) != 4 {
		t.Errorf("snapshot grades = %d, want 4", len(snap.Document.Grades))
	}
}

func TestLoadWithoutCacheAlwaysFetches(t *testing.T) {
	fetcher := &fakeFetcher{doc: sampleDocument()}
	loader := NewLoader(fetcher, nil, 0)
	for i := 0; i < 3; i++ {
		if _, err := loader.Load(context.Background(), "s-1"); err != nil {
			t.Fatal(err)
		}
	}
	if fetcher.calls != 3 {
		t.Errorf("calls = %d, want 3", fetcher.calls)
	}
}

func TestLoadFallsBackToSnapshot(t *testing.T) {
	store := setupStore(t)
	fetched := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	if err := store.SaveSnapshot(models.Snapshot{StudentID: "s-1", Document: sampleDocument(), FetchedAt: fetched}); err != nil {
		t.Fatal(err)
	}

	fetcher := &fakeFetcher{err: fmt.Errorf("fetching: %w", client.ErrUnavailable)}
	res, err := NewLoader(fetcher, store, 0).Load(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Source != SourceSnapshot || !res.FetchedAt.Equal(fetched) {
		t.Errorf("Load() = %s at %v", res.Source, res.FetchedAt)
	}
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    error
		message string
	}{
		{"unknown student", fmt.Errorf("fetching: %w", client.ErrNotFound), ErrSignInRequired, constants.MsgSignInAgain},
		{"rejected session", fmt.Errorf("fetching: %w", client.ErrUnauthorized), ErrSignInRequired, constants.MsgSignInAgain},
		{"service down", fmt.Errorf("fetching: %w", client.ErrUnavailable), ErrDataUnavailable, constants.MsgDataUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupStore(t)
			_, err := NewLoader(&fakeFetcher{err: tt.err}, store, 0).Load(context.Background(), "s-1")
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load() error = %v, want %v", err, tt.want)
			}
			if apperrors.Message(err) != tt.message {
				t.Errorf("message = %q, want %q", apperrors.Message(err), tt.message)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 15, 0, 0, time.Local) // Monday
	v := Build(sampleDocument(), models.DefaultSettings(), now)

	if len(v.Timetable) != 2 || len(v.Grades) != 4 {
		t.Fatalf("timetable = %d, grades = %d", len(v.Timetable), len(v.Grades))
	}
	if len(v.Today) != 1 || v.Today[0].Code != "CS201" {
		t.Errorf("Today = %+v", v.Today)
	}
	if v.Active == nil || v.Active.Code != "CS201" {
		t.Errorf("Active = %+v", v.Active)
	}
	if len(v.Week) != 7 {
		t.Errorf("Week has %d days", len(v.Week))
	}
	if len(v.Catalog) != 5 {
		t.Errorf("Catalog has %d entries, want 5", len(v.Catalog))
	}

	s := v.Summary
	if s.GPA == nil || math.Abs(*s.GPA-26.0/7.0) > 1e-9 {
		t.Errorf("GPA = %v, want %v", s.GPA, 26.0/7.0)
	}
	// 13 credits on record minus the 3 still in progress.
	if s.CompletedCredits != 10 {
		t.Errorf("CompletedCredits = %v, want 10", s.CompletedCredits)
	}
	if s.TransferCredits != 3 || s.InProgressCredits != 3 {
		t.Errorf("transfer = %v, in progress = %v", s.TransferCredits, s.InProgressCredits)
	}

	if len(v.Ongoing) != 2 || v.TermCredits != 6 || v.CourseCount != 2 {
		t.Errorf("ongoing = %d, term = %v, count = %d", len(v.Ongoing), v.TermCredits, v.CourseCount)
	}
	if v.Profile.CurrentSemesterCredits != 6 {
		t.Errorf("profile term credits = %v", v.Profile.CurrentSemesterCredits)
	}
}

func TestBuildRespectsSettings(t *testing.T) {
	settings := models.DefaultSettings()
	settings.SubtractInProgress = false
	settings.CurrentTermCredits = 15

	v := Build(sampleDocument(), settings, time.Date(2026, 3, 3, 12, 0, 0, 0, time.Local))
	if v.Summary.CompletedCredits != 13 {
		t.Errorf("CompletedCredits = %v, want 13", v.Summary.CompletedCredits)
	}
	if v.TermCredits != 15 {
		t.Errorf("TermCredits = %v, want 15", v.TermCredits)
	}
	if v.Active != nil {
		t.Errorf("Active = %+v, want none on Tuesday", v.Active)
	}
}

func TestViewPlanners(t *testing.T) {
	v := Build(sampleDocument(), models.DefaultSettings(), time.Now())

	plan := v.PlanTarget(3.5)
	if plan.Status != gpa.GoalRequired && plan.Status != gpa.GoalMet {
		t.Errorf("PlanTarget() status = %s", plan.Status)
	}

	expected, unknown := v.ExpectedByCode(map[string]string{"cs 201": "A", "EN150": "W", "XX999": "B"})
	if len(unknown) != 1 || unknown[0] != "XX999" {
		t.Errorf("unknown = %v", unknown)
	}
	proj := v.Predict(expected)
	if proj.Status != gpa.PredictProjected {
		t.Fatalf("Predict() status = %s, missing %v", proj.Status, proj.Missing)
	}
	// 26 points over 7 credits plus an A over 3; W drops out.
	if want := 38.0 / 10.0; math.Abs(proj.ProjectedGPA-want) > 1e-9 {
		t.Errorf("ProjectedGPA = %v, want %v", proj.ProjectedGPA, want)
	}
}
