package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/keyring"
	"github.com/julianstephens/gradeboard/internal/normalize"
	"github.com/julianstephens/gradeboard/internal/storage"
	"github.com/julianstephens/gradeboard/internal/validation"
)

type DoctorCmd struct {
	Offline bool          `help:"Skip the schedule service check."`
	Timeout time.Duration `help:"Timeout for the schedule service check." default:"10s"`
}

type check struct {
	name    string
	needsDB bool
	warn    bool // failures are reported but do not fail the run
	run     func() error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	checks := []check{
		{name: "Database reachable", run: func() error { return checkDBReachable(ctx) }},
		{name: "Schema version", needsDB: true, run: func() error { return checkSchemaVersion(ctx) }},
		{name: "Settings", needsDB: true, run: func() error { _, err := ctx.Settings(); return err }},
		{name: "Clock/timezone", run: checkClockTimezone},
		{name: "OS keyring", warn: true, run: checkKeyring},
		{name: "Session", needsDB: true, warn: true, run: func() error { return checkSession(ctx) }},
		{name: "Timetable data", needsDB: true, warn: true, run: func() error { return checkTimetable(ctx) }},
	}
	if !cmd.Offline {
		checks = append(checks, check{
			name: "Schedule service", needsDB: true, warn: true,
			run: func() error { return cmd.checkService(ctx) },
		})
	}

	hasError := false
	dbReachable := false
	for i, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run()
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
			if i == 0 {
				dbReachable = true
			}
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	inspector, ok := ctx.Store.(storage.SchemaInspector)
	if !ok {
		return nil
	}
	current, latest, err := inspector.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkSession(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if settings.StudentID == "" {
		return fmt.Errorf("no student signed in, run 'login' first")
	}
	if _, err := keyring.GetSession(settings.StudentID); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no session stored for %s", settings.StudentID)
		}
		return err
	}
	return nil
}

func checkTimetable(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if settings.StudentID == "" {
		return nil
	}
	snap, err := ctx.Store.GetSnapshot(settings.StudentID)
	if errors.Is(err, storage.ErrSnapshotNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	result := validation.New().ValidateTimetable(normalize.Timetable(snap.Document.Timetable))
	if result.HasConflicts() {
		return errors.New(result.FormatReport())
	}
	return nil
}

func (cmd *DoctorCmd) checkService(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if settings.StudentID == "" {
		return fmt.Errorf("no student signed in")
	}
	client, err := ctx.NewClient(settings)
	if err != nil {
		return err
	}
	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	reqCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err = client.FetchSchedule(reqCtx, settings.StudentID)
	return err
}
