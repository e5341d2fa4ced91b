package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var twoMigrations = fstest.MapFS{
	"001_init.sql":      {Data: []byte(`CREATE TABLE settings (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)},
	"002_snapshots.sql": {Data: []byte(`CREATE TABLE snapshots (student_id TEXT PRIMARY KEY, payload TEXT NOT NULL);`)},
	"README.md":         {Data: []byte(`ignored`)},
}

func TestApplyMigrations(t *testing.T) {
	db := openDB(t)
	r := NewRunner(db, twoMigrations, SQLite)

	var logs []string
	n, err := r.ApplyMigrations(func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if n != 2 {
		t.Errorf("applied = %d, want 2", n)
	}
	if v, _ := r.CurrentVersion(); v != 2 {
		t.Errorf("CurrentVersion() = %d, want 2", v)
	}
	if err := r.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion() error = %v", err)
	}
	if len(logs) == 0 {
		t.Error("expected progress messages")
	}

	n, err = r.ApplyMigrations(nil)
	if err != nil || n != 0 {
		t.Errorf("second ApplyMigrations() = %d, %v, want 0, nil", n, err)
	}
}

func TestValidateVersionBehindAndAhead(t *testing.T) {
	db := openDB(t)
	r := NewRunner(db, twoMigrations, SQLite)

	if err := r.ValidateVersion(); err == nil || !strings.Contains(err.Error(), "behind") {
		t.Errorf("fresh database ValidateVersion() = %v, want behind error", err)
	}

	if _, err := r.ApplyMigrations(nil); err != nil {
		t.Fatal(err)
	}
	older := NewRunner(db, fstest.MapFS{"001_init.sql": twoMigrations["001_init.sql"]}, SQLite)
	if err := older.ValidateVersion(); err == nil || !strings.Contains(err.Error(), "newer") {
		t.Errorf("ValidateVersion() = %v, want newer error", err)
	}
	if _, err := older.ApplyMigrations(nil); err == nil {
		t.Error("ApplyMigrations() on a newer database should fail")
	}
}

func TestFailedMigrationRollsBack(t *testing.T) {
	db := openDB(t)
	r := NewRunner(db, fstest.MapFS{
		"001_init.sql":   twoMigrations["001_init.sql"],
		"002_broken.sql": {Data: []byte(`CREATE TABLE nope (`)},
	}, SQLite)

	n, err := r.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("ApplyMigrations() should fail on broken SQL")
	}
	if n != 1 {
		t.Errorf("applied = %d, want 1", n)
	}
	if v, _ := r.CurrentVersion(); v != 1 {
		t.Errorf("CurrentVersion() = %d, want 1", v)
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"no underscore": {"001init.sql": {Data: []byte("")}},
		"not a number":  {"abc_init.sql": {Data: []byte("")}},
		"zero version":  {"000_init.sql": {Data: []byte("")}},
		"duplicate": {
			"001_a.sql": {Data: []byte("")},
			"1_b.sql":   {Data: []byte("")},
		},
	}
	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewRunner(nil, fsys, SQLite).ReadMigrationFiles(); err == nil {
				t.Error("ReadMigrationFiles() should fail")
			}
		})
	}
}
