package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/gradeboard/internal/catalog"
	"github.com/julianstephens/gradeboard/internal/models"
)

func sampleGroups() []catalog.Group {
	entries := catalog.Merge(
		[]models.Course{{Code: "CS201", Name: "Algorithms", Day: "Mon", StartTime: "09:00", EndTime: "10:30", Credit: "3"}},
		[]models.GradeRecord{
			{Code: "CS101", Name: "Intro", Section: "SEMESTER 1 2024", Grade: "A", CreditText: "3"},
			{Code: "MA100", Name: "Calculus", Section: "SEMESTER 1 2024", Grade: "B", CreditText: "4"},
		},
	)
	return catalog.GroupBy(entries, catalog.GroupBySemester)
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"courses.csv", FormatCSV, false},
		{"out/Courses.XLSX", FormatXLSX, false},
		{"courses.json", "", true},
		{"courses", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFor(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestCSV(t *testing.T) {
	data, err := CSV(sampleGroups())
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	// header + 2 groups * (label + totals) + 3 entries
	if len(records) != 8 {
		t.Fatalf("got %d rows, want 8", len(records))
	}
	if records[0][1] != "Code" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "Current timetable" {
		t.Errorf("first group = %v", records[1])
	}

	var total []string
	for _, r := range records {
		if len(r) > 2 && r[2] == "Group GPA" && r[0] == "SEMESTER 1 2024" {
			total = r
		}
	}
	if total == nil {
		t.Fatal("missing totals row for SEMESTER 1 2024")
	}
	if total[6] != "7" || total[7] != "3.43" {
		t.Errorf("totals = %v, want 7 credits at 3.43", total)
	}
}

func TestXLSX(t *testing.T) {
	data, err := XLSX(sampleGroups())
	if err != nil {
		t.Fatalf("XLSX() error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 8 {
		t.Fatalf("got %d rows, want 8", len(rows))
	}
	if rows[2][1] != "CS201" {
		t.Errorf("first entry = %v", rows[2])
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"courses.csv", "courses.xlsx"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, sampleGroups()); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if err := WriteFile(filepath.Join(dir, "courses.txt"), nil); err == nil {
		t.Error("WriteFile() should reject unknown extensions")
	}
}
