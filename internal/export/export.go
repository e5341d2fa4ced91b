// Package export writes the grouped course catalog to spreadsheet files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/gradeboard/internal/catalog"
)

const sheetName = "Courses"

var headers = []string{"Group", "Code", "Name", "Term", "Day", "Time", "Credit", "Grade", "Status"}

// Format is a supported export file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want .csv or .xlsx)", ext)
	}
}

type rowKind int

const (
	rowGroup rowKind = iota
	rowEntry
	rowTotal
)

type row struct {
	kind   rowKind
	values []string
}

func gpaText(t catalog.Totals) string {
	if t.GPA == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *t.GPA)
}

func timeText(e catalog.Entry) string {
	if e.StartTime == "" && e.EndTime == "" {
		return ""
	}
	return e.StartTime + "-" + e.EndTime
}

func layout(groups []catalog.Group) []row {
	rows := []row{{kind: rowGroup, values: headers}}
	for _, g := range groups {
		rows = append(rows, row{kind: rowGroup, values: []string{g.Label}})
		for _, e := range g.Entries {
			rows = append(rows, row{kind: rowEntry, values: []string{
				g.Label, e.Code, e.Name, e.Section, e.Day, timeText(e), e.Credit, e.Grade, e.StatusText(),
			}})
		}
		rows = append(rows, row{kind: rowTotal, values: []string{
			g.Label, "", "Group GPA", "", "", "",
			strconv.FormatFloat(g.Credits, 'f', -1, 64), gpaText(g.Totals), "",
		}})
	}
	return rows
}

// CSV renders groups as comma-separated values.
func CSV(groups []catalog.Group) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, r := range layout(groups) {
		if err := w.Write(r.values); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSX renders groups into a single sheet workbook with bold group headers.
func XLSX(groups []catalog.Group) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel style: %w", err)
	}
	italic, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel style: %w", err)
	}

	for i, r := range layout(groups) {
		rowNum := i + 1
		for col, value := range r.values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(value, col)); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
		style := 0
		switch r.kind {
		case rowGroup:
			style = bold
		case rowTotal:
			style = italic
		}
		if style != 0 {
			first, _ := excelize.CoordinatesToCellName(1, rowNum)
			last, _ := excelize.CoordinatesToCellName(len(headers), rowNum)
			if err := f.SetCellStyle(sheetName, first, last, style); err != nil {
				return nil, err
			}
		}
	}
	if err := f.SetColWidth(sheetName, "B", "C", 24); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

// cellValue stores the credit column as a number when it parses.
func cellValue(value string, col int) any {
	if col == 6 {
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return n
		}
	}
	return value
}

// WriteFile exports groups to path in the format its extension names.
func WriteFile(path string, groups []catalog.Group) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	var data []byte
	switch format {
	case FormatCSV:
		data, err = CSV(groups)
	case FormatXLSX:
		data, err = XLSX(groups)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
