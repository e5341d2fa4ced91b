package models

import "time"

// RawRecord is one timetable or grade entry exactly as decoded from the
// schedule document. Key naming varies by source.
type RawRecord map[string]any

// Document is the per-student schedule payload served by the campus service.
type Document struct {
	Timetable []RawRecord `json:"timetable"`
	Grades    []RawRecord `json:"grades"`
}

// Snapshot is the last successfully fetched document for a student.
type Snapshot struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Document  Document  `json:"document"`
	FetchedAt time.Time `json:"fetched_at"`
}
