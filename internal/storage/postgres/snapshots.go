package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/gradeboard/internal/models"
	"github.com/julianstephens/gradeboard/internal/storage"
)

func (s *Store) SaveSnapshot(snap models.Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Now()
	}
	payload, err := storage.EncodeDocument(snap.Document)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (student_id, id, payload, fetched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id) DO UPDATE SET
			id = EXCLUDED.id,
			payload = EXCLUDED.payload,
			fetched_at = EXCLUDED.fetched_at`,
		snap.StudentID, snap.ID, payload, snap.FetchedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *Store) GetSnapshot(studentID string) (models.Snapshot, error) {
	row := s.db.QueryRow(
		"SELECT id, student_id, payload, fetched_at FROM snapshots WHERE student_id = $1", studentID)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Snapshot{}, storage.ErrSnapshotNotFound
	}
	return snap, err
}

func (s *Store) ListSnapshots() ([]models.Snapshot, error) {
	rows, err := s.db.Query("SELECT id, student_id, payload, fetched_at FROM snapshots ORDER BY student_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []models.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (s *Store) DeleteSnapshot(studentID string) error {
	res, err := s.db.Exec("DELETE FROM snapshots WHERE student_id = $1", studentID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrSnapshotNotFound
	}
	return nil
}

func scanSnapshot(row interface{ Scan(...any) error }) (models.Snapshot, error) {
	var (
		snap    models.Snapshot
		payload []byte
	)
	if err := row.Scan(&snap.ID, &snap.StudentID, &payload, &snap.FetchedAt); err != nil {
		return models.Snapshot{}, err
	}
	doc, err := storage.DecodeDocument(payload)
	if err != nil {
		return models.Snapshot{}, err
	}
	snap.Document = doc
	return snap, nil
}
