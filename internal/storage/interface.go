package storage

import (
	"errors"

	"github.com/julianstephens/gradeboard/internal/models"
)

var (
	// ErrSnapshotNotFound is returned when no snapshot exists for a student.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrSettingsNotFound is returned before defaults have been written.
	ErrSettingsNotFound = errors.New("settings not found")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Snapshots hold the last good schedule document per student.
	SaveSnapshot(models.Snapshot) error
	GetSnapshot(studentID string) (models.Snapshot, error)
	ListSnapshots() ([]models.Snapshot, error)
	DeleteSnapshot(studentID string) error

	// Utils
	GetConfigPath() string
}

// SnapshotStore is the slice of Provider needed to serve cached documents.
type SnapshotStore interface {
	SaveSnapshot(models.Snapshot) error
	GetSnapshot(studentID string) (models.Snapshot, error)
}

// SchemaInspector is implemented by stores backed by versioned migrations.
type SchemaInspector interface {
	SchemaVersion() (current, latest int, err error)
}
