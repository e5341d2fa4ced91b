// Package dashboard loads a student's schedule document and derives every
// view the CLI and TUI render from it.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/julianstephens/gradeboard/internal/client"
	"github.com/julianstephens/gradeboard/internal/constants"
	apperrors "github.com/julianstephens/gradeboard/internal/errors"
	"github.com/julianstephens/gradeboard/internal/logger"
	"github.com/julianstephens/gradeboard/internal/models"
	"github.com/julianstephens/gradeboard/internal/storage"
)

var (
	// ErrNoStudent is returned when no student is signed in.
	ErrNoStudent = errors.New("no student id")
	// ErrSignInRequired is returned when the service does not know the student.
	ErrSignInRequired = errors.New("sign in required")
	// ErrDataUnavailable is returned when neither the service nor a snapshot
	// can provide a document.
	ErrDataUnavailable = errors.New("schedule data unavailable")
)

// Source records where a loaded document came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceCache    Source = "cache"
	SourceSnapshot Source = "snapshot"
)

// Fetcher downloads a student's schedule document.
type Fetcher interface {
	FetchSchedule(ctx context.Context, studentID string) (models.Document, error)
}

// Result is a loaded document and its provenance.
type Result struct {
	StudentID string
	Document  models.Document
	Source    Source
	FetchedAt time.Time
}

type cached struct {
	doc       models.Document
	fetchedAt time.Time
}

type Loader struct {
	fetcher Fetcher
	store   storage.SnapshotStore
	cache   *cache.Cache
	now     func() time.Time
}

// NewLoader builds a loader. A ttl of zero disables the in-memory cache and
// a nil store disables snapshot fallback.
func NewLoader(fetcher Fetcher, store storage.SnapshotStore, ttl time.Duration) *Loader {
	l := &Loader{fetcher: fetcher, store: store, now: time.Now}
	if ttl > 0 {
		l.cache = cache.New(ttl, 2*ttl)
	}
	return l
}

// Invalidate drops any cached document for studentID so the next Load
// goes to the service.
func (l *Loader) Invalidate(studentID string) {
	if l.cache != nil {
		l.cache.Delete(strings.TrimSpace(studentID))
	}
}

func (l *Loader) Load(ctx context.Context, studentID string) (Result, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return Result{}, apperrors.User(constants.MsgSignInAgain, ErrNoStudent)
	}

	if l.cache != nil {
		if v, found := l.cache.Get(studentID); found {
			entry := v.(cached)
			logger.Debug("Serving schedule from cache", "student", studentID)
			return Result{StudentID: studentID, Document: entry.doc, Source: SourceCache, FetchedAt: entry.fetchedAt}, nil
		}
	}

	doc, err := l.fetcher.FetchSchedule(ctx, studentID)
	if err == nil {
		fetchedAt := l.now()
		if l.cache != nil {
			l.cache.Set(studentID, cached{doc: doc, fetchedAt: fetchedAt}, cache.DefaultExpiration)
		}
		if l.store != nil {
			snap := models.Snapshot{StudentID: studentID, Document: doc, FetchedAt: fetchedAt}
			if serr := l.store.SaveSnapshot(snap); serr != nil {
				logger.Warn("Failed to save snapshot", "student", studentID, "error", serr)
			}
		}
		return Result{StudentID: studentID, Document: doc, Source: SourceLive, FetchedAt: fetchedAt}, nil
	}

	logger.Warn("Schedule fetch failed", "student", studentID, "error", err)
	if l.store != nil {
		snap, serr := l.store.GetSnapshot(studentID)
		if serr == nil {
			logger.Info("Falling back to stored snapshot", "student", studentID, "fetched_at", snap.FetchedAt)
			return Result{StudentID: studentID, Document: snap.Document, Source: SourceSnapshot, FetchedAt: snap.FetchedAt}, nil
		}
		if !errors.Is(serr, storage.ErrSnapshotNotFound) {
			logger.Warn("Failed to read snapshot", "student", studentID, "error", serr)
		}
	}

	if errors.Is(err, client.ErrNotFound) || errors.Is(err, client.ErrUnauthorized) {
		return Result{}, apperrors.User(constants.MsgSignInAgain, fmt.Errorf("%w: %v", ErrSignInRequired, err))
	}
	return Result{}, apperrors.User(constants.MsgDataUnavailable, fmt.Errorf("%w: %v", ErrDataUnavailable, err))
}
