package snapshots

import (
	"errors"
	"fmt"

	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/constants"
	"github.com/julianstephens/gradeboard/internal/storage"
)

type SnapshotCmd struct {
	List  SnapshotListCmd  `cmd:"" default:"1" help:"List saved schedule snapshots."`
	Clear SnapshotClearCmd `cmd:"" help:"Delete saved schedule snapshots."`
}

type SnapshotListCmd struct{}

func (c *SnapshotListCmd) Run(ctx *cli.Context) error {
	snaps, err := ctx.Store.ListSnapshots()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(snaps) == 0 {
		ctx.Println("No snapshots saved.")
		return nil
	}

	ctx.Printf("%-20s %-20s %8s %8s\n", "STUDENT", "FETCHED", "CLASSES", "GRADES")
	for _, s := range snaps {
		ctx.Printf("%-20s %-20s %8d %8d\n",
			s.StudentID,
			s.FetchedAt.Local().Format(constants.DateFormat+" "+constants.TimeFormat),
			len(s.Document.Timetable),
			len(s.Document.Grades))
	}
	return nil
}

type SnapshotClearCmd struct {
	Student string `arg:"" optional:"" help:"Only delete the snapshot for this student."`
}

func (c *SnapshotClearCmd) Run(ctx *cli.Context) error {
	if c.Student != "" {
		if err := ctx.Store.DeleteSnapshot(c.Student); err != nil {
			if errors.Is(err, storage.ErrSnapshotNotFound) {
				return fmt.Errorf("no snapshot saved for %s", c.Student)
			}
			return fmt.Errorf("failed to delete snapshot: %w", err)
		}
		ctx.Printf("Deleted snapshot for %s.\n", c.Student)
		return nil
	}

	snaps, err := ctx.Store.ListSnapshots()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	for _, s := range snaps {
		if err := ctx.Store.DeleteSnapshot(s.StudentID); err != nil {
			return fmt.Errorf("failed to delete snapshot for %s: %w", s.StudentID, err)
		}
	}
	ctx.Printf("Deleted %d snapshot(s).\n", len(snaps))
	return nil
}
