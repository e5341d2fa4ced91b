package account

import (
	"errors"
	"fmt"

	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/keyring"
	"github.com/julianstephens/gradeboard/internal/storage"
)

type LogoutCmd struct {
	Keep bool `help:"Keep the offline snapshot of the schedule."`
}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	student := settings.StudentID
	if student == "" {
		ctx.Println("Not signed in.")
		return nil
	}

	if err := keyring.DeleteSession(student); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	if !c.Keep {
		if err := ctx.Store.DeleteSnapshot(student); err != nil && !errors.Is(err, storage.ErrSnapshotNotFound) {
			return fmt.Errorf("failed to delete snapshot: %w", err)
		}
	}

	settings.StudentID = ""
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Printf("✓ Signed out %s\n", student)
	return nil
}
