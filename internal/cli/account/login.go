package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/client"
	"github.com/julianstephens/gradeboard/internal/keyring"
)

type LoginCmd struct {
	Student string        `arg:"" help:"Student ID to sign in as."`
	Cookie  string        `help:"Session cookie issued by the schedule service. Prompted for when omitted."`
	Verify  bool          `help:"Fetch the schedule once to confirm the student exists." default:"true" negatable:""`
	Timeout time.Duration `help:"Timeout for the verification request." default:"10s"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	student := strings.TrimSpace(c.Student)
	if student == "" {
		return errors.New("student ID cannot be empty")
	}

	cookie := strings.TrimSpace(c.Cookie)
	if cookie == "" {
		err := huh.NewInput().
			Title("Session cookie").
			Description("Paste the session cookie for " + student).
			EchoMode(huh.EchoModePassword).
			Value(&cookie).
			Run()
		if err != nil {
			return fmt.Errorf("reading session cookie: %w", err)
		}
		cookie = strings.TrimSpace(cookie)
	}
	if cookie == "" {
		return errors.New("session cookie cannot be empty")
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.Verify {
		opts := []client.Option{client.WithSession(cookie)}
		if ctx.HTTPClient != nil {
			opts = append(opts, client.WithHTTPClient(ctx.HTTPClient))
		}
		cl, err := client.New(settings.BaseURL, opts...)
		if err != nil {
			return err
		}
		reqCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
		defer cancel()
		if _, err := cl.FetchSchedule(reqCtx, student); err != nil {
			switch {
			case errors.Is(err, client.ErrNotFound):
				return fmt.Errorf("student %s was not found by the schedule service", student)
			case errors.Is(err, client.ErrUnauthorized):
				return errors.New("the schedule service rejected the session cookie")
			}
			return fmt.Errorf("verifying sign in: %w", err)
		}
	}

	if err := keyring.SetSession(student, cookie); err != nil {
		return err
	}
	stored, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	stored.StudentID = student
	if err := ctx.Store.SaveSettings(stored); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	ctx.Printf("✓ Signed in as %s\n", student)
	return nil
}
