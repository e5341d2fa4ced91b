package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	ProgramTotalCredits    *float64 `help:"Total credits required by the program."`
	InternshipCredits      *float64 `help:"Credits earned through internship (no grade points)."`
	TransferCredits        *float64 `help:"Credits transferred in (no grade points)."`
	DisplayRequiredCredits *float64 `help:"Required credits shown when no program total is set."`
	CurrentTermCredits     *float64 `help:"Credits taken this term (0 derives it from in-progress courses)."`
	SubtractInProgress     *bool    `help:"Remove in-progress courses from completed credits." negatable:""`
	BaseURL                *string  `name:"service-url" help:"Schedule service base URL."`
	PollIntervalSeconds    *int     `help:"Attendance status refresh interval in seconds."`
	CacheTTLSeconds        *int     `help:"In-memory schedule cache lifetime in seconds (0 disables)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Service URL:             %s\n", settings.BaseURL)
		ctx.Printf("  Student ID:              %s\n", orNone(settings.StudentID))
		ctx.Printf("  Poll Interval:           %ds\n", settings.PollIntervalSeconds)
		ctx.Printf("  Cache TTL:               %ds\n", settings.CacheTTLSeconds)
		ctx.Println("\nProgram Settings:")
		ctx.Printf("  Program Total Credits:   %s\n", cli.FormatCredits(settings.ProgramTotalCredits))
		ctx.Printf("  Internship Credits:      %s\n", cli.FormatCredits(settings.InternshipCredits))
		ctx.Printf("  Transfer Credits:        %s\n", cli.FormatCredits(settings.TransferCredits))
		ctx.Printf("  Display Required:        %s\n", cli.FormatCredits(settings.DisplayRequiredCredits))
		ctx.Printf("  Current Term Credits:    %s\n", cli.FormatCredits(settings.CurrentTermCredits))
		ctx.Printf("  Subtract In-Progress:    %v\n", settings.SubtractInProgress)
		ctx.Printf("  Max GPA Credits:         %s\n", cli.FormatCredits(settings.Program().MaxGPACredits()))
		return nil
	}

	updated := false
	if c.ProgramTotalCredits != nil {
		settings.ProgramTotalCredits = *c.ProgramTotalCredits
		updated = true
	}
	if c.InternshipCredits != nil {
		settings.InternshipCredits = *c.InternshipCredits
		updated = true
	}
	if c.TransferCredits != nil {
		settings.TransferCredits = *c.TransferCredits
		updated = true
	}
	if c.DisplayRequiredCredits != nil {
		settings.DisplayRequiredCredits = *c.DisplayRequiredCredits
		updated = true
	}
	if c.CurrentTermCredits != nil {
		settings.CurrentTermCredits = *c.CurrentTermCredits
		updated = true
	}
	if c.SubtractInProgress != nil {
		settings.SubtractInProgress = *c.SubtractInProgress
		updated = true
	}
	if c.BaseURL != nil {
		settings.BaseURL = strings.TrimSpace(*c.BaseURL)
		updated = true
	}
	if c.PollIntervalSeconds != nil {
		settings.PollIntervalSeconds = *c.PollIntervalSeconds
		updated = true
	}
	if c.CacheTTLSeconds != nil {
		settings.CacheTTLSeconds = *c.CacheTTLSeconds
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if result := validation.New().ValidateSettings(settings); result.HasConflicts() {
		return fmt.Errorf("settings not saved:\n%s", strings.TrimSpace(result.FormatReport()))
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
