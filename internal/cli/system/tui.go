package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/logger"
	"github.com/julianstephens/gradeboard/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	client, err := ctx.NewClient(settings)
	if err != nil {
		return err
	}
	loader, err := ctx.NewLoader(settings)
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Deps{
		Loader:   loader,
		Client:   client,
		Settings: settings,
		Clock:    ctx.Now,
	})
	logger.Info("Starting TUI", "student", settings.StudentID)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}
