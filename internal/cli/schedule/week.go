package schedule

import (
	"context"

	"github.com/julianstephens/gradeboard/internal/cli"
)

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	view, _, err := ctx.LoadView(context.Background())
	if err != nil {
		return err
	}

	for i, day := range view.Week {
		if i > 0 {
			ctx.Println()
		}
		header := day.Label + " " + day.Date.Format("2006-01-02")
		if day.IsToday {
			header += " (today)"
		}
		ctx.Println(header)
		if len(day.Classes) == 0 {
			ctx.Println("  -")
		}
		for _, class := range day.Classes {
			ctx.Println("  " + cli.FormatClass(class))
		}
	}
	return nil
}
