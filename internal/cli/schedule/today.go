package schedule

import (
	"context"

	"github.com/julianstephens/gradeboard/internal/cli"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	view, _, err := ctx.LoadView(context.Background())
	if err != nil {
		return err
	}

	ctx.Printf("Today (%s, %s)\n\n", view.Now.Format("Mon"), view.Now.Format("2006-01-02"))
	if len(view.Today) == 0 {
		ctx.Println("No classes today.")
	}
	for _, class := range view.Today {
		marker := "  "
		if view.Active != nil && view.Active.Key() == class.Key() && view.Active.StartTime == class.StartTime {
			marker = "▶ "
		}
		ctx.Println(marker + cli.FormatClass(class))
	}

	ctx.Println()
	if view.Active != nil {
		ctx.Printf("Now (%s): %s\n", view.Now.Format("15:04"), view.Active.Key())
	} else {
		ctx.Printf("Now (%s): Free time\n", view.Now.Format("15:04"))
	}
	return nil
}
