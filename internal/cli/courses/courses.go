package courses

import (
	"context"

	"github.com/julianstephens/gradeboard/internal/catalog"
	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/constants"
	"github.com/julianstephens/gradeboard/internal/export"
)

type CoursesCmd struct {
	Group  string `help:"Group courses by 'semester' or 'type'." default:"semester" enum:"semester,type"`
	Search string `help:"Filter by code, name, term or year."`
	Export string `help:"Write the grouped list to a .csv or .xlsx file." type:"path"`
}

func (c *CoursesCmd) Run(ctx *cli.Context) error {
	mode, err := catalog.ParseGroupMode(c.Group)
	if err != nil {
		return err
	}
	view, _, err := ctx.LoadView(context.Background())
	if err != nil {
		return err
	}

	entries := catalog.Search(view.Catalog, c.Search)
	if len(entries) == 0 {
		ctx.Println(constants.MsgNoCourses)
		return nil
	}
	groups := catalog.GroupBy(entries, mode)

	if c.Export != "" {
		if err := export.WriteFile(c.Export, groups); err != nil {
			return err
		}
		ctx.Printf("Exported %d courses to %s\n", len(entries), c.Export)
		return nil
	}

	for i, g := range groups {
		if i > 0 {
			ctx.Println()
		}
		ctx.Printf("%s  (%s cr, GPA %s)\n", g.Label, cli.FormatCredits(g.Credits), cli.FormatGPA(g.GPA))
		for _, e := range g.Entries {
			line := "  " + e.Key()
			if e.Name != "" && e.Code != "" {
				line += " " + e.Name
			}
			ctx.Printf("%-40s %s\n", line, e.StatusText())
		}
	}
	return nil
}
