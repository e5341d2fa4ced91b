package progress

import (
	"context"

	"github.com/julianstephens/gradeboard/internal/cli"
)

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	view, _, err := ctx.LoadView(context.Background())
	if err != nil {
		return err
	}
	s := view.Summary

	ctx.Println("Academic Progress:")
	ctx.Printf("  Cumulative GPA:        %s\n", cli.FormatGPA(s.GPA))
	ctx.Printf("  Completed credits:     %s / %s (%.1f%%)\n",
		cli.FormatCredits(s.CompletedCredits), cli.FormatCredits(s.RequiredCredits), s.PercentComplete)
	ctx.Printf("  Remaining credits:     %s\n", cli.FormatCredits(s.RemainingCredits))
	ctx.Printf("  GPA credits:           %s / %s (%s remaining)\n",
		cli.FormatCredits(s.GradedCredits), cli.FormatCredits(s.MaxGPACredits), cli.FormatCredits(s.RemainingGPACredits))
	ctx.Printf("  Grade points:          %.2f\n", s.TotalGradePoints)

	ctx.Println("\nBreakdown:")
	ctx.Printf("  In progress:           %s\n", cli.FormatCredits(s.InProgressCredits))
	ctx.Printf("  Transfer/pass:         %s\n", cli.FormatCredits(s.TransferCredits))
	ctx.Printf("  Withdrawn:             %s\n", cli.FormatCredits(s.WithdrawnCredits))
	ctx.Printf("  This term:             %s credits across %d courses\n",
		cli.FormatCredits(view.TermCredits), view.CourseCount)
	return nil
}
