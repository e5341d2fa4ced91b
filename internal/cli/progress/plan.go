package progress

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/gradeboard/internal/cli"
	"github.com/julianstephens/gradeboard/internal/gpa"
)

type PlanCmd struct {
	Target PlanTargetCmd `cmd:"" help:"Show the term average needed to reach a target GPA."`
	Expect PlanExpectCmd `cmd:"" help:"Project the GPA from expected grades in current courses."`
}

type PlanTargetCmd struct {
	GPA float64 `arg:"" help:"Target cumulative GPA."`
}

func (c *PlanTargetCmd) Run(ctx *cli.Context) error {
	view, _, err := ctx.LoadView(context.Background())
	if err != nil {
		return err
	}

	plan := view.PlanTarget(c.GPA)
	ctx.Println(plan.Summary())
	if plan.Status == gpa.GoalRequired || plan.Status == gpa.GoalUnreachable {
		ctx.Printf("\nSuggested mix across %d courses:\n", plan.CourseCount)
		for _, m := range plan.Mix {
			ctx.Println("  " + m.String())
		}
	}
	return nil
}

type PlanExpectCmd struct {
	Grade map[string]string `help:"Expected grade for a course, repeatable. Prompted for when omitted." short:"g" placeholder:"CODE=GRADE"`
}

func (c *PlanExpectCmd) Run(ctx *cli.Context) error {
	view, _, err := ctx.LoadView(context.Background())
	if err != nil {
		return err
	}
	if len(view.Ongoing) == 0 {
		ctx.Println(gpa.Projection{Status: gpa.PredictNoCourses}.Summary())
		return nil
	}

	var expected map[string]string
	if len(c.Grade) == 0 {
		expected, err = promptGrades(view.Ongoing)
		if err != nil {
			return err
		}
	} else {
		var unknown []string
		expected, unknown = view.ExpectedByCode(c.Grade)
		if len(unknown) > 0 {
			return fmt.Errorf("not a current course: %s", strings.Join(unknown, ", "))
		}
	}

	proj := view.Predict(expected)
	if proj.Status == gpa.PredictIncomplete {
		var labels []string
		for _, course := range view.Ongoing {
			for _, key := range proj.Missing {
				if course.Key == key {
					labels = append(labels, course.Label())
				}
			}
		}
		sort.Strings(labels)
		ctx.Printf("%s (missing: %s)\n", proj.Summary(), strings.Join(labels, ", "))
		ctx.Printf("Valid grades: %s\n", strings.Join(gpa.Options(), ", "))
		return nil
	}

	ctx.Println(proj.Summary())
	if proj.Status == gpa.PredictProjected {
		ctx.Printf("  Adds %s credits and %.2f grade points\n", cli.FormatCredits(proj.AddedCredits), proj.AddedPoints)
	}
	for _, course := range view.Ongoing {
		if course.CreditEstimated {
			ctx.Printf("  note: %s assumed %s credits\n", course.Label(), cli.FormatCredits(course.Credits))
		}
	}
	return nil
}
