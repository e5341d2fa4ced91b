package gpa

import (
	"fmt"
	"math"
	"strings"
)

// GoalStatus is the outcome of a target GPA plan.
type GoalStatus string

const (
	GoalInvalidTarget GoalStatus = "invalid_target"
	GoalNoTerm        GoalStatus = "no_term"
	GoalMet           GoalStatus = "met"
	GoalUnreachable   GoalStatus = "unreachable"
	GoalRequired      GoalStatus = "required"
)

// Rounding selects how a mix rule turns a fraction into a course count.
type Rounding int

const (
	RoundUp Rounding = iota
	// RoundNearestAtLeastOne rounds half up and never returns less than one.
	RoundNearestAtLeastOne
)

// MixRule applies when the required term average is at least MinRequired.
// Grades are ranks on the scale, 0 being the top grade.
type MixRule struct {
	MinRequired float64
	Dominant    int
	Paired      int
	Fraction    float64
	Rounding    Rounding
}

// MixItem is one line of a suggested grade mix.
type MixItem struct {
	Grade string
	Count int
}

func (m MixItem) String() string {
	plural := "s"
	if m.Count == 1 {
		plural = ""
	}
	return fmt.Sprintf("%d course%s with %s", m.Count, plural, m.Grade)
}

// MixPolicy is an ordered rule table, first matching rule wins. It is a
// presentation heuristic and carries no guarantee that the mix averages to
// the required figure.
type MixPolicy []MixRule

// DefaultMixPolicy is the stock split table.
var DefaultMixPolicy = MixPolicy{
	{MinRequired: 3.95, Dominant: 0, Paired: 1, Fraction: 1.0, Rounding: RoundUp},
	{MinRequired: 3.8, Dominant: 0, Paired: 1, Fraction: 0.66, Rounding: RoundNearestAtLeastOne},
	{MinRequired: 3.5, Dominant: 0, Paired: 1, Fraction: 0.6, Rounding: RoundUp},
	{MinRequired: 3.0, Dominant: 1, Paired: 2, Fraction: 0.6, Rounding: RoundUp},
	{MinRequired: math.Inf(-1), Dominant: 2, Paired: 3, Fraction: 0.6, Rounding: RoundUp},
}

// Mix suggests how many of courseCount courses should land on which grade.
// Zero-count buckets are dropped.
func (p MixPolicy) Mix(required float64, courseCount int) []MixItem {
	if courseCount < 1 {
		courseCount = 1
	}
	for _, rule := range p {
		if required < rule.MinRequired {
			continue
		}
		raw := float64(courseCount) * rule.Fraction
		var dominant int
		switch rule.Rounding {
		case RoundNearestAtLeastOne:
			dominant = max(1, int(math.Round(raw)))
		default:
			dominant = int(math.Ceil(raw))
		}
		dominant = min(dominant, courseCount)
		items := []MixItem{
			{Grade: Letter(rule.Dominant), Count: dominant},
			{Grade: Letter(rule.Paired), Count: courseCount - dominant},
		}
		out := items[:0]
		for _, it := range items {
			if it.Count > 0 {
				out = append(out, it)
			}
		}
		return out
	}
	return nil
}

// GoalPlan reports what the current term needs to deliver for a target.
type GoalPlan struct {
	Status             GoalStatus
	Target             float64
	RequiredTermPoints float64
	RequiredTermGPA    float64
	// Shortfall is how far above the scale maximum the requirement sits.
	Shortfall float64
	// BestCumulativeGPA is the cumulative result of straight top grades.
	BestCumulativeGPA float64
	CourseCount       int
	Mix               []MixItem
}

// CourseCount picks the number of courses to spread a mix across: the
// enrolled count when known, else one course per three credits, at least one.
func CourseCount(enrolled int, termCredits float64) int {
	if enrolled > 0 {
		return enrolled
	}
	return max(1, int(math.Ceil(termCredits/3)))
}

// PlanTarget plans towards target using DefaultMixPolicy.
func PlanTarget(target float64, profile Profile, courseCount int) GoalPlan {
	return DefaultMixPolicy.PlanTarget(target, profile, courseCount)
}

// PlanTarget computes the average required this term to bring the
// cumulative GPA to target. courseCount is the enrolled course count, zero
// when unknown.
func (p MixPolicy) PlanTarget(target float64, profile Profile, courseCount int) GoalPlan {
	plan := GoalPlan{Target: target}
	if math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
		plan.Status = GoalInvalidTarget
		return plan
	}
	term := profile.CurrentSemesterCredits
	if term <= 0 {
		plan.Status = GoalNoTerm
		return plan
	}
	plan.CourseCount = CourseCount(courseCount, term)

	totalAfter := profile.GradedCredits + term
	plan.RequiredTermPoints = target*totalAfter - profile.TotalGradePoints
	plan.RequiredTermGPA = plan.RequiredTermPoints / term
	plan.BestCumulativeGPA = (profile.TotalGradePoints + MaxPoints*term) / totalAfter

	switch {
	case plan.RequiredTermGPA <= 0:
		plan.Status = GoalMet
	case plan.RequiredTermGPA > MaxPoints:
		plan.Status = GoalUnreachable
		plan.Shortfall = plan.RequiredTermGPA - MaxPoints
		plan.Mix = []MixItem{{Grade: Letter(0), Count: plan.CourseCount}}
	default:
		plan.Status = GoalRequired
		plan.Mix = p.Mix(plan.RequiredTermGPA, plan.CourseCount)
	}
	return plan
}

// Summary renders the plan as a sentence.
func (g GoalPlan) Summary() string {
	target := fmt.Sprintf("%.2f", g.Target)
	switch g.Status {
	case GoalInvalidTarget:
		return "Enter a target GPA to see your plan."
	case GoalNoTerm:
		return "No current term to plan for."
	case GoalMet:
		return fmt.Sprintf("You're already above %s. Any passing grades will keep you above that target.", target)
	case GoalUnreachable:
		return fmt.Sprintf("To reach %s, you'd need a %.2f average this semester, which isn't possible on a 4.0 scale. "+
			"Aim for straight %ss to maximize your GPA (best case %.2f).", target, g.RequiredTermGPA, Letter(0), g.BestCumulativeGPA)
	case GoalRequired:
		if len(g.Mix) == 0 {
			return "Keep steady performance this term to stay on track."
		}
		return fmt.Sprintf("To reach %s, you need an average of %.2f this semester.", target, g.RequiredTermGPA)
	}
	return ""
}

// MixText renders the mix one item per line.
func (g GoalPlan) MixText() string {
	lines := make([]string, len(g.Mix))
	for i, m := range g.Mix {
		lines[i] = m.String()
	}
	return strings.Join(lines, "\n")
}
