package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/julianstephens/gradeboard/internal/logger"
	"github.com/julianstephens/gradeboard/internal/models"
	"github.com/julianstephens/gradeboard/internal/timetable"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidSetting     ConflictType = "invalid_setting"
	ConflictInvalidTime        ConflictType = "invalid_time"
	ConflictOverlappingClasses ConflictType = "overlapping_classes"
	ConflictDuplicateClass     ConflictType = "duplicate_class"
)

// Conflict represents one problem found in settings or timetable data.
type Conflict struct {
	Type        ConflictType
	Description string
	Field       string   // settings key (if applicable)
	Day         string   // Mon..Sun (if applicable)
	Items       []string // course codes involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

const hhmmTag = "hhmm"

// Validator wraps a struct validator configured with english messages and
// json field names.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New creates a new Validator. Registration failures are logged and leave
// the affected messages untranslated.
func New() *Validator {
	v := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	trans, _ := uni.GetTranslator("en")

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := register(v, trans, hhmmTag); err != nil {
		logger.Warn("validator setup incomplete", "error", err)
	}

	return &Validator{validate: v, translator: trans}
}

// register installs the default english messages and the time-of-day rule
// under tag.
func register(v *validator.Validate, trans ut.Translator, tag string) error {
	var errs []error
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		errs = append(errs, fmt.Errorf("registering default translations: %w", err))
	}
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		_, ok := timetable.Minutes(fl.Field().String())
		return ok
	})
	if err != nil {
		return errors.Join(append(errs, fmt.Errorf("registering %q validation: %w", tag, err))...)
	}
	err = v.RegisterTranslation(tag, trans,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " must be a time in HH:MM format"
		})
	if err != nil {
		errs = append(errs, fmt.Errorf("registering %q translation: %w", tag, err))
	}
	return errors.Join(errs...)
}

// Struct validates v against its validate tags and returns one conflict
// per failing field.
func (v *Validator) Struct(s any) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	err := v.validate.Struct(s)
	if err == nil {
		return result
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidSetting,
			Description: err.Error(),
		})
		return result
	}
	for _, fe := range errs {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidSetting,
			Field:       fe.Field(),
			Description: fe.Translate(v.translator),
		})
	}
	return result
}

// ValidateSettings checks stored settings before they are saved or used.
func (v *Validator) ValidateSettings(s models.Settings) ValidationResult {
	result := v.Struct(s)
	p := s.Program()
	if p.TotalCredits > 0 && p.MaxGPACredits() < 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:  ConflictInvalidSetting,
			Field: "program_total_credits",
			Description: fmt.Sprintf("internship and transfer credits (%g) exceed the program total (%g)",
				p.InternshipCredits+p.TransferCredits, p.TotalCredits),
		})
	}
	return result
}

// classTimes is the subset of a course checked by the hhmm rule.
type classTimes struct {
	Start string `json:"start_time" validate:"hhmm"`
	End   string `json:"end_time" validate:"hhmm"`
}

// ValidateTimetable reports malformed times, duplicate entries and classes
// that overlap on the same day. Unscheduled courses are ignored.
func (v *Validator) ValidateTimetable(courses []models.Course) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byDay := make(map[string][]models.Course)
	seen := make(map[string]bool)
	for _, c := range courses {
		if c.Day == "" || (c.StartTime == "" && c.EndTime == "") {
			continue
		}

		times := v.Struct(classTimes{Start: c.StartTime, End: c.EndTime})
		if times.HasConflicts() {
			for _, conflict := range times.Conflicts {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidTime,
					Description: fmt.Sprintf("%s on %s: %s", c.Key(), c.Day, conflict.Description),
					Day:         c.Day,
					Items:       []string{c.Key()},
				})
			}
			continue
		}

		start, _ := timetable.Minutes(c.StartTime)
		end, _ := timetable.Minutes(c.EndTime)
		if end <= start {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("%s on %s ends at %s before it starts at %s", c.Key(), c.Day, c.EndTime, c.StartTime),
				Day:         c.Day,
				Items:       []string{c.Key()},
			})
			continue
		}

		id := c.Key() + "|" + c.Day + "|" + c.StartTime
		if seen[id] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateClass,
				Description: fmt.Sprintf("%s is listed twice on %s at %s", c.Key(), c.Day, c.StartTime),
				Day:         c.Day,
				Items:       []string{c.Key()},
			})
			continue
		}
		seen[id] = true
		byDay[c.Day] = append(byDay[c.Day], c)
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	for _, day := range days {
		classes := byDay[day]
		sort.SliceStable(classes, func(i, j int) bool {
			return classes[i].StartTime < classes[j].StartTime
		})
		for i := 0; i < len(classes); i++ {
			for j := i + 1; j < len(classes); j++ {
				if !overlaps(classes[i], classes[j]) {
					continue
				}
				a, b := classes[i], classes[j]
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: ConflictOverlappingClasses,
					Description: fmt.Sprintf("%s (%s-%s) overlaps %s (%s-%s) on %s",
						a.Key(), a.StartTime, a.EndTime, b.Key(), b.StartTime, b.EndTime, day),
					Day:   day,
					Items: []string{a.Key(), b.Key()},
				})
			}
		}
	}

	return result
}

func overlaps(a, b models.Course) bool {
	aStart, _ := timetable.Minutes(a.StartTime)
	aEnd, _ := timetable.Minutes(a.EndTime)
	bStart, _ := timetable.Minutes(b.StartTime)
	bEnd, _ := timetable.Minutes(b.EndTime)
	return aStart < bEnd && bStart < aEnd
}
