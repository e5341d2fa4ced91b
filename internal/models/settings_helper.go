package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/gradeboard/internal/constants"
)

// DefaultSettings returns the settings written by `init`.
func DefaultSettings() Settings {
	return Settings{
		ProgramTotalCredits:    constants.DefaultProgramTotalCredits,
		InternshipCredits:      constants.DefaultInternshipCredits,
		TransferCredits:        constants.DefaultTransferCredits,
		DisplayRequiredCredits: constants.DefaultDisplayRequiredCredits,
		CurrentTermCredits:     constants.DefaultCurrentTermCredits,
		SubtractInProgress:     constants.DefaultSubtractInProgress,
		BaseURL:                constants.DefaultBaseURL,
		PollIntervalSeconds:    constants.DefaultPollIntervalSeconds,
		CacheTTLSeconds:        constants.DefaultCacheTTLSeconds,
	}
}

// MapToSettings converts stored key-value pairs to Settings. Keys that are
// absent keep their default value; unknown keys are ignored.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	parseFloat := func(key, value string, dst *float64) error {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		*dst = f
		return nil
	}
	parseInt := func(key, value string, dst *int) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	for key, value := range data {
		var err error
		switch key {
		case constants.SettingProgramTotalCredits:
			err = parseFloat(key, value, &settings.ProgramTotalCredits)
		case constants.SettingInternshipCredits:
			err = parseFloat(key, value, &settings.InternshipCredits)
		case constants.SettingTransferCredits:
			err = parseFloat(key, value, &settings.TransferCredits)
		case constants.SettingDisplayRequiredCredits:
			err = parseFloat(key, value, &settings.DisplayRequiredCredits)
		case constants.SettingCurrentTermCredits:
			err = parseFloat(key, value, &settings.CurrentTermCredits)
		case constants.SettingSubtractInProgress:
			settings.SubtractInProgress = value == "true"
		case constants.SettingBaseURL:
			settings.BaseURL = value
		case constants.SettingStudentID:
			settings.StudentID = value
		case constants.SettingPollIntervalSeconds:
			err = parseInt(key, value, &settings.PollIntervalSeconds)
		case constants.SettingCacheTTLSeconds:
			err = parseInt(key, value, &settings.CacheTTLSeconds)
		}
		if err != nil {
			return Settings{}, err
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingProgramTotalCredits:    formatFloat(settings.ProgramTotalCredits),
		constants.SettingInternshipCredits:      formatFloat(settings.InternshipCredits),
		constants.SettingTransferCredits:        formatFloat(settings.TransferCredits),
		constants.SettingDisplayRequiredCredits: formatFloat(settings.DisplayRequiredCredits),
		constants.SettingCurrentTermCredits:     formatFloat(settings.CurrentTermCredits),
		constants.SettingSubtractInProgress:     strconv.FormatBool(settings.SubtractInProgress),
		constants.SettingBaseURL:                settings.BaseURL,
		constants.SettingStudentID:              settings.StudentID,
		constants.SettingPollIntervalSeconds:    strconv.Itoa(settings.PollIntervalSeconds),
		constants.SettingCacheTTLSeconds:        strconv.Itoa(settings.CacheTTLSeconds),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
