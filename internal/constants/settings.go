package constants

const (
	// Program Settings
	SettingProgramTotalCredits    = "program_total_credits"
	SettingInternshipCredits      = "internship_credits"
	SettingTransferCredits        = "transfer_credits"
	SettingDisplayRequiredCredits = "display_required_credits"
	SettingCurrentTermCredits     = "current_term_credits"
	SettingSubtractInProgress     = "subtract_in_progress"

	// Service Settings
	SettingBaseURL             = "base_url"
	SettingStudentID           = "student_id"
	SettingPollIntervalSeconds = "poll_interval_seconds"
	SettingCacheTTLSeconds     = "cache_ttl_seconds"

	// Default Settings Values
	DefaultProgramTotalCredits    = 129.0
	DefaultInternshipCredits      = 5.0
	DefaultTransferCredits        = 18.0
	DefaultDisplayRequiredCredits = 129.0
	DefaultCurrentTermCredits     = 0.0
	DefaultSubtractInProgress     = true
	DefaultBaseURL                = "http://localhost:8000"
	DefaultPollIntervalSeconds    = 3
	DefaultCacheTTLSeconds        = 30
)
