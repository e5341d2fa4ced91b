package models

// Program holds the degree's credit configuration.
type Program struct {
	TotalCredits           float64 `json:"total_credits" validate:"gte=0"`
	InternshipCredits      float64 `json:"internship_credits" validate:"gte=0"`
	TransferCredits        float64 `json:"transfer_credits" validate:"gte=0"`
	DisplayRequiredCredits float64 `json:"display_required_credits" validate:"gte=0"`
}

// MaxGPACredits is the number of credits that can ever carry a grade point.
func (p Program) MaxGPACredits() float64 {
	return p.TotalCredits - p.InternshipCredits - p.TransferCredits
}

// RequiredCredits is the total shown to the student, falling back to the
// display figure when no program total is configured.
func (p Program) RequiredCredits() float64 {
	if p.TotalCredits > 0 {
		return p.TotalCredits
	}
	return p.DisplayRequiredCredits
}

// Settings represents application-wide settings
type Settings struct {
	ProgramTotalCredits    float64 `json:"program_total_credits" validate:"gte=0"`
	InternshipCredits      float64 `json:"internship_credits" validate:"gte=0"`
	TransferCredits        float64 `json:"transfer_credits" validate:"gte=0"`
	DisplayRequiredCredits float64 `json:"display_required_credits" validate:"gte=0"`
	CurrentTermCredits     float64 `json:"current_term_credits" validate:"gte=0"` // 0 derives the figure from in-progress courses
	SubtractInProgress     bool    `json:"subtract_in_progress"`
	BaseURL                string  `json:"base_url" validate:"omitempty,url"`
	StudentID              string  `json:"student_id"`
	PollIntervalSeconds    int     `json:"poll_interval_seconds" validate:"gte=1"`
	CacheTTLSeconds        int     `json:"cache_ttl_seconds" validate:"gte=0"` // 0 disables the in-memory cache
}

// Program extracts the credit configuration.
func (s Settings) Program() Program {
	return Program{
		TotalCredits:           s.ProgramTotalCredits,
		InternshipCredits:      s.InternshipCredits,
		TransferCredits:        s.TransferCredits,
		DisplayRequiredCredits: s.DisplayRequiredCredits,
	}
}
