package types

import (
	"github.com/go-playground/validator/v10"
)

// ApplicationRequest is the multi-step application form as submitted by a candidate.
// Skills is free text; it is split on commas before the candidate is stored.
type ApplicationRequest struct {
	FullName          string  `json:"full_name" validate:"required,min=2,max=100"`
	Email             string  `json:"email" validate:"required,email"`
	Phone             string  `json:"phone" validate:"required,phone"`
	YearsOfExperience float64 `json:"years_of_experience" validate:"min=0,max=50"`
	Skills            string  `json:"skills" validate:"required,min=10"`
	PortfolioURL      string  `json:"portfolio_url,omitempty" validate:"omitempty,url"`
	Resume            *Resume `json:"resume,omitempty" validate:"omitempty"`
}

// Resume describes an uploaded resume file.
type Resume struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required,oneof=application/pdf application/msword application/vnd.openxmlformats-officedocument.wordprocessingml.document"`
	Size        int64  `json:"size" validate:"min=0,max=5242880"`
	URL         string `json:"url,omitempty"`
}

// ApplicationResponse is returned after a submission.
type ApplicationResponse struct {
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
}

// StageRequest moves a candidate to a stage.
type StageRequest struct {
	Stage Stage `json:"stage" validate:"required,oneof=applied reviewed interview_scheduled offer_sent"`
}

// ScoreRequest scores a candidate on a 1-5 scale.
type ScoreRequest struct {
	Score int `json:"score" validate:"min=1,max=5"`
}

// NotesRequest replaces a candidate's notes.
type NotesRequest struct {
	Notes string `json:"notes"`
}

// InterviewRequest schedules an interview. Either At (RFC 3339) or Date (YYYY-MM-DD)
// plus Time (HH:MM) must be given.
type InterviewRequest struct {
	At          string `json:"at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Date        string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time        string `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	Type        string `json:"type,omitempty" validate:"omitempty,oneof=video phone in-person"`
	Interviewer string `json:"interviewer,omitempty"`
}

// OfferRequest carries the compensation terms for an offer letter.
// Absent fields fall back to the default terms; an explicit zero bonus is kept.
type OfferRequest struct {
	BaseSalary   *int   `json:"base_salary,omitempty" validate:"omitempty,min=1,max=10000000"`
	BonusPercent *int   `json:"bonus_percent,omitempty" validate:"omitempty,min=0,max=100"`
	Position     string `json:"position,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Validate validates the StageRequest using the validator.
func (r *StageRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the InterviewRequest using the validator.
func (r *InterviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the OfferRequest using the validator.
func (r *OfferRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
