package types

import (
	"slices"
	"time"
)

// Stage is a position in the hiring pipeline.
type Stage string

// Pipeline stages, in order.
const (
	StageApplied            Stage = "applied"
	StageReviewed           Stage = "reviewed"
	StageInterviewScheduled Stage = "interview_scheduled"
	StageOfferSent          Stage = "offer_sent"
)

// IsValid reports whether s is one of the four pipeline stages.
func (s Stage) IsValid() bool {
	switch s {
	case StageApplied, StageReviewed, StageInterviewScheduled, StageOfferSent:
		return true
	default:
		return false
	}
}

func (s Stage) String() string {
	return string(s)
}

// Job is an immutable catalog entry.
type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Department  string `json:"department"`
	SalaryRange string `json:"salary_range"`
	PostedDate  string `json:"posted_date"`
}

// CandidateFields are the fields fixed at submission time, as supplied by the applicant.
type CandidateFields struct {
	FullName          string           `json:"full_name"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	YearsOfExperience float64          `json:"years_of_experience"`
	Skills            []string         `json:"skills"`
	PortfolioURL      Optional[string] `json:"portfolio_url,omitzero"`
	ResumeURL         Optional[string] `json:"resume_url,omitzero"`
}

// Candidate is one submitted application moving through the pipeline.
type Candidate struct {
	ID string `json:"id"`
	CandidateFields
	ApplicationDate time.Time `json:"application_date"`

	Stage         Stage               `json:"stage"`
	Score         Optional[int]       `json:"score,omitzero"`
	Notes         Optional[string]    `json:"notes,omitzero"`
	InterviewDate Optional[time.Time] `json:"interview_date,omitzero"`
	OfferLetter   Optional[string]    `json:"offer_letter,omitzero"`
}

// Clone returns a copy of c that shares no slices with it.
func (c Candidate) Clone() Candidate {
	c.Skills = slices.Clone(c.Skills)
	return c
}

// ScoreBand buckets a reviewer score for display.
type ScoreBand string

// Score bands.
const (
	ScoreBandNone   ScoreBand = "none"
	ScoreBandLow    ScoreBand = "low"
	ScoreBandMedium ScoreBand = "medium"
	ScoreBandHigh   ScoreBand = "high"
)

// BandForScore maps an optional score to its band: absent is none, >=4 high, 3 medium, else low.
func BandForScore(score Optional[int]) ScoreBand {
	v, ok := score.Get()
	switch {
	case !ok || v == 0:
		return ScoreBandNone
	case v >= 4:
		return ScoreBandHigh
	case v >= 3:
		return ScoreBandMedium
	default:
		return ScoreBandLow
	}
}
