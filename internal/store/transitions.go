package store

import (
	"time"

	"github.com/Linda-Mensah/hire-link/internal/types"
)

// transition maps a candidate record to its next state. Each transition states
// every field it writes; fields it does not name are carried over unchanged.
type transition func(types.Candidate) types.Candidate

// withStage writes Stage.
func withStage(stage types.Stage) transition {
	return func(c types.Candidate) types.Candidate {
		c.Stage = stage
		return c
	}
}

// withScore writes Score.
func withScore(score int) transition {
	return func(c types.Candidate) types.Candidate {
		c.Score = types.Some(score)
		return c
	}
}

// withNotes writes Notes, replacing any previous value.
func withNotes(text string) transition {
	return func(c types.Candidate) types.Candidate {
		c.Notes = types.Some(text)
		return c
	}
}

// interviewScheduled writes InterviewDate = at and Stage = interview_scheduled.
func interviewScheduled(at time.Time) transition {
	return func(c types.Candidate) types.Candidate {
		c.InterviewDate = types.Some(at.UTC())
		c.Stage = types.StageInterviewScheduled
		return c
	}
}

// offerSent writes OfferLetter = letter and Stage = offer_sent.
func offerSent(letter string) transition {
	return func(c types.Candidate) types.Candidate {
		c.OfferLetter = types.Some(letter)
		c.Stage = types.StageOfferSent
		return c
	}
}
