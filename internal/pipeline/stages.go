// Package pipeline defines the ordered hiring pipeline a candidate moves through.
package pipeline

import (
	"github.com/Linda-Mensah/hire-link/internal/types"
)

// StageDefinition defines display metadata for a pipeline stage
type StageDefinition struct {
	ID    types.Stage
	Title string
}

// Stages lists every pipeline stage in order. Applied is the entry stage.
var Stages = []StageDefinition{
	{ID: types.StageApplied, Title: "Applied"},
	{ID: types.StageReviewed, Title: "Reviewed"},
	{ID: types.StageInterviewScheduled, Title: "Interview Scheduled"},
	{ID: types.StageOfferSent, Title: "Offer Sent"},
}

// Initial is the stage every new candidate starts in.
const Initial = types.StageApplied

// Index returns the position of stage in the pipeline, or -1 if it is unknown.
func Index(stage types.Stage) int {
	for i, def := range Stages {
		if def.ID == stage {
			return i
		}
	}
	return -1
}

// Title returns the display title for stage, or the raw value if it is unknown.
func Title(stage types.Stage) string {
	if i := Index(stage); i >= 0 {
		return Stages[i].Title
	}
	return string(stage)
}

// Next returns the stage after stage. ok is false at the end of the pipeline
// or when stage is unknown.
func Next(stage types.Stage) (types.Stage, bool) {
	i := Index(stage)
	if i < 0 || i >= len(Stages)-1 {
		return "", false
	}
	return Stages[i+1].ID, true
}

// Previous returns the stage before stage. ok is false at the start of the pipeline
// or when stage is unknown.
func Previous(stage types.Stage) (types.Stage, bool) {
	i := Index(stage)
	if i <= 0 {
		return "", false
	}
	return Stages[i-1].ID, true
}

// MoveOption is a board action that moves a candidate to a neighbouring stage.
type MoveOption struct {
	Label string      `json:"label"`
	Stage types.Stage `json:"stage"`
}

// MoveOptions returns the backward and forward moves available from stage, in that order.
func MoveOptions(stage types.Stage) []MoveOption {
	var opts []MoveOption
	if prev, ok := Previous(stage); ok {
		opts = append(opts, MoveOption{Label: "Move to " + Title(prev), Stage: prev})
	}
	if next, ok := Next(stage); ok {
		opts = append(opts, MoveOption{Label: "Move to " + Title(next), Stage: next})
	}
	return opts
}
