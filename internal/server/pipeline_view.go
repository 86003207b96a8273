package server

import (
	"github.com/Linda-Mensah/hire-link/internal/pipeline"
	"github.com/Linda-Mensah/hire-link/internal/store"
	"github.com/Linda-Mensah/hire-link/internal/types"
)

// CandidateCard is a candidate as shown on the board.
type CandidateCard struct {
	types.Candidate
	ScoreBand types.ScoreBand       `json:"score_band"`
	Moves     []pipeline.MoveOption `json:"moves"`
}

// PipelineColumn is one stage of the board.
type PipelineColumn struct {
	Stage      types.Stage     `json:"stage"`
	Title      string          `json:"title"`
	Count      int             `json:"count"`
	Candidates []CandidateCard `json:"candidates"`
}

// PipelineView is the whole board at one store version.
type PipelineView struct {
	Version uint64           `json:"version"`
	Columns []PipelineColumn `json:"columns"`
}

func newCandidateCard(c types.Candidate) CandidateCard {
	moves := pipeline.MoveOptions(c.Stage)
	if moves == nil {
		moves = []pipeline.MoveOption{}
	}
	return CandidateCard{
		Candidate: c,
		ScoreBand: types.BandForScore(c.Score),
		Moves:     moves,
	}
}

// newPipelineView groups a snapshot into one column per stage, in pipeline order.
func newPipelineView(snap store.Snapshot) PipelineView {
	view := PipelineView{Version: snap.Version}
	index := make(map[types.Stage]int, len(pipeline.Stages))

	for i, def := range pipeline.Stages {
		index[def.ID] = i
		view.Columns = append(view.Columns, PipelineColumn{
			Stage:      def.ID,
			Title:      def.Title,
			Candidates: []CandidateCard{},
		})
	}

	for _, c := range snap.Candidates {
		i, ok := index[c.Stage]
		if !ok {
			continue
		}
		col := &view.Columns[i]
		col.Candidates = append(col.Candidates, newCandidateCard(c.Clone()))
		col.Count++
	}
	return view
}
