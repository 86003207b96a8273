package pipeline

import (
	"testing"

	"github.com/Linda-Mensah/hire-link/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestIndex(t *testing.T) {
	assert.Equal(t, 0, Index(types.StageApplied))
	assert.Equal(t, 3, Index(types.StageOfferSent))
	assert.Equal(t, -1, Index("hired"))
}

func TestNextPrevious(t *testing.T) {
	tests := []struct {
		stage   types.Stage
		next    types.Stage
		hasNext bool
		prev    types.Stage
		hasPrev bool
	}{
		{types.StageApplied, types.StageReviewed, true, "", false},
		{types.StageReviewed, types.StageInterviewScheduled, true, types.StageApplied, true},
		{types.StageInterviewScheduled, types.StageOfferSent, true, types.StageReviewed, true},
		{types.StageOfferSent, "", false, types.StageInterviewScheduled, true},
		{"unknown", "", false, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			next, ok := Next(tt.stage)
			assert.Equal(t, tt.hasNext, ok)
			assert.Equal(t, tt.next, next)

			prev, ok := Previous(tt.stage)
			assert.Equal(t, tt.hasPrev, ok)
			assert.Equal(t, tt.prev, prev)
		})
	}
}

func TestMoveOptions(t *testing.T) {
	opts := MoveOptions(types.StageReviewed)
	assert.Equal(t, []MoveOption{
		{Label: "Move to Applied", Stage: types.StageApplied},
		{Label: "Move to Interview Scheduled", Stage: types.StageInterviewScheduled},
	}, opts)

	assert.Len(t, MoveOptions(types.StageApplied), 1)
	assert.Len(t, MoveOptions(types.StageOfferSent), 1)
	assert.Empty(t, MoveOptions("bogus"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Interview Scheduled", Title(types.StageInterviewScheduled))
	assert.Equal(t, "bogus", Title("bogus"))
}
