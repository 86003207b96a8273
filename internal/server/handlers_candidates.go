package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/Linda-Mensah/hire-link/internal/offer"
	"github.com/Linda-Mensah/hire-link/internal/pipeline"
	"github.com/Linda-Mensah/hire-link/internal/types"
)

// handleListCandidates lists candidates, optionally filtered by ?stage=
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("stage")
	if raw == "" {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"candidates": s.apps.Snapshot().Candidates,
		})
		return
	}

	stage := types.Stage(raw)
	if !stage.IsValid() {
		s.writeError(w, &ErrValidation{Field: "stage", Message: "unknown stage " + raw})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"stage":      stage,
		"candidates": s.apps.GetCandidatesByStage(stage),
	})
}

// handleGetCandidate returns one candidate with its board metadata
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	c, ok := s.apps.GetCandidate(r.PathValue("id"))
	if !ok {
		s.writeError(w, &ErrCandidateNotFound{ID: r.PathValue("id")})
		return
	}
	s.jsonResponse(w, http.StatusOK, newCandidateCard(c))
}

// handleUpdateStage moves a candidate to any stage
func (s *Server) handleUpdateStage(w http.ResponseWriter, r *http.Request) {
	var req types.StageRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	id := r.PathValue("id")
	s.respondAfter(w, id, s.apps.UpdateCandidateStage(r.Context(), id, req.Stage))
}

// handleAdvance moves a candidate one stage forward
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	s.moveAdjacent(w, r, "forward", pipeline.Next)
}

// handleRetreat moves a candidate one stage back
func (s *Server) handleRetreat(w http.ResponseWriter, r *http.Request) {
	s.moveAdjacent(w, r, "back", pipeline.Previous)
}

func (s *Server) moveAdjacent(w http.ResponseWriter, r *http.Request, direction string, step func(types.Stage) (types.Stage, bool)) {
	id := r.PathValue("id")
	c, ok := s.apps.GetCandidate(id)
	if !ok {
		s.writeError(w, &ErrCandidateNotFound{ID: id})
		return
	}

	target, ok := step(c.Stage)
	if !ok {
		s.writeError(w, &ErrNoAdjacentStage{ID: id, Direction: direction})
		return
	}

	s.respondAfter(w, id, s.apps.UpdateCandidateStage(r.Context(), id, target))
}

// handleUpdateScore sets a 1-5 score
func (s *Server) handleUpdateScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	id := r.PathValue("id")
	s.respondAfter(w, id, s.apps.UpdateCandidateScore(r.Context(), id, req.Score))
}

// handleUpdateNotes replaces the reviewer notes
func (s *Server) handleUpdateNotes(w http.ResponseWriter, r *http.Request) {
	var req types.NotesRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	id := r.PathValue("id")
	s.respondAfter(w, id, s.apps.AddNote(r.Context(), id, req.Notes))
}

// handleScheduleInterview records an interview time and moves the candidate to interview_scheduled
func (s *Server) handleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	var req types.InterviewRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	at, err := interviewTime(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id := r.PathValue("id")
	s.respondAfter(w, id, s.apps.ScheduleInterview(r.Context(), id, at))
}

// interviewTime resolves the request to an instant. A bare date and time are read as UTC.
func interviewTime(req types.InterviewRequest) (time.Time, error) {
	if req.At != "" {
		at, err := time.Parse(time.RFC3339, req.At)
		if err != nil {
			return time.Time{}, &ErrValidation{Field: "at", Message: "must be an RFC 3339 timestamp"}
		}
		return at, nil
	}

	if req.Date == "" {
		return time.Time{}, &ErrValidation{Field: "date", Message: "either at or date is required"}
	}
	clock := req.Time
	if clock == "" {
		clock = "10:00"
	}

	at, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+clock, time.UTC)
	if err != nil {
		return time.Time{}, &ErrValidation{Field: "date", Message: "must be YYYY-MM-DD with time HH:MM"}
	}
	return at, nil
}

// handleGenerateOffer writes an offer letter and moves the candidate to offer_sent.
// An empty body uses the default terms.
func (s *Server) handleGenerateOffer(w http.ResponseWriter, r *http.Request) {
	var req types.OfferRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	terms := offer.DefaultTerms()
	if req.BaseSalary != nil {
		terms.BaseSalary = *req.BaseSalary
	}
	if req.BonusPercent != nil {
		terms.BonusPercent = *req.BonusPercent
	}
	terms.Position = req.Position
	terms.Notes = req.Notes

	id := r.PathValue("id")
	ok, err := s.apps.GenerateOfferWithTerms(r.Context(), id, terms)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondAfter(w, id, ok)
}

// handleDownloadOffer serves the stored letter as a text attachment
func (s *Server) handleDownloadOffer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, ok := s.apps.GetCandidate(id)
	if !ok {
		s.writeError(w, &ErrCandidateNotFound{ID: id})
		return
	}

	letter, ok := c.OfferLetter.Get()
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "no offer letter for candidate "+id)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": offer.FileName(c.FullName),
	}))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, letter)
}

// respondAfter answers a store mutation: the updated candidate, or 404 when the id was unknown.
func (s *Server) respondAfter(w http.ResponseWriter, id string, changed bool) {
	if !changed {
		s.writeError(w, &ErrCandidateNotFound{ID: id})
		return
	}

	c, ok := s.apps.GetCandidate(id)
	if !ok {
		s.writeError(w, &ErrCandidateNotFound{ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, newCandidateCard(c))
}

// decodeOptionalJSON decodes the body into v; an empty body leaves v untouched.
func decodeOptionalJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil
	}
	return json.Unmarshal(body, v)
}
