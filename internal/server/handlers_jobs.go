package server

import (
	"log"
	"net/http"

	"github.com/Linda-Mensah/hire-link/internal/types"
	"github.com/Linda-Mensah/hire-link/internal/validation"
)

// handleListJobs returns the job catalog
func (s *Server) handleListJobs(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs": s.apps.Jobs(),
	})
}

// handleGetJob returns one job
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, ok := s.apps.GetJobByID(id)
	if !ok {
		s.writeError(w, &ErrJobNotFound{ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleSubmitApplication validates a submission for a job and adds the candidate in the applied stage.
func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if _, ok := s.apps.GetJobByID(jobID); !ok {
		s.writeError(w, &ErrJobNotFound{ID: jobID})
		return
	}

	var req types.ApplicationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	fields, err := validation.ValidateApplication(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	id := s.apps.SubmitApplication(r.Context(), fields)
	log.Printf("[server] Application %s submitted for job %s", id, jobID)

	s.jsonResponse(w, http.StatusCreated, types.ApplicationResponse{
		ApplicationID: id,
		JobID:         jobID,
	})
}
