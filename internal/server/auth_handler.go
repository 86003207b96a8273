package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Linda-Mensah/hire-link/internal/auth"
	"github.com/Linda-Mensah/hire-link/internal/types"
)

// AuthHandler handles session-related HTTP requests.
type AuthHandler struct {
	sessions   *auth.Store
	jwtService *JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(sessions *auth.Store, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		sessions:   sessions,
		jwtService: jwtService,
	}
}

// Login checks credentials against the static list and, on success, returns the
// session together with a bearer token for the recruiter endpoints.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": extractValidationErrors(err)})
		return
	}

	ok, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Only a cancelled request gets here; the client is gone.
		log.Printf("[auth] Login aborted: %v", err)
		writeJSON(w, http.StatusRequestTimeout, map[string]string{"error": "login aborted"})
		return
	}
	if !ok {
		invalid := &ErrInvalidCredentials{}
		writeJSON(w, HTTPStatus(invalid), map[string]string{"error": invalid.Error()})
		return
	}

	session := h.sessions.Session()
	token, err := h.jwtService.GenerateToken(session.Role)
	if err != nil {
		log.Printf("[auth] Failed to generate token: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusOK, types.LoginResponse{
		Session: session,
		Token:   token,
	})
}

// Logout signs the session out. It always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(r.Context())
	writeJSON(w, http.StatusOK, h.sessions.Session())
}

// SetRole records the role chosen on the landing page.
func (h *AuthHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	var req types.RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": extractValidationErrors(err)})
		return
	}

	h.sessions.SetRole(r.Context(), req.Role)
	writeJSON(w, http.StatusOK, h.sessions.Session())
}

// Session returns the current session.
func (h *AuthHandler) Session(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.sessions.Session())
}

// writeJSON is jsonResponse for handlers that do not hold a *Server.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] Error encoding JSON response: %v", err)
	}
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		// Return first validation error for simplicity
		ve := validationErrors[0]
		return (&ErrValidation{Field: ve.Field(), Message: ve.Tag()}).Error()
	}
	return fmt.Sprintf("validation error: %v", err)
}
