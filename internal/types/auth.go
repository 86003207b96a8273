package types

import (
	"github.com/go-playground/validator/v10"
)

// Role tags the kind of user holding the session.
type Role string

// Session roles. RoleNone means no role has been chosen.
const (
	RoleNone      Role = ""
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
	RoleCandidate Role = "candidate"
)

// IsValid reports whether r is a known role. RoleNone is valid.
func (r Role) IsValid() bool {
	switch r {
	case RoleNone, RoleAdmin, RoleRecruiter, RoleCandidate:
		return true
	default:
		return false
	}
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Session Session `json:"session"`
	Token   string  `json:"token"`
}

// RoleRequest selects a role without logging in.
type RoleRequest struct {
	Role Role `json:"role" validate:"omitempty,oneof=admin recruiter candidate"`
}

// Session is the process-wide authentication state.
type Session struct {
	IsAuthenticated bool `json:"is_authenticated"`
	Role            Role `json:"role"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RoleRequest using the validator.
func (r *RoleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
