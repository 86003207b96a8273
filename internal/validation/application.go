package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Linda-Mensah/hire-link/internal/types"
)

// phonePattern accepts an optional leading + and up to 16 digits, no leading zero.
var phonePattern = regexp.MustCompile(`^[+]?[1-9][\d]{0,15}$`)

// Messages shown for specific field/tag failures. Anything not listed falls back
// to a generic message built from the tag.
var messages = map[string]string{
	"full_name.min":                "Full name must be at least 2 characters",
	"full_name.required":           "Full name must be at least 2 characters",
	"full_name.max":                "Full name must be at most 100 characters",
	"email.required":               "Invalid email address",
	"email.email":                  "Invalid email address",
	"phone.required":               "Invalid phone number",
	"phone.phone":                  "Invalid phone number",
	"years_of_experience.min":      "Years of experience must be between 0 and 50",
	"years_of_experience.max":      "Years of experience must be between 0 and 50",
	"skills.required":              "Please provide at least 10 characters describing your skills",
	"skills.min":                   "Please provide at least 10 characters describing your skills",
	"portfolio_url.url":            "Invalid URL",
	"resume.size.max":              "File size must be less than 5MB",
	"resume.content_type.oneof":    "File must be PDF or DOC/DOCX",
	"resume.content_type.required": "File must be PDF or DOC/DOCX",
	"resume.file_name.required":    "Resume file name is required",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return validPhone(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func validPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateApplication trims and checks a submission and returns the fields to store.
// On failure the error is an *Error listing every rejected field.
func ValidateApplication(req types.ApplicationRequest) (types.CandidateFields, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Skills = strings.TrimSpace(req.Skills)
	req.PortfolioURL = strings.TrimSpace(req.PortfolioURL)

	if err := instance().Struct(req); err != nil {
		return types.CandidateFields{}, toError(err)
	}

	skills := ParseSkills(req.Skills)
	if len(skills) == 0 {
		return types.CandidateFields{}, &Error{Fields: []FieldError{{
			Field:   "skills",
			Message: messages["skills.min"],
		}}}
	}

	fields := types.CandidateFields{
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		YearsOfExperience: req.YearsOfExperience,
		Skills:            skills,
	}
	if req.PortfolioURL != "" {
		fields.PortfolioURL = types.Some(req.PortfolioURL)
	}
	if req.Resume != nil && req.Resume.URL != "" {
		fields.ResumeURL = types.Some(req.Resume.URL)
	}
	return fields, nil
}

// ParseSkills splits a comma-separated skills string into trimmed, non-empty entries.
func ParseSkills(raw string) []string {
	skills := []string{}
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func toError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Cause: err}
	}

	out := &Error{Cause: err}
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = "failed '" + fe.Tag() + "' check"
		}
		out.Fields = append(out.Fields, FieldError{Field: field, Message: msg})
	}
	return out
}

// fieldPath drops the top-level struct name from a validator namespace,
// e.g. "ApplicationRequest.resume.size" becomes "resume.size".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
