package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/Linda-Mensah/hire-link/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() types.ApplicationRequest {
	return types.ApplicationRequest{
		FullName:          "Jane Doe",
		Email:             "jane@x.com",
		Phone:             "+15550000",
		YearsOfExperience: 3,
		Skills:            "React, CSS, TypeScript",
	}
}

func TestValidateApplication_Valid(t *testing.T) {
	fields, err := ValidateApplication(validRequest())
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", fields.FullName)
	assert.Equal(t, "jane@x.com", fields.Email)
	assert.Equal(t, "+15550000", fields.Phone)
	assert.Equal(t, 3.0, fields.YearsOfExperience)
	assert.Equal(t, []string{"React", "CSS", "TypeScript"}, fields.Skills)
	assert.False(t, fields.PortfolioURL.IsSet())
	assert.False(t, fields.ResumeURL.IsSet())
}

func TestValidateApplication_OptionalFields(t *testing.T) {
	req := validRequest()
	req.PortfolioURL = " https://jane.dev "
	req.Resume = &types.Resume{
		FileName:    "jane.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		URL:         "https://files.example.com/jane.pdf",
	}

	fields, err := ValidateApplication(req)
	require.NoError(t, err)

	url, ok := fields.PortfolioURL.Get()
	require.True(t, ok)
	assert.Equal(t, "https://jane.dev", url)

	resume, ok := fields.ResumeURL.Get()
	require.True(t, ok)
	assert.Equal(t, "https://files.example.com/jane.pdf", resume)
}

func TestValidateApplication_TrimsInput(t *testing.T) {
	req := validRequest()
	req.FullName = "  Jane Doe  "
	req.Email = " jane@x.com\t"

	fields, err := ValidateApplication(req)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", fields.FullName)
	assert.Equal(t, "jane@x.com", fields.Email)
}

func TestValidateApplication_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.ApplicationRequest)
		field   string
		message string
	}{
		{"short name", func(r *types.ApplicationRequest) { r.FullName = "J" }, "full_name", "Full name must be at least 2 characters"},
		{"blank name", func(r *types.ApplicationRequest) { r.FullName = "   " }, "full_name", "Full name must be at least 2 characters"},
		{"long name", func(r *types.ApplicationRequest) { r.FullName = strings.Repeat("a", 101) }, "full_name", "Full name must be at most 100 characters"},
		{"bad email", func(r *types.ApplicationRequest) { r.Email = "jane" }, "email", "Invalid email address"},
		{"phone with leading zero", func(r *types.ApplicationRequest) { r.Phone = "0555" }, "phone", "Invalid phone number"},
		{"phone with dashes", func(r *types.ApplicationRequest) { r.Phone = "555-0100" }, "phone", "Invalid phone number"},
		{"phone too long", func(r *types.ApplicationRequest) { r.Phone = "12345678901234567" }, "phone", "Invalid phone number"},
		{"negative experience", func(r *types.ApplicationRequest) { r.YearsOfExperience = -1 }, "years_of_experience", "Years of experience must be between 0 and 50"},
		{"too much experience", func(r *types.ApplicationRequest) { r.YearsOfExperience = 51 }, "years_of_experience", "Years of experience must be between 0 and 50"},
		{"short skills", func(r *types.ApplicationRequest) { r.Skills = "Go" }, "skills", "Please provide at least 10 characters describing your skills"},
		{"only commas", func(r *types.ApplicationRequest) { r.Skills = ",,,,,,,,,,,," }, "skills", "Please provide at least 10 characters describing your skills"},
		{"bad portfolio", func(r *types.ApplicationRequest) { r.PortfolioURL = "not a url" }, "portfolio_url", "Invalid URL"},
		{"resume too large", func(r *types.ApplicationRequest) {
			r.Resume = &types.Resume{FileName: "cv.pdf", ContentType: "application/pdf", Size: 5*1024*1024 + 1}
		}, "resume.size", "File size must be less than 5MB"},
		{"resume wrong type", func(r *types.ApplicationRequest) {
			r.Resume = &types.Resume{FileName: "cv.png", ContentType: "image/png", Size: 10}
		}, "resume.content_type", "File must be PDF or DOC/DOCX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := ValidateApplication(req)
			require.Error(t, err)

			var verr *Error
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.Equal(t, tt.message, verr.Fields[0].Message)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidateApplication_ReportsEveryField(t *testing.T) {
	_, err := ValidateApplication(types.ApplicationRequest{})

	var verr *Error
	require.True(t, errors.As(err, &verr))

	var fields []string
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"full_name", "email", "phone", "skills"}, fields)
}

func TestValidateApplication_AcceptsWordDocuments(t *testing.T) {
	for _, ct := range []string{
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	} {
		req := validRequest()
		req.Resume = &types.Resume{FileName: "cv", ContentType: ct, Size: 5 * 1024 * 1024}
		_, err := ValidateApplication(req)
		assert.NoError(t, err, ct)
	}
}

func TestParseSkills(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"React, CSS", []string{"React", "CSS"}},
		{"  Go ,, Kubernetes ,", []string{"Go", "Kubernetes"}},
		{"single", []string{"single"}},
		{"", []string{}},
		{" , , ", []string{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSkills(tt.in), tt.in)
	}
}

func TestValidPhone(t *testing.T) {
	assert.True(t, validPhone("+15550000"))
	assert.True(t, validPhone("5"))
	assert.True(t, validPhone("1234567890123456"))
	assert.False(t, validPhone("+0123"))
	assert.False(t, validPhone(""))
	assert.False(t, validPhone("+"))
}

func TestError_Message(t *testing.T) {
	err := &Error{Fields: []FieldError{{Field: "email", Message: "Invalid email address"}}}
	assert.Equal(t, "validation error: email: Invalid email address", err.Error())
	assert.Equal(t, "validation error", (&Error{}).Error())
}
