// Package offer renders plain-text offer letters for candidates.
package offer

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/template"
)

// Default compensation used when an offer is generated without explicit terms.
const (
	DefaultBaseSalary   = 85000
	DefaultBonusPercent = 10
	DefaultCompany      = "HireLink"
)

// Terms are the inputs interpolated into an offer letter.
type Terms struct {
	BaseSalary   int
	BonusPercent int
	Position     string
	Company      string
	Notes        string
}

// DefaultTerms returns the terms used by a plain GenerateOffer call.
func DefaultTerms() Terms {
	return Terms{
		BaseSalary:   DefaultBaseSalary,
		BonusPercent: DefaultBonusPercent,
		Company:      DefaultCompany,
	}
}

// WithDefaults fills a zero BaseSalary and an empty Company from DefaultTerms.
// BonusPercent is kept as given; zero is a valid bonus.
func (t Terms) WithDefaults() Terms {
	d := DefaultTerms()
	if t.BaseSalary == 0 {
		t.BaseSalary = d.BaseSalary
	}
	if t.Company == "" {
		t.Company = d.Company
	}
	return t
}

// TotalCompensation returns base salary plus the target bonus.
func (t Terms) TotalCompensation() int {
	return t.BaseSalary + t.BaseSalary*t.BonusPercent/100
}

const letterTemplate = `OFFER LETTER

Dear {{.Name}},

We are pleased to extend an offer for the position of {{.Position}} at {{.Company}}.

COMPENSATION PACKAGE:
- Base Salary: {{money .BaseSalary}} per annum
- Target Bonus: {{.BonusPercent}}% of base salary
- Total Annual Compensation: {{money .Total}}
{{if .Notes}}
ADDITIONAL NOTES:
{{.Notes}}
{{end}}
Please review this offer and let us know your decision within 7 business days.

Congratulations!

Sincerely,
The Hiring Team
{{.Company}}
`

var letter = template.Must(template.New("offer").Funcs(template.FuncMap{
	"money": formatMoney,
}).Parse(letterTemplate))

// Render produces the offer letter text for the named candidate.
// The output depends only on its inputs.
func Render(fullName string, terms Terms) (string, error) {
	terms = terms.WithDefaults()
	position := terms.Position
	if position == "" {
		position = "the advertised role"
	}

	var buf bytes.Buffer
	err := letter.Execute(&buf, map[string]any{
		"Name":         fullName,
		"Position":     position,
		"Company":      terms.Company,
		"BaseSalary":   terms.BaseSalary,
		"BonusPercent": terms.BonusPercent,
		"Total":        terms.TotalCompensation(),
		"Notes":        strings.TrimSpace(terms.Notes),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render offer letter: %w", err)
	}
	return buf.String(), nil
}

// FileName returns the download name for a candidate's offer letter.
func FileName(fullName string) string {
	return fmt.Sprintf("offer-%s.txt", fullName)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._ -]`)

// SafeFileName is FileName reduced to a single path element, for writing to disk.
// Anything outside letters, digits, space, dot, dash and underscore becomes "_",
// and leading dots are dropped.
func SafeFileName(fullName string) string {
	name := unsafeFileChars.ReplaceAllString(fullName, "_")
	name = strings.TrimLeft(name, ". ")
	if name == "" {
		name = "candidate"
	}
	return FileName(name)
}

// formatMoney renders an amount with thousands separators, e.g. 85000 -> "85,000".
func formatMoney(amount int) string {
	s := strconv.Itoa(amount)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var out strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	if neg {
		return "-" + out.String()
	}
	return out.String()
}
