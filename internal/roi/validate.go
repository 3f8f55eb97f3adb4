package roi

import (
	"regexp"
	"strings"
)

// FieldError describes one rejected answer.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Upper bounds keep every derived metric finite.
const (
	MaxCallsPerWeek = 1e6
	MaxAmount       = 1e9
)

func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Validate checks a at the boundary, before Compute is called. It returns
// nil when every constraint holds.
func (a Answers) Validate() []FieldError {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	if strings.TrimSpace(a.Name) == "" {
		add("name", "Name is required")
	}
	switch email := strings.TrimSpace(a.Email); {
	case email == "":
		add("email", "Email is required")
	case !validEmail(email):
		add("email", "Please enter a valid email address")
	}

	if !a.Industry.Valid() {
		add("industry", "unknown industry")
	}
	if !a.PhoneCoverage.Valid() {
		add("phoneCoverage", "unknown phone coverage")
	}

	switch {
	case !finite(a.CallsPerWeek) || a.CallsPerWeek <= 0:
		add("callsPerWeek", "must be greater than 0")
	case a.CallsPerWeek > MaxCallsPerWeek:
		add("callsPerWeek", "must not exceed 1,000,000")
	}
	if !percent(a.AnswerPercentage) {
		add("answerPercentage", "must be between 0 and 100")
	}
	switch {
	case !finite(a.JobValue) || a.JobValue <= 0:
		add("jobValue", "must be greater than 0")
	case a.JobValue > MaxAmount:
		add("jobValue", "must not exceed 1,000,000,000")
	}
	if !percent(a.CloseRate) {
		add("closeRate", "must be between 0 and 100")
	}
	switch {
	case !finite(a.MonthlySpending) || a.MonthlySpending < 0:
		add("monthlySpending", "must not be negative")
	case a.MonthlySpending > MaxAmount:
		add("monthlySpending", "must not exceed 1,000,000,000")
	}

	return errs
}

// Normalize trims the contact strings and lowercases the email.
func (a Answers) Normalize() Answers {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.BusinessName = strings.TrimSpace(a.BusinessName)
	return a
}

func percent(v float64) bool {
	return finite(v) && v >= 0 && v <= 100
}
