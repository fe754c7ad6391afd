package validator

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

// DayKeyLayout is the layout of day keys and every date field in requests.
const DayKeyLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// Add appends one field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// ToMap keys messages by field. The first message of a field wins.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		if _, seen := result[err.Field]; !seen {
			result[err.Field] = err.Message
		}
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// IsValidPIN accepts 4-6 digits.
func IsValidPIN(pin string) bool {
	return len(pin) >= 4 && len(pin) <= 6 && IsNumeric(pin)
}

// IsValidDate parses a YYYY-MM-DD day key.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DayKeyLayout, dateStr)
	return date, err == nil
}

// IsValidDayRange reports whether both keys parse and from is not after to.
// Day keys order lexically, so no location is needed.
func IsValidDayRange(from, to string) bool {
	_, okFrom := IsValidDate(from)
	_, okTo := IsValidDate(to)
	return okFrom && okTo && from <= to
}

func IsInSlice(value string, slice []string) bool {
	return slices.Contains(slice, value)
}

// IsValidScore checks a 1-5 rating.
func IsValidScore(score int) bool {
	return score >= 1 && score <= 5
}
