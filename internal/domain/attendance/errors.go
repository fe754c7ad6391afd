package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidDateRange = errors.New("date_from must not be after date_to")
	ErrOutOfScope       = errors.New("employee is outside the caller's scope")
)
