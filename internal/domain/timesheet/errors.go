package timesheet

import "errors"

var (
	ErrTimesheetAlreadyApproved = errors.New("timesheet already approved")
	ErrTimesheetNotPending      = errors.New("timesheet is not pending review")
)
