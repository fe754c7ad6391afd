package timesheet

import "github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/worktime"

type Status string

const (
	StatusDraft    Status = "Draft"
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

var Statuses = []string{string(StatusDraft), string(StatusPending), string(StatusApproved), string(StatusRejected)}

// Approval is the stored review state of one employee week. Stamps are epoch milliseconds.
type Approval struct {
	Status      Status `json:"status"`
	SubmittedAt *int64 `json:"submittedAt,omitempty"`
	ApprovedBy  string `json:"approvedBy,omitempty"`
	ApprovedAt  *int64 `json:"approvedAt,omitempty"`
}

// Draft is the state of a week that has never been submitted.
func Draft() Approval {
	return Approval{Status: StatusDraft}
}

// StatusOrDraft normalizes an unset status.
func (a Approval) StatusOrDraft() Status {
	if a.Status == "" {
		return StatusDraft
	}
	return a.Status
}

// WeekKey is the composite key employeeID_mondayKey.
func WeekKey(employeeID, mondayKey string) string {
	return employeeID + "_" + mondayKey
}

// SplitWeekKey reverses WeekKey. Employee ids may contain "_", so the suffix
// must be exactly one day-key.
func SplitWeekKey(key string) (employeeID, mondayKey string, ok bool) {
	n := len(worktime.DayKeyLayout)
	if len(key) < n+2 || key[len(key)-n-1] != '_' {
		return "", "", false
	}
	return key[:len(key)-n-1], key[len(key)-n:], true
}

// Approvals maps week keys to approvals.
type Approvals map[string]Approval
