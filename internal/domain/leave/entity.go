package leave

type LeaveType string

const (
	LeaveTypeSick   LeaveType = "Sakit"
	LeaveTypePermit LeaveType = "Izin"
	LeaveTypeCampus LeaveType = "Kampus"
)

var LeaveTypes = []string{string(LeaveTypeSick), string(LeaveTypePermit), string(LeaveTypeCampus)}

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "Pending"
	LeaveStatusApproved LeaveStatus = "Approved"
	LeaveStatusRejected LeaveStatus = "Rejected"
)

// LeaveRequest entity. CreatedAt and DecidedAt are epoch milliseconds.
type LeaveRequest struct {
	ID         string      `json:"id"`
	EmployeeID string      `json:"employeeId"`
	Type       LeaveType   `json:"type"`
	DateFrom   string      `json:"dateFrom"`
	DateTo     string      `json:"dateTo"`
	Reason     string      `json:"reason,omitempty"`
	Status     LeaveStatus `json:"status"`
	CreatedAt  int64       `json:"createdAt"`
	DecidedBy  string      `json:"decidedBy,omitempty"`
	DecidedAt  *int64      `json:"decidedAt,omitempty"`
}

func (l LeaveRequest) IsPending() bool {
	return l.Status == LeaveStatusPending || l.Status == ""
}
