package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeAttendanceClockIn  NotificationType = "attendance.clock_in"
	TypeAttendanceClockOut NotificationType = "attendance.clock_out"
	TypeLeaveRequest       NotificationType = "leave.requested"
	TypeLeaveApproved      NotificationType = "leave.approved"
	TypeLeaveRejected      NotificationType = "leave.rejected"
	TypeTimesheetSubmitted NotificationType = "timesheet.submitted"
	TypeTimesheetApproved  NotificationType = "timesheet.approved"
	TypeTimesheetRejected  NotificationType = "timesheet.rejected"
)

// TopicReviewers receives every event; elevated sessions subscribe to it.
const TopicReviewers = "reviewers"

// Notification is one event about an employee. It is delivered, never stored.
type Notification struct {
	ID         string
	EmployeeID string
	Type       NotificationType
	Title      string
	Message    string
	Data       map[string]interface{}
	CreatedAt  time.Time
}
