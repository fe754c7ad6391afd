package dashboard

import "github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Date       string                    `json:"date"`
	Attendance attendance.DashboardStats `json:"attendance"`
	Roster     RosterSummaryResponse     `json:"roster"`
	Pending    PendingSummaryResponse    `json:"pending"`
	Week       WeekSummaryResponse       `json:"week"`
}

// ========== ROSTER SUMMARY ==========

// RosterSummaryResponse counts the roster by role and intern status
type RosterSummaryResponse struct {
	Total         int            `json:"total"`
	ByRole        map[string]int `json:"by_role"`
	ActiveInterns int            `json:"active_interns"`
}

// ========== PENDING WORK ==========

// PendingSummaryResponse counts items waiting for a reviewer
type PendingSummaryResponse struct {
	Timesheets int `json:"timesheets"`
	Leaves     int `json:"leaves"`
}

// ========== WEEKLY HOURS ==========

// WeekSummaryResponse sums worked hours for the week containing the date
type WeekSummaryResponse struct {
	WeekStart   string  `json:"week_start"`
	TotalHours  float64 `json:"total_hours"`
	TargetHours float64 `json:"target_hours"`
	// BelowTarget counts employees whose week is under their weekly target
	BelowTarget int `json:"below_target"`
}
