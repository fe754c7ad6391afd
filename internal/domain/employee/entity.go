package employee

import "strings"

// DefaultTargetHours is the daily target used when an employee has none.
const DefaultTargetHours = 8.0

// WorkDaysPerWeek converts a daily target into the weekly timesheet target.
const WorkDaysPerWeek = 5

type Employee struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        Role    `json:"role"`
	StartDate   string  `json:"startDate,omitempty"`
	PIN         string  `json:"pin,omitempty"`
	TargetHours float64 `json:"targetHours"`

	// Intern-only attributes
	School            string       `json:"school,omitempty"`
	Mentor            string       `json:"mentor,omitempty"`
	InternshipStart   string       `json:"internshipStart,omitempty"`
	InternshipEnd     string       `json:"internshipEnd,omitempty"`
	Status            InternStatus `json:"status,omitempty"`
	Stipend           string       `json:"stipend,omitempty"`
	Tasks             []string     `json:"tasks,omitempty"`
	WeeklyTargetHours *float64     `json:"weeklyTargetHours,omitempty"`
}

type Role string

const (
	RoleStaff      Role = "Staff"
	RoleSupervisor Role = "Supervisor"
	RoleManager    Role = "Manager"
	RoleIntern     Role = "Intern"
)

var Roles = []string{string(RoleStaff), string(RoleSupervisor), string(RoleManager), string(RoleIntern)}

type InternStatus string

const (
	InternStatusActive    InternStatus = "Aktif"
	InternStatusCompleted InternStatus = "Selesai"
	InternStatusDropped   InternStatus = "Drop"
)

var InternStatuses = []string{string(InternStatusActive), string(InternStatusCompleted), string(InternStatusDropped)}

func (e Employee) IsIntern() bool {
	return e.Role == RoleIntern
}

// IsManager reports whether the employee has elevated scope.
func (e Employee) IsManager() bool {
	return e.Role == RoleManager || e.Role == RoleSupervisor
}

// DailyTarget returns the target hours, falling back to the default.
func (e Employee) DailyTarget() float64 {
	if e.TargetHours <= 0 {
		return DefaultTargetHours
	}
	return e.TargetHours
}

// WeeklyTarget is the intern weekly target when set, otherwise five daily targets.
func (e Employee) WeeklyTarget() float64 {
	if e.WeeklyTargetHours != nil && *e.WeeklyTargetHours > 0 {
		return *e.WeeklyTargetHours
	}
	return e.DailyTarget() * WorkDaysPerWeek
}

// InternStatusOrDefault treats an unset intern status as active.
func (e Employee) InternStatusOrDefault() InternStatus {
	if e.Status == "" {
		return InternStatusActive
	}
	return e.Status
}

// ConvertToStaff strips every intern-only attribute and makes the employee Staff.
func (e *Employee) ConvertToStaff() {
	e.ClearInternFields()
	e.Role = RoleStaff
}

// ClearInternFields drops the intern-only attributes.
func (e *Employee) ClearInternFields() {
	e.School = ""
	e.Mentor = ""
	e.InternshipStart = ""
	e.InternshipEnd = ""
	e.Status = ""
	e.Stipend = ""
	e.Tasks = nil
	e.WeeklyTargetHours = nil
}

// SameEmail compares emails case-insensitively.
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
