package user

type Permission string

const (
	// Self service
	PermissionAttendanceOwn Permission = "attendance.own"
	PermissionLeaveCreate   Permission = "leave.create"
	PermissionLearningOwn   Permission = "learning.own"
	PermissionTimesheetOwn  Permission = "timesheet.submit_own"

	// Elevated scope
	PermissionViewAll         Permission = "records.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"
	PermissionInternManage    Permission = "intern.manage"
	PermissionExport          Permission = "report.export"
	PermissionTimesheetReview Permission = "timesheet.review"
	PermissionLeaveApprove    Permission = "leave.approve"
	PermissionEvaluate        Permission = "evaluation.manage"

	// Admin only
	PermissionAdminPIN Permission = "admin.pin"
)

var elevated = []Permission{
	PermissionAttendanceOwn,
	PermissionLeaveCreate,
	PermissionLearningOwn,
	PermissionTimesheetOwn,
	PermissionViewAll,
	PermissionEmployeeManage,
	PermissionInternManage,
	PermissionExport,
	PermissionTimesheetReview,
	PermissionLeaveApprove,
	PermissionEvaluate,
}

var selfService = []Permission{
	PermissionAttendanceOwn,
	PermissionLeaveCreate,
	PermissionLearningOwn,
	PermissionTimesheetOwn,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin:   append(append([]Permission{}, elevated...), PermissionAdminPIN),
	RoleManager: elevated,
	RoleStaff:   selfService,
	RoleIntern:  selfService,
	RolePublic: {
		// Public has no permissions
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// Capabilities is what a session may do, recomputed on every request.
type Capabilities struct {
	CanManageEmployees bool `json:"can_manage_employees"`
	CanManageInterns   bool `json:"can_manage_interns"`
	CanExport          bool `json:"can_export"`
	CanReview          bool `json:"can_review"`
	// SelfOnly restricts reads and writes to SelfOnlyID; with an empty id nothing is allowed
	SelfOnly   bool   `json:"self_only"`
	SelfOnlyID string `json:"self_only_id,omitempty"`
}

// Resolve maps a session to its capability set.
func Resolve(s Session) Capabilities {
	role := s.Role()
	caps := Capabilities{
		CanManageEmployees: HasPermission(role, PermissionEmployeeManage),
		CanManageInterns:   HasPermission(role, PermissionInternManage),
		CanExport:          HasPermission(role, PermissionExport),
		CanReview:          HasPermission(role, PermissionTimesheetReview),
	}
	if !HasPermission(role, PermissionViewAll) {
		caps.SelfOnly = true
		if HasPermission(role, PermissionAttendanceOwn) {
			caps.SelfOnlyID = s.EmployeeID
		}
	}
	return caps
}

// Allows reports whether employeeID is inside the scope.
func (c Capabilities) Allows(employeeID string) bool {
	if !c.SelfOnly {
		return true
	}
	return c.SelfOnlyID != "" && c.SelfOnlyID == employeeID
}

// Unrestricted is the scope of trusted internal callers such as scheduled jobs.
func Unrestricted() Capabilities {
	return Capabilities{
		CanManageEmployees: true,
		CanManageInterns:   true,
		CanExport:          true,
		CanReview:          true,
	}
}

// Filter keeps the ids inside the scope, preserving order.
func (c Capabilities) Filter(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if c.Allows(id) {
			out = append(out, id)
		}
	}
	return out
}
