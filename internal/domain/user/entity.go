package user

import "github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"

// Role is the access role of the caller, derived from its session.
type Role string

const (
	RolePublic  Role = "public"  // No session
	RoleAdmin   Role = "admin"   // Logged in with the admin PIN
	RoleManager Role = "manager" // Employee with role Manager or Supervisor
	RoleStaff   Role = "staff"   // Any other non-intern employee
	RoleIntern  Role = "intern"  // Employee with role Intern
)

type SessionKind string

const (
	SessionPublic   SessionKind = "public"
	SessionAdmin    SessionKind = "admin"
	SessionEmployee SessionKind = "employee"
)

// Session is the authenticated caller: public, admin, or one employee with its resolved role.
type Session struct {
	Kind         SessionKind   `json:"kind"`
	EmployeeID   string        `json:"employee_id,omitempty"`
	EmployeeRole employee.Role `json:"employee_role,omitempty"`
	Name         string        `json:"name,omitempty"`
}

func PublicSession() Session {
	return Session{Kind: SessionPublic}
}

func AdminSession() Session {
	return Session{Kind: SessionAdmin, Name: "Admin"}
}

func EmployeeSession(e employee.Employee) Session {
	return Session{
		Kind:         SessionEmployee,
		EmployeeID:   e.ID,
		EmployeeRole: e.Role,
		Name:         e.Name,
	}
}

// Role maps the session to its access role.
func (s Session) Role() Role {
	switch s.Kind {
	case SessionAdmin:
		return RoleAdmin
	case SessionEmployee:
		if s.EmployeeID == "" {
			return RolePublic
		}
		switch s.EmployeeRole {
		case employee.RoleManager, employee.RoleSupervisor:
			return RoleManager
		case employee.RoleIntern:
			return RoleIntern
		default:
			return RoleStaff
		}
	default:
		return RolePublic
	}
}

// IsAdmin checks if the caller logged in with the admin PIN
func (s Session) IsAdmin() bool {
	return s.Role() == RoleAdmin
}

// IsManager checks if the caller is admin, manager or supervisor
func (s Session) IsManager() bool {
	role := s.Role()
	return role == RoleAdmin || role == RoleManager
}

// ReviewerName is recorded on approvals made by this session.
func (s Session) ReviewerName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.IsAdmin() {
		return "Admin"
	}
	return s.EmployeeID
}
