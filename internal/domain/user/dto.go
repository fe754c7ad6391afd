package user

// SessionResponse represents the caller in API responses
type SessionResponse struct {
	Kind         string       `json:"kind"`
	Role         string       `json:"role"`
	EmployeeID   string       `json:"employee_id,omitempty"`
	Name         string       `json:"name,omitempty"`
	Capabilities Capabilities `json:"capabilities"`
}

func NewSessionResponse(s Session) SessionResponse {
	return SessionResponse{
		Kind:         string(s.Kind),
		Role:         string(s.Role()),
		EmployeeID:   s.EmployeeID,
		Name:         s.Name,
		Capabilities: Resolve(s),
	}
}
