package learning

// Log is an intern's learning journal entry. CreatedAt is epoch milliseconds.
type Log struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employeeId"`
	Date        string `json:"date"`
	Content     string `json:"content"`
	Comment     string `json:"comment,omitempty"`
	CommentedBy string `json:"commentedBy,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}
