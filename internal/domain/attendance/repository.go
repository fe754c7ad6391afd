package attendance

import "context"

// AttendanceRepository persists the attendance ledger.
type AttendanceRepository interface {
	// GetLedger returns the whole ledger. Unreadable state yields an empty ledger.
	GetLedger(ctx context.Context) (Ledger, error)

	// GetDay returns one day of the ledger, never nil
	GetDay(ctx context.Context, dayKey string) (Day, error)

	// SaveRecord writes the record of employeeID on dayKey
	SaveRecord(ctx context.Context, dayKey string, employeeID string, record Record) error

	// DeleteByEmployeeID removes every record of the employee
	DeleteByEmployeeID(ctx context.Context, employeeID string) error
}
