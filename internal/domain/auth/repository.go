package auth

import "context"

// DefaultAdminPIN is used until the admin PIN is changed.
const DefaultAdminPIN = "1234"

// SettingsRepository stores the admin PIN.
type SettingsRepository interface {
	// GetAdminPIN returns the stored PIN value, DefaultAdminPIN when unset
	GetAdminPIN(ctx context.Context) (string, error)
	SetAdminPIN(ctx context.Context, value string) error
}

// CredentialStore answers PIN checks. It never reveals stored values.
type CredentialStore interface {
	MatchAdminPIN(ctx context.Context, pin string) (bool, error)
	MatchEmployeePIN(ctx context.Context, employeeID string, pin string) (bool, error)
	// HashPIN prepares a PIN for storage
	HashPIN(pin string) (string, error)
}
