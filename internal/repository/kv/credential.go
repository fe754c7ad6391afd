package kv

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"golang.org/x/crypto/bcrypt"
)

type credentialStoreImpl struct {
	employees employee.EmployeeRepository
	settings  auth.SettingsRepository
}

func NewCredentialStore(employees employee.EmployeeRepository, settings auth.SettingsRepository) auth.CredentialStore {
	return &credentialStoreImpl{employees: employees, settings: settings}
}

// MatchAdminPIN implements auth.CredentialStore.
func (c *credentialStoreImpl) MatchAdminPIN(ctx context.Context, pin string) (bool, error) {
	stored, err := c.settings.GetAdminPIN(ctx)
	if err != nil {
		return false, err
	}
	return matchPIN(stored, pin), nil
}

// MatchEmployeePIN implements auth.CredentialStore.
func (c *credentialStoreImpl) MatchEmployeePIN(ctx context.Context, employeeID string, pin string) (bool, error) {
	e, err := c.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return false, nil
		}
		return false, err
	}
	if e.PIN == "" {
		return false, nil
	}
	return matchPIN(e.PIN, pin), nil
}

// HashPIN implements auth.CredentialStore.
func (c *credentialStoreImpl) HashPIN(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	return string(hashed), nil
}

// matchPIN compares against a bcrypt hash, or by equality for values saved in plain text.
func matchPIN(stored, pin string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pin)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(pin)) == 1
}
