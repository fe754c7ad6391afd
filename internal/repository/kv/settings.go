package kv

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/auth"
)

type settingsRepositoryImpl struct {
	store *Store
}

func NewSettingsRepository(store *Store) auth.SettingsRepository {
	return &settingsRepositoryImpl{store: store}
}

// GetAdminPIN implements auth.SettingsRepository. The PIN is stored as a bare string.
func (r *settingsRepositoryImpl) GetAdminPIN(ctx context.Context) (string, error) {
	var pin string
	err := r.store.View(ctx, func(ctx context.Context) error {
		raw, ok, err := r.store.backend.Get(ctx, KeyAdminPIN)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", KeyAdminPIN, err)
		}
		pin = strings.TrimSpace(string(raw))
		if !ok || pin == "" {
			pin = auth.DefaultAdminPIN
		}
		return nil
	})
	return pin, err
}

// SetAdminPIN implements auth.SettingsRepository.
func (r *settingsRepositoryImpl) SetAdminPIN(ctx context.Context, value string) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		if err := r.store.backend.Set(ctx, KeyAdminPIN, []byte(value)); err != nil {
			return fmt.Errorf("failed to write %s: %w", KeyAdminPIN, err)
		}
		return nil
	})
}
