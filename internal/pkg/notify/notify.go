package notify

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/notification"
)

// Multi delivers to every sender and joins their errors.
type Multi []notification.Sender

func (m Multi) Send(ctx context.Context, n notification.Notification) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Send(ctx context.Context, n notification.Notification) error {
	return nil
}
