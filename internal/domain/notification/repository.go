package notification

import "context"

// Sender delivers notifications to an external channel such as a chat bot.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}
