package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/notification"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender posts notifications to one chat, e.g. the HR group.
type TelegramSender struct {
	bot    botAPI
	chatID int64
	types  map[notification.NotificationType]bool
}

// NewTelegramSender connects the bot. With no types every notification is posted.
func NewTelegramSender(token string, chatID int64, types ...notification.NotificationType) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	slog.Info("Telegram bot authorized", "username", bot.Self.UserName)
	return newTelegramSender(bot, chatID, types...), nil
}

func newTelegramSender(bot botAPI, chatID int64, types ...notification.NotificationType) *TelegramSender {
	s := &TelegramSender{bot: bot, chatID: chatID}
	if len(types) > 0 {
		s.types = make(map[notification.NotificationType]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
	return s
}

func (s *TelegramSender) Send(ctx context.Context, n notification.Notification) error {
	if s.types != nil && !s.types[n.Type] {
		return nil
	}

	msg := tgbotapi.NewMessage(s.chatID, fmt.Sprintf("%s\n%s", n.Title, n.Message))
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
