package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lafrite/friterie/internal/domain/model"
)

// telegramSender is the slice of the bot API the notifier uses.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts paid-order summaries to the staff chat.
type TelegramNotifier struct {
	api    telegramSender
	chatID int64
}

// NewTelegramNotifier connects the bot with the given token.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

// OrderPaid sends the order summary to the configured chat.
func (n *TelegramNotifier) OrderPaid(ctx context.Context, order *model.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, Summary(order))
	_, err := n.api.Send(msg)
	return err
}
