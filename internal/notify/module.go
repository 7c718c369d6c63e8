package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/lafrite/friterie/internal/config"
	"github.com/lafrite/friterie/internal/server/ws"
)

// Module assembles the notification fan-out. Telegram joins only when a bot
// token is configured; the admin feed is always wired.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Hub    *ws.Hub
}

func newNotifier(p notifierParams) (Notifier, error) {
	notifiers := []Notifier{NewFeedNotifier(p.Hub)}

	if p.Config.TelegramBotToken != "" {
		tg, err := NewTelegramNotifier(p.Config.TelegramBotToken, p.Config.TelegramChatID)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, tg)
	}

	return NewFanOut(p.Logger, notifiers...), nil
}
