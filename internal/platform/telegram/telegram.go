package telegram

import (
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrDisabled = errors.New("telegram delivery disabled")

// Notifier wraps a bot for direct-message delivery. With an empty token the
// notifier is inert and every Send returns ErrDisabled.
type Notifier struct {
	bot *tgbotapi.BotAPI
}

func New(token string) (*Notifier, error) {
	if token == "" {
		return &Notifier{}, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Notifier{bot: bot}, nil
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.bot != nil
}

func (n *Notifier) Send(chatID int64, text string) error {
	if !n.Enabled() {
		return ErrDisabled
	}
	if chatID == 0 {
		return errors.New("telegram chat id not set")
	}
	_, err := n.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
