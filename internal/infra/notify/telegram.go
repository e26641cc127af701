// Package notify sends a direct Telegram message to a booking's host
// when a booking.confirmed, booking.canceled or booking.refund_requested
// event arrives, grounded on Roadtogolangdev-carwash-botv1's
// internal/bot/bot.go: one *tgbotapi.BotAPI, Send called directly with
// no queue or retry of its own.
package notify

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends text to a Telegram chat.
type Notifier interface {
	Notify(chatID int64, text string) error
}

// Telegram is a Notifier backed by a single bot token.
type Telegram struct {
	botAPI *tgbotapi.BotAPI
}

// NewTelegram builds a Telegram notifier from a bot token.
func NewTelegram(botToken string) (*Telegram, error) {
	botAPI, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Telegram{botAPI: botAPI}, nil
}

// Notify sends text to chatID. A failed send is the caller's to log;
// it never rolls back the booking transition that triggered it.
func (t *Telegram) Notify(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := t.botAPI.Send(msg)
	return err
}

// Noop discards every notification.
type Noop struct{}

// Notify does nothing and never fails.
func (Noop) Notify(chatID int64, text string) error {
	return nil
}
