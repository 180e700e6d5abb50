// Package messages delivers outbound text with an optional reply keyboard.
package messages

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Keyboard is a grid of reply-button labels, one slice per row.
type Keyboard [][]string

// Sender delivers one message to a user. A nil keyboard leaves the
// current one untouched.
type Sender interface {
	Send(ctx context.Context, userID int64, text string, kb Keyboard) error
}

// Escape makes user-supplied text safe inside a Markdown message.
func Escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// botAPI is the part of *tgbotapi.BotAPI used for delivery.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends messages through the Bot API. The user id is the chat id.
type Telegram struct {
	bot botAPI
}

func NewTelegram(bot botAPI) *Telegram {
	return &Telegram{bot: bot}
}

func (t *Telegram) Send(ctx context.Context, userID int64, text string, kb Keyboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if markup, ok := replyMarkup(kb); ok {
		msg.ReplyMarkup = markup
	}

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message to %d: %w", userID, err)
	}
	return nil
}

func replyMarkup(kb Keyboard) (tgbotapi.ReplyKeyboardMarkup, bool) {
	if len(kb) == 0 {
		return tgbotapi.ReplyKeyboardMarkup{}, false
	}

	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb))
	for _, labels := range kb {
		if len(labels) == 0 {
			continue
		}
		row := make([]tgbotapi.KeyboardButton, 0, len(labels))
		for _, l := range labels {
			row = append(row, tgbotapi.NewKeyboardButton(l))
		}
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(row...))
	}
	if len(rows) == 0 {
		return tgbotapi.ReplyKeyboardMarkup{}, false
	}

	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup, true
}
