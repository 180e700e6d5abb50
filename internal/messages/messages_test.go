package messages

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func TestReplyMarkup(t *testing.T) {
	_, ok := replyMarkup(nil)
	assert.False(t, ok)

	_, ok = replyMarkup(Keyboard{{}, {}})
	assert.False(t, ok)

	markup, ok := replyMarkup(Keyboard{{"a", "b"}, {}, {"c"}})
	require.True(t, ok)
	assert.True(t, markup.ResizeKeyboard)
	require.Len(t, markup.Keyboard, 2)
	assert.Equal(t, "a", markup.Keyboard[0][0].Text)
	assert.Equal(t, "b", markup.Keyboard[0][1].Text)
	assert.Equal(t, "c", markup.Keyboard[1][0].Text)
}

func TestTelegramSend(t *testing.T) {
	bot := &fakeBot{}
	tg := NewTelegram(bot)

	require.NoError(t, tg.Send(context.Background(), 42, "*привет*", Keyboard{{"ok"}}))
	require.Len(t, bot.sent, 1)

	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "*привет*", msg.Text)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	assert.IsType(t, tgbotapi.ReplyKeyboardMarkup{}, msg.ReplyMarkup)

	require.NoError(t, tg.Send(context.Background(), 42, "без клавиатуры", nil))
	msg = bot.sent[1].(tgbotapi.MessageConfig)
	assert.Nil(t, msg.ReplyMarkup)
}

func TestTelegramSendErrors(t *testing.T) {
	bot := &fakeBot{err: errors.New("blocked")}
	tg := NewTelegram(bot)

	err := tg.Send(context.Background(), 7, "x", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, bot.err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewTelegram(&fakeBot{}).Send(ctx, 7, "x", nil), context.Canceled)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\_b\*c`, Escape("a_b*c"))
}
