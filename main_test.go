package main

import (
	"context"
	"testing"

	"focus-campus-bot/internal/handlers"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInbound(t *testing.T) {
	cmd := &tgbotapi.Message{
		Text:     "/Start@focus_bot",
		Chat:     &tgbotapi.Chat{ID: 5},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 16}},
	}
	assert.Equal(t, "start", inbound(cmd).Command)
	assert.Equal(t, int64(5), inbound(cmd).UserID)

	text := &tgbotapi.Message{Text: "сдать лабу до 15.03", Chat: &tgbotapi.Chat{ID: 5}}
	in := inbound(text)
	assert.Empty(t, in.Command)
	assert.Equal(t, "сдать лабу до 15.03", in.Text)
}

func TestListen(t *testing.T) {
	var got []handlers.Inbound
	handle := func(_ context.Context, in handlers.Inbound) { got = append(got, in) }

	updates := make(chan tgbotapi.Update, 3)
	updates <- tgbotapi.Update{}
	updates <- tgbotapi.Update{Message: &tgbotapi.Message{Text: "привет", Chat: &tgbotapi.Chat{ID: 9}}}
	close(updates)

	err := listen(context.Background(), updates, handle)
	require.Error(t, err, "closed channel while running")
	require.Len(t, got, 1)
	assert.Equal(t, int64(9), got[0].UserID)

	// shutdown: context canceled and the channel closed at the same time
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 50; i++ {
		closed := make(chan tgbotapi.Update)
		close(closed)
		assert.NoError(t, listen(ctx, closed, handle))
	}
}
