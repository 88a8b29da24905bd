package controller

import (
	"context"
	"testing"

	"github.com/Freeeeeet/rental_bot/internal/session"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func messageUpdate(from int64) *models.Update {
	return &models.Update{Message: &models.Message{
		From: &models.User{ID: from},
		Chat: models.Chat{ID: from},
		Text: "hola",
	}}
}

func TestIdentity_PutsSenderIntoContext(t *testing.T) {
	var got int64
	var ok bool
	handler := Identity(func(ctx context.Context, _ *bot.Bot, _ *models.Update) {
		got, ok = session.TelegramIDFrom(ctx)
	})

	handler(context.Background(), nil, messageUpdate(42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), got)

	handler(context.Background(), nil, &models.Update{
		CallbackQuery: &models.CallbackQuery{From: models.User{ID: 7}},
	})
	assert.True(t, ok)
	assert.Equal(t, int64(7), got)
}

func TestIdentity_NoSender(t *testing.T) {
	called := false
	handler := Identity(func(ctx context.Context, _ *bot.Bot, _ *models.Update) {
		called = true
		_, ok := session.TelegramIDFrom(ctx)
		assert.False(t, ok)
	})

	handler(context.Background(), nil, &models.Update{})
	assert.True(t, called)
}

func TestRateLimit_DropsBurstOverflowPerUser(t *testing.T) {
	calls := map[int64]int{}
	mw := RateLimit(0.001, 2, zap.NewNop())
	handler := mw(func(_ context.Context, _ *bot.Bot, u *models.Update) {
		calls[u.Message.From.ID]++
	})

	for i := 0; i < 5; i++ {
		handler(context.Background(), nil, messageUpdate(1))
	}
	handler(context.Background(), nil, messageUpdate(2))

	assert.Equal(t, 2, calls[1])
	assert.Equal(t, 1, calls[2])
}

func TestUpdateMatchers(t *testing.T) {
	photo := &models.Update{Message: &models.Message{Photo: []models.PhotoSize{{FileID: "f"}}}}
	assert.True(t, isPhoto(photo))
	assert.False(t, isDialogText(photo))

	assert.True(t, isDialogText(messageUpdate(1)))
	assert.False(t, isPhoto(messageUpdate(1)))

	cmd := messageUpdate(1)
	cmd.Message.Text = "/start"
	assert.False(t, isDialogText(cmd))
}
