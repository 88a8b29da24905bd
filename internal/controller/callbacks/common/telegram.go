package common

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// answerCallback закрывает индикатор загрузки на кнопке
func answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string, alert bool) {
	_, _ = b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
}

// AnswerCallback короткое уведомление вверху чата
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	answerCallback(ctx, b, callbackID, text, false)
}

// AnswerCallbackAlert всплывающее окно с кнопкой OK
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	answerCallback(ctx, b, callbackID, text, true)
}

// GetMessageFromCallback сообщение с кнопкой; nil если оно недоступно боту
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	return callback.Message.Message
}

// IsMessageNotModifiedError Telegram отказал в редактировании, текст и клавиатура не изменились
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
