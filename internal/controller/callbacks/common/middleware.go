package common

import (
	"context"
	"errors"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/rental_bot/internal/session"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

func guard(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	check func(*HandlerContext) error,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(session.WithTelegramID(ctx, callback.From.ID), b, callback, h)

	if err := check(hc); err != nil {
		h.Logger.Warn("Access check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("data", callback.Data),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithSession создаёт HandlerContext и загружает сессию
// При ошибке автоматически отвечает пользователю
func WithSession(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	guard(ctx, b, callback, h, (*HandlerContext).LoadSession, handler)
}

// WithOwner пропускает только владельцев
func WithOwner(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	guard(ctx, b, callback, h, (*HandlerContext).RequireOwner, handler)
}

// WithStudent пропускает только студентов
func WithStudent(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	guard(ctx, b, callback, h, (*HandlerContext).RequireStudent, handler)
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю
// 401 от бэкенда сбрасывает сессию
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))

	if errors.Is(err, api.ErrUnauthorized) {
		hc.Handler.AuthService.Expire(hc.Ctx, hc.TelegramID)
		hc.ClearState()
	}
	hc.AnswerAlert(ErrorMessage(err))
}

// LogAndAnswer логирует действие и отвечает на callback
func LogAndAnswer(hc *HandlerContext, message string, answer string) {
	hc.Handler.Logger.Info(message,
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("role", hc.Role().String()))
	hc.Answer(answer)
}
