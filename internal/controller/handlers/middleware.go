package handlers

import (
	"context"
	"errors"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireSession проверяет что пользователь вошёл
// Возвращает сессию и true если OK, nil и false если нет
func (h *Handlers) requireSession(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	sess, ok := h.authService.Session(update.Message.From.ID)
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(common.ErrNoSession))
		return nil, false
	}

	return sess, true
}

// requireOwner проверяет что пользователь владелец
func (h *Handlers) requireOwner(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, bool) {
	sess, ok := h.requireSession(ctx, b, update)
	if !ok {
		return nil, false
	}

	if sess.Role != model.RoleOwner {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(service.ErrOwnerOnly))
		return nil, false
	}

	return sess, true
}

// handleError логирует ошибку и сообщает о ней пользователю; 401 сбрасывает сессию
func (h *Handlers) handleError(ctx context.Context, b *bot.Bot, update *models.Update, err error, operation string) {
	telegramID := update.Message.From.ID
	h.logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", telegramID),
		zap.Error(err))

	if errors.Is(err, api.ErrUnauthorized) {
		h.authService.Expire(ctx, telegramID)
		h.stateManager.ClearState(telegramID)
	}
	h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет HTML сообщение с клавиатурой и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
