package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// postDraft черновик объявления из состояния диалога
func (h *Handlers) postDraft(ctx context.Context, b *bot.Bot, update *models.Update) (*api.PostInput, bool) {
	telegramID := update.Message.From.ID
	in, ok := state.Draft[api.PostInput](h.stateManager, telegramID, state.KeyPost)
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(common.ErrDialogExpired))
		return nil, false
	}
	return in, true
}

// handleNewPostTitle обрабатывает заголовок объявления
func (h *Handlers) handleNewPostTitle(ctx context.Context, b *bot.Bot, update *models.Update) {
	in, ok := h.postDraft(ctx, b, update)
	if !ok {
		return
	}

	title := strings.TrimSpace(update.Message.Text)
	n := len([]rune(title))
	if n < service.PostTitleMinLength || n > service.PostTitleMaxLength {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ El título debe tener entre 5 y 120 caracteres. Inténtalo de nuevo:")
		return
	}

	in.Title = title
	h.stateManager.SetData(update.Message.From.ID, state.KeyPost, in)
	h.stateManager.SetState(update.Message.From.ID, state.StateNewPostPrice)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "💰 Escribe el precio mensual:", nil)
}

// handleNewPostPrice обрабатывает цену
func (h *Handlers) handleNewPostPrice(ctx context.Context, b *bot.Bot, update *models.Update) {
	in, ok := h.postDraft(ctx, b, update)
	if !ok {
		return
	}

	price, err := parseAmount(update.Message.Text)
	if err != nil || price <= 0 || price > PostMaxPrice {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Precio inválido. Escribe un número positivo:")
		return
	}

	in.Price = price
	h.stateManager.SetData(update.Message.From.ID, state.KeyPost, in)
	h.stateManager.SetState(update.Message.From.ID, state.StateNewPostDeposit)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "🔐 Escribe el depósito (0 si no hay):", nil)
}

// handleNewPostDeposit обрабатывает залог
func (h *Handlers) handleNewPostDeposit(ctx context.Context, b *bot.Bot, update *models.Update) {
	in, ok := h.postDraft(ctx, b, update)
	if !ok {
		return
	}

	deposit, err := parseAmount(update.Message.Text)
	if err != nil || deposit < 0 || deposit > PostMaxPrice {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Depósito inválido. Escribe un número (0 si no hay):")
		return
	}

	in.SecurityDeposit = deposit
	h.stateManager.SetData(update.Message.From.ID, state.KeyPost, in)
	h.stateManager.SetState(update.Message.From.ID, state.StateNewPostMinTerm)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "📆 Plazo mínimo de alquiler (por ejemplo «3 meses», «-» si no hay):", nil)
}

// handleNewPostMinTerm обрабатывает минимальный срок аренды
func (h *Handlers) handleNewPostMinTerm(ctx context.Context, b *bot.Bot, update *models.Update) {
	in, ok := h.postDraft(ctx, b, update)
	if !ok {
		return
	}

	term, ok := h.readLeaseTerm(ctx, b, update)
	if !ok {
		return
	}

	in.MinimumLeaseTerm = term
	h.stateManager.SetData(update.Message.From.ID, state.KeyPost, in)
	h.stateManager.SetState(update.Message.From.ID, state.StateNewPostMaxTerm)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "📆 Plazo máximo de alquiler («-» si no hay):", nil)
}

// handleNewPostMaxTerm обрабатывает максимальный срок и переходит к фото
func (h *Handlers) handleNewPostMaxTerm(ctx context.Context, b *bot.Bot, update *models.Update) {
	in, ok := h.postDraft(ctx, b, update)
	if !ok {
		return
	}

	term, ok := h.readLeaseTerm(ctx, b, update)
	if !ok {
		return
	}

	in.MaximumLeaseTerm = term
	h.stateManager.SetData(update.Message.From.ID, state.KeyPost, in)
	h.stateManager.SetState(update.Message.From.ID, state.StateNewPostImages)
	text, kb := common.BuildImagesPrompt(0)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

func (h *Handlers) readLeaseTerm(ctx context.Context, b *bot.Bot, update *models.Update) (string, bool) {
	term, err := parseLeaseTerm(strings.TrimSpace(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Texto demasiado largo. Inténtalo de nuevo:")
		return "", false
	}
	return term, true
}
