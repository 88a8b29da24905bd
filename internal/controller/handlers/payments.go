package handlers

import (
	"context"
	"regexp"
	"strings"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

var (
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvcPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

// cardDraft карта из состояния диалога оплаты
func (h *Handlers) cardDraft(ctx context.Context, b *bot.Bot, update *models.Update) (*service.Card, bool) {
	telegramID := update.Message.From.ID
	card, ok := state.Draft[service.Card](h.stateManager, telegramID, state.KeyCard)
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(common.ErrDialogExpired))
		return nil, false
	}
	return card, true
}

// handlePayCardNumber обрабатывает номер карты
func (h *Handlers) handlePayCardNumber(ctx context.Context, b *bot.Bot, update *models.Update) {
	card, ok := h.cardDraft(ctx, b, update)
	if !ok {
		return
	}
	h.deleteSecret(ctx, b, update)

	number, valid := normalizeCardNumber(update.Message.Text)
	if !valid {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Número de tarjeta inválido. Inténtalo de nuevo:")
		return
	}

	card.Number = number
	h.stateManager.SetData(update.Message.From.ID, state.KeyCard, card)
	h.stateManager.SetState(update.Message.From.ID, state.StatePayCardHolder)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "👤 Nombre del titular:", nil)
}

// handlePayCardHolder обрабатывает имя владельца карты
func (h *Handlers) handlePayCardHolder(ctx context.Context, b *bot.Bot, update *models.Update) {
	card, ok := h.cardDraft(ctx, b, update)
	if !ok {
		return
	}

	holder := strings.TrimSpace(update.Message.Text)
	if holder == "" || len([]rune(holder)) > NameMaxLength*2 {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Nombre inválido. Inténtalo de nuevo:")
		return
	}

	card.Holder = holder
	h.stateManager.SetData(update.Message.From.ID, state.KeyCard, card)
	h.stateManager.SetState(update.Message.From.ID, state.StatePayCardExpiry)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "📅 Fecha de vencimiento (MM/AA):", nil)
}

// handlePayCardExpiry обрабатывает срок действия
func (h *Handlers) handlePayCardExpiry(ctx context.Context, b *bot.Bot, update *models.Update) {
	card, ok := h.cardDraft(ctx, b, update)
	if !ok {
		return
	}

	expiry := strings.TrimSpace(update.Message.Text)
	if !expiryPattern.MatchString(expiry) {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Formato inválido, usa MM/AA:")
		return
	}

	card.Expiry = expiry
	h.stateManager.SetData(update.Message.From.ID, state.KeyCard, card)
	h.stateManager.SetState(update.Message.From.ID, state.StatePayCardCVC)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "🔒 Código CVC:", nil)
}

// handlePayCardCVC обрабатывает код и показывает подтверждение
func (h *Handlers) handlePayCardCVC(ctx context.Context, b *bot.Bot, update *models.Update) {
	card, ok := h.cardDraft(ctx, b, update)
	if !ok {
		return
	}
	h.deleteSecret(ctx, b, update)

	cvc := strings.TrimSpace(update.Message.Text)
	if !cvcPattern.MatchString(cvc) {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ CVC inválido. Inténtalo de nuevo:")
		return
	}
	card.CVC = cvc
	h.stateManager.SetData(update.Message.From.ID, state.KeyCard, card)

	telegramID := update.Message.From.ID
	raw, _ := h.stateManager.GetData(telegramID, state.KeyPaymentID)
	paymentID, ok := raw.(model.ID)
	if !ok || card.Validate() != nil {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	text, kb := common.BuildCardConfirm(paymentID, card)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// normalizeCardNumber убирает пробелы и дефисы, проверяет количество цифр
func normalizeCardNumber(s string) (string, bool) {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-':
		default:
			return "", false
		}
	}

	n := sb.Len()
	if n < CardNumberMinDigits || n > CardNumberMaxDigits {
		return "", false
	}
	return sb.String(), true
}
