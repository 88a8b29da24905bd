package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/scheduling"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleProposalMessage сохраняет сообщение к предложению и показывает итог
func (h *Handlers) handleProposalMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	p, ok := state.Draft[scheduling.Proposal](h.stateManager, telegramID, state.KeyProposal)
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrDialogExpired))
		return
	}

	msg := strings.TrimSpace(update.Message.Text)
	if len([]rune(msg)) > ProposalMessageMaxLength {
		h.sendError(ctx, b, chatID, "❌ El mensaje es demasiado largo (máximo 500 caracteres). Inténtalo de nuevo:")
		return
	}

	p.Message = msg
	h.stateManager.SetData(telegramID, state.KeyProposal, p)
	h.stateManager.SetState(telegramID, state.StateProposal)
	text, kb := common.BuildProposalPreview(p, h.location)
	h.sendMessage(ctx, b, chatID, text, kb)
}
