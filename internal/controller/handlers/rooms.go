package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// roomDraft черновик комнаты из состояния диалога
func (h *Handlers) roomDraft(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Room, bool) {
	telegramID := update.Message.From.ID
	room, ok := state.Draft[model.Room](h.stateManager, telegramID, state.KeyRoom)
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(common.ErrDialogExpired))
		return nil, false
	}
	return room, true
}

// handleNewRoomDescription обрабатывает описание комнаты
func (h *Handlers) handleNewRoomDescription(ctx context.Context, b *bot.Bot, update *models.Update) {
	room, ok := h.roomDraft(ctx, b, update)
	if !ok {
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	if len([]rune(text)) < service.RoomDescriptionMinLength {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ La descripción es muy corta (mínimo 10 caracteres). Inténtalo de nuevo:")
		return
	}

	room.Description = text
	h.stateManager.SetData(update.Message.From.ID, state.KeyRoom, room)
	h.stateManager.SetState(update.Message.From.ID, state.StateNewRoomAddress)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "📍 Escribe la dirección:", nil)
}

// handleNewRoomAddress обрабатывает адрес комнаты
func (h *Handlers) handleNewRoomAddress(ctx context.Context, b *bot.Bot, update *models.Update) {
	room, ok := h.roomDraft(ctx, b, update)
	if !ok {
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	if len([]rune(text)) < service.RoomAddressMinLength {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ La dirección es muy corta. Inténtalo de nuevo:")
		return
	}

	room.Address = text
	h.stateManager.SetData(update.Message.From.ID, state.KeyRoom, room)
	h.stateManager.SetState(update.Message.From.ID, state.StateNewRoomArea)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "📐 Escribe la superficie en m² (por ejemplo 12.5):", nil)
}

// handleNewRoomArea обрабатывает площадь и переходит к выбору кнопками
func (h *Handlers) handleNewRoomArea(ctx context.Context, b *bot.Bot, update *models.Update) {
	room, ok := h.roomDraft(ctx, b, update)
	if !ok {
		return
	}

	area, err := parseAmount(update.Message.Text)
	if err != nil || area <= 0 || area > service.RoomMaxSquareFootage {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Superficie inválida. Escribe un número, por ejemplo 12.5:")
		return
	}

	room.SquareFootage = area
	h.stateManager.SetData(update.Message.From.ID, state.KeyRoom, room)
	h.stateManager.SetState(update.Message.From.ID, state.StateNewRoomChoices)
	text, kb := common.BuildBathroomChoice()
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// handleNewRoomAmenities обрабатывает список удобств и показывает итог
func (h *Handlers) handleNewRoomAmenities(ctx context.Context, b *bot.Bot, update *models.Update) {
	room, ok := h.roomDraft(ctx, b, update)
	if !ok {
		return
	}

	room.Amenities = parseList(update.Message.Text)
	h.stateManager.SetData(update.Message.From.ID, state.KeyRoom, room)
	text, kb := common.BuildNewRoomPreview(room)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// parseAmount разбирает число, допускает запятую как разделитель
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

// parseList разбирает список через запятую; "-" означает пустой список
func parseList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}

	var items []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
