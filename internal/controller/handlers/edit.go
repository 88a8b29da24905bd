package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

var errInvalidValue = errors.New("invalid field value")

// handleEditRoomField сохраняет новое значение поля комнаты
func (h *Handlers) handleEditRoomField(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	sess, id, field, ok := h.editTarget(ctx, b, update)
	if !ok {
		return
	}

	edit, err := roomFieldEdit(field, update.Message.Text)
	if errors.Is(err, errInvalidValue) {
		h.sendError(ctx, b, chatID, "❌ Valor inválido. Inténtalo de nuevo:")
		return
	}
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	room, err := h.roomService.Edit(ctx, sess.Role, id, edit)
	if errors.Is(err, service.ErrInvalidRoom) {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	if err != nil {
		h.logger.Error("Failed to update room",
			zap.Int64("telegram_id", telegramID),
			zap.String("room_id", id.String()),
			zap.String("field", field),
			zap.Error(err))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(telegramID)
	text, kb := common.BuildMyRoomScreen(room)
	h.sendMessage(ctx, b, chatID, "✅ <b>Habitación actualizada</b>\n\n"+text, kb)
}

// handleEditPostField сохраняет новое значение поля объявления
func (h *Handlers) handleEditPostField(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	sess, id, field, ok := h.editTarget(ctx, b, update)
	if !ok {
		return
	}

	edit, err := postFieldEdit(field, update.Message.Text)
	if errors.Is(err, errInvalidValue) {
		h.sendError(ctx, b, chatID, "❌ Valor inválido. Inténtalo de nuevo:")
		return
	}
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	post, err := h.postService.Edit(ctx, sess.Role, id, edit)
	if errors.Is(err, service.ErrInvalidPost) {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}
	if err != nil {
		h.logger.Error("Failed to update post",
			zap.Int64("telegram_id", telegramID),
			zap.String("post_id", id.String()),
			zap.String("field", field),
			zap.Error(err))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	h.stateManager.ClearState(telegramID)
	text, kb := common.BuildMyPostScreen(post)
	h.sendMessage(ctx, b, chatID, "✅ <b>Anuncio actualizado</b>\n\n"+text, kb)
}

// editTarget сессия владельца и поле, выбранное кнопкой
func (h *Handlers) editTarget(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Session, model.ID, string, bool) {
	telegramID := update.Message.From.ID

	sess, ok := h.requireOwner(ctx, b, update)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return nil, "", "", false
	}

	raw, _ := h.stateManager.GetData(telegramID, state.KeyEditID)
	id, isID := raw.(model.ID)
	field := h.stateManager.GetString(telegramID, state.KeyEditField)
	if !isID || id.IsZero() || field == "" {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(common.ErrDialogExpired))
		return nil, "", "", false
	}
	return sess, id, field, true
}

// roomFieldEdit разбирает новое значение поля комнаты
func roomFieldEdit(field, text string) (func(*model.Room), error) {
	text = strings.TrimSpace(text)

	switch field {
	case common.RoomFieldDescription:
		if len([]rune(text)) < service.RoomDescriptionMinLength {
			return nil, errInvalidValue
		}
		return func(r *model.Room) { r.Description = text }, nil
	case common.RoomFieldAddress:
		if len([]rune(text)) < service.RoomAddressMinLength {
			return nil, errInvalidValue
		}
		return func(r *model.Room) { r.Address = text }, nil
	case common.RoomFieldArea:
		area, err := parseAmount(text)
		if err != nil || area <= 0 || area > service.RoomMaxSquareFootage {
			return nil, errInvalidValue
		}
		return func(r *model.Room) { r.SquareFootage = area }, nil
	case common.RoomFieldAmenities:
		amenities := parseList(text)
		return func(r *model.Room) { r.Amenities = amenities }, nil
	default:
		return nil, common.ErrInvalidFormat
	}
}

// postFieldEdit разбирает новое значение поля объявления
func postFieldEdit(field, text string) (func(*api.PostInput), error) {
	text = strings.TrimSpace(text)

	switch field {
	case common.PostFieldTitle:
		n := len([]rune(text))
		if n < service.PostTitleMinLength || n > service.PostTitleMaxLength {
			return nil, errInvalidValue
		}
		return func(in *api.PostInput) { in.Title = text }, nil
	case common.PostFieldPrice:
		price, err := parseAmount(text)
		if err != nil || price <= 0 || price > PostMaxPrice {
			return nil, errInvalidValue
		}
		return func(in *api.PostInput) { in.Price = price }, nil
	case common.PostFieldDeposit:
		deposit, err := parseAmount(text)
		if err != nil || deposit < 0 || deposit > PostMaxPrice {
			return nil, errInvalidValue
		}
		return func(in *api.PostInput) { in.SecurityDeposit = deposit }, nil
	case common.PostFieldMinTerm, common.PostFieldMaxTerm:
		term, err := parseLeaseTerm(text)
		if err != nil {
			return nil, err
		}
		if field == common.PostFieldMinTerm {
			return func(in *api.PostInput) { in.MinimumLeaseTerm = term }, nil
		}
		return func(in *api.PostInput) { in.MaximumLeaseTerm = term }, nil
	default:
		return nil, common.ErrInvalidFormat
	}
}

// parseLeaseTerm срок аренды свободным текстом, "-" означает пустое значение
func parseLeaseTerm(text string) (string, error) {
	if text == "-" {
		return "", nil
	}
	if len([]rune(text)) > LeaseTermMaxLen {
		return "", errInvalidValue
	}
	return text, nil
}
