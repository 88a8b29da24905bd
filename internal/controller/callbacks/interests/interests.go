package interests

import (
	"context"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/scheduling"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Interest Requests (both roles)
// ========================

// HandleList показывает заявки пользователя, открытая карточка закрывается
func HandleList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		h.InterestService.Close(hc.TelegramID)

		reqs, err := h.InterestService.List(hc.Ctx, hc.Role())
		if err != nil {
			common.HandleError(hc, err, "list_interests")
			return
		}

		page := common.ParsePage(callback.Data, common.InterestList)
		text, kb := common.BuildInterestListScreen(hc.Role(), reqs, page)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to edit message", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleOpen открывает карточку заявки
func HandleOpen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	load(ctx, b, callback, h, common.InterestOpen, func(hc *common.HandlerContext) (*scheduling.View, error) {
		id, err := common.ParseID(callback.Data, common.InterestOpen)
		if err != nil {
			return nil, err
		}
		hc.ClearState()
		return h.InterestService.Open(hc.Ctx, hc.TelegramID, id)
	})
}

// HandleRefresh перечитывает заявку с бэкенда
func HandleRefresh(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	load(ctx, b, callback, h, common.InterestRefresh, func(hc *common.HandlerContext) (*scheduling.View, error) {
		id, err := common.ParseID(callback.Data, common.InterestRefresh)
		if err != nil {
			return nil, err
		}
		return h.InterestService.Refresh(hc.Ctx, hc.TelegramID, id)
	})
}

func load(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	operation string,
	fetch func(*common.HandlerContext) (*scheduling.View, error),
) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		view, err := fetch(hc)
		if err != nil {
			common.HandleError(hc, err, operation)
			return
		}

		if err := ShowCard(hc, view); err != nil {
			h.Logger.Error("Failed to show interest card",
				zap.String("interest_id", view.ID().String()),
				zap.Error(err))
		}
		hc.Answer("")
	})
}

// ShowCard перерисовывает сообщение карточкой заявки
func ShowCard(hc *common.HandlerContext, view *scheduling.View) error {
	text, kb := common.BuildInterestCard(hc.Role(), view, hc.Handler.Location)
	return hc.EditMessage(text, kb)
}
