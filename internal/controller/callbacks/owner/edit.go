package owner

import (
	"context"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Edit Room / Post fields
// ========================

// HandleRoomEditMenu выбор поля комнаты
func HandleRoomEditMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.MyRoomEditMenu)
		if err != nil {
			common.HandleError(hc, err, "room_edit_menu")
			return
		}

		text, kb := common.BuildRoomEditMenu(id)
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandleRoomEditField ждёт новое значение поля текстом
func HandleRoomEditField(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseArgs(callback.Data, common.MyRoomEdit, 2)
		if err != nil {
			common.HandleError(hc, err, "room_edit_field")
			return
		}
		id := model.ID(args[0])

		text, kb, ok := common.BuildRoomFieldPrompt(id, args[1])
		if !ok {
			common.HandleError(hc, common.ErrInvalidFormat, "room_edit_field")
			return
		}

		startEdit(hc, state.StateEditRoomField, id, args[1])
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandleRoomEditStop отменяет правку и возвращает карточку комнаты
func HandleRoomEditStop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()

		id, err := common.ParseID(callback.Data, common.MyRoomEditStop)
		if err != nil {
			common.HandleError(hc, err, "room_edit_stop")
			return
		}
		room, err := h.RoomService.Get(hc.Ctx, id)
		if err != nil {
			common.HandleError(hc, err, "room_edit_stop")
			return
		}

		text, kb := common.BuildMyRoomScreen(room)
		hc.EditMessage(text, kb)
		hc.Answer("❌ Cancelado")
	})
}

// HandlePostEditMenu выбор поля объявления
func HandlePostEditMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.MyPostEditMenu)
		if err != nil {
			common.HandleError(hc, err, "post_edit_menu")
			return
		}

		text, kb := common.BuildPostEditMenu(id)
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandlePostEditField ждёт новое значение поля объявления
func HandlePostEditField(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseArgs(callback.Data, common.MyPostEdit, 2)
		if err != nil {
			common.HandleError(hc, err, "post_edit_field")
			return
		}
		id := model.ID(args[0])

		text, kb, ok := common.BuildPostFieldPrompt(id, args[1])
		if !ok {
			common.HandleError(hc, common.ErrInvalidFormat, "post_edit_field")
			return
		}

		startEdit(hc, state.StateEditPostField, id, args[1])
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandlePostEditStop отменяет правку и возвращает карточку объявления
func HandlePostEditStop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()

		id, err := common.ParseID(callback.Data, common.MyPostEditStop)
		if err != nil {
			common.HandleError(hc, err, "post_edit_stop")
			return
		}
		post, err := h.PostService.Get(hc.Ctx, id)
		if err != nil {
			common.HandleError(hc, err, "post_edit_stop")
			return
		}

		text, kb := common.BuildMyPostScreen(post)
		hc.EditMessage(text, kb)
		hc.Answer("❌ Cancelado")
	})
}

func startEdit(hc *common.HandlerContext, st state.UserState, id model.ID, field string) {
	hc.StartState(st)
	hc.SetData(state.KeyEditID, id)
	hc.SetData(state.KeyEditField, field)
}
