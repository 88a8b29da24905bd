package owner

import (
	"context"
	"strconv"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Owner Rooms
// ========================

// HandleMyRooms список комнат владельца
func HandleMyRooms(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		rooms, err := h.RoomService.Mine(hc.Ctx, hc.Role())
		if err != nil {
			common.HandleError(hc, err, "my_rooms")
			return
		}

		page := common.ParsePage(callback.Data, common.MyRoomList)
		text, kb := common.BuildRoomListScreen("🛏 <b>Mis habitaciones</b>", rooms, page, common.MyRoomList, common.MyRoomView)
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandleMyRoom карточка комнаты владельца
func HandleMyRoom(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.MyRoomView)
		if err != nil {
			common.HandleError(hc, err, "my_room")
			return
		}

		room, err := h.RoomService.Get(hc.Ctx, id)
		if err != nil {
			common.HandleError(hc, err, "my_room")
			return
		}

		text, kb := common.BuildMyRoomScreen(room)
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandleToggleRoom переключает доступность комнаты
func HandleToggleRoom(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.MyRoomToggle)
		if err != nil {
			common.HandleError(hc, err, "toggle_room")
			return
		}

		room, err := h.RoomService.ToggleAvailability(hc.Ctx, hc.Role(), id)
		if err != nil {
			common.HandleError(hc, err, "toggle_room")
			return
		}

		text, kb := common.BuildMyRoomScreen(room)
		hc.EditMessage(text, kb)
		common.LogAndAnswer(hc, "Room availability toggled", "✅ Actualizado")
	})
}

// HandleDeleteRoom спрашивает подтверждение удаления
func HandleDeleteRoom(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.MyRoomDelete)
		if err != nil {
			common.HandleError(hc, err, "delete_room")
			return
		}

		kb := keyboard.NewBuilder().
			Row(keyboard.ConfirmCancelRow(common.MyRoomDeleteOK+string(id), common.MyRoomView+string(id))...).
			Build()
		hc.EditMessage("🗑 <b>¿Eliminar la habitación?</b>\n\nEsta acción no se puede deshacer.", kb)
		hc.Answer("")
	})
}

// HandleDeleteRoomConfirm удаляет комнату
func HandleDeleteRoomConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.MyRoomDeleteOK)
		if err != nil {
			common.HandleError(hc, err, "delete_room_confirm")
			return
		}

		if err := h.RoomService.Delete(hc.Ctx, hc.Role(), id); err != nil {
			common.HandleError(hc, err, "delete_room_confirm")
			return
		}

		kb := keyboard.NewBuilder().
			AddBackButton(common.MyRoomList + "0").
			Build()
		hc.EditMessage("✅ Habitación eliminada", kb)
		hc.Answer("🗑 Eliminada")
	})
}

// ========================
// New Room Dialog (button steps)
// ========================

// HandleNewRoomBathroom выбор санузла
func HandleNewRoomBathroom(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withRoomDraft(ctx, b, callback, h, func(hc *common.HandlerContext, room *model.Room) {
		idx, err := parseIndex(callback.Data, common.NewRoomBath, len(model.BathroomTypes))
		if err != nil {
			common.HandleError(hc, err, "new_room_bathroom")
			return
		}

		room.BathroomType = model.BathroomTypes[idx]
		hc.SetData(state.KeyRoom, room)
		text, kb := common.BuildKitchenChoice()
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandleNewRoomKitchen выбор кухни
func HandleNewRoomKitchen(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withRoomDraft(ctx, b, callback, h, func(hc *common.HandlerContext, room *model.Room) {
		idx, err := parseIndex(callback.Data, common.NewRoomKitchen, len(model.KitchenTypes))
		if err != nil {
			common.HandleError(hc, err, "new_room_kitchen")
			return
		}

		room.KitchenType = model.KitchenTypes[idx]
		hc.SetData(state.KeyRoom, room)
		text, kb := common.BuildFurnishedChoice()
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandleNewRoomFurnished мебель и переход к удобствам
func HandleNewRoomFurnished(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withRoomDraft(ctx, b, callback, h, func(hc *common.HandlerContext, room *model.Room) {
		room.IsFurnished = callback.Data == common.NewRoomFurnish+"1"
		hc.SetData(state.KeyRoom, room)
		hc.SetState(state.StateNewRoomAmenities)

		kb := keyboard.NewBuilder().Row(keyboard.CancelButton(common.NewRoomCancel)).Build()
		hc.EditMessage("✨ <b>Servicios</b>\n\nEscribe los servicios separados por comas (WiFi, Agua, Luz…) o «-» si no hay.", kb)
		hc.Answer("")
	})
}

// HandleNewRoomSave создаёт комнату
func HandleNewRoomSave(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withRoomDraft(ctx, b, callback, h, func(hc *common.HandlerContext, room *model.Room) {
		created, err := h.RoomService.Create(hc.Ctx, hc.Role(), room)
		if err != nil {
			common.HandleError(hc, err, "new_room_save")
			return
		}

		hc.ClearState()
		text, kb := common.BuildMyRoomScreen(created)
		hc.EditMessage("✅ <b>Habitación creada</b>\n\n"+text, kb)
		common.LogAndAnswer(hc, "Room created", "✅ Guardada")
	})
}

// HandleNewRoomCancel отменяет создание комнаты
func HandleNewRoomCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.EditMessageText("❌ Creación de habitación cancelada")
		hc.Answer("")
	})
}

func withRoomDraft(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*common.HandlerContext, *model.Room),
) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		room, ok := state.Draft[model.Room](h.StateManager, hc.TelegramID, state.KeyRoom)
		if !ok {
			common.HandleError(hc, common.ErrDialogExpired, "room_draft")
			return
		}
		handler(hc, room)
	})
}

// parseIndex индекс варианта из callback data
func parseIndex(data, prefix string, n int) (int, error) {
	args, err := common.ParseArgs(data, prefix, 1)
	if err != nil {
		return 0, err
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil || idx < 0 || idx >= n {
		return 0, common.ErrInvalidFormat
	}
	return idx, nil
}
