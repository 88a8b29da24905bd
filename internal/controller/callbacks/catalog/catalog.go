package catalog

import (
	"context"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Public Catalog
// ========================

// HandlePosts список объявлений
func HandlePosts(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		posts, err := h.PostService.List(hc.Ctx)
		if err != nil {
			common.HandleError(hc, err, "list_posts")
			return
		}

		page := common.ParsePage(callback.Data, common.PostList)
		text, kb := common.BuildPostListScreen("🏘 <b>Anuncios</b>", posts, page, common.PostList, common.PostView)
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandlePost карточка объявления
func HandlePost(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.PostView)
		if err != nil {
			common.HandleError(hc, err, "view_post")
			return
		}

		post, err := h.PostService.Get(hc.Ctx, id)
		if err != nil {
			common.HandleError(hc, err, "view_post")
			return
		}

		text, kb := common.BuildPostDetailScreen(post, hc.Role())
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandleInterest студент откликается на объявление
func HandleInterest(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.PostInterest)
		if err != nil {
			common.HandleError(hc, err, "post_interest")
			return
		}

		if _, err := h.InterestService.Express(hc.Ctx, hc.Role(), id); err != nil {
			common.HandleError(hc, err, "post_interest")
			return
		}

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("📨 Mis solicitudes", common.InterestList+"0")).
			AddBackButton(common.PostView + string(id)).
			Build()
		hc.EditMessage("💚 <b>¡Solicitud enviada!</b>\n\nEl propietario te propondrá horarios de visita. Te avisaremos.", kb)
		common.LogAndAnswer(hc, "Interest expressed", "💚 Solicitud enviada")
	})
}

// HandleMessage студент отправляет владельцу сообщение по объявлению
func HandleMessage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.PostMessage)
		if err != nil {
			common.HandleError(hc, err, "post_message")
			return
		}

		if err := h.PostService.SendMessage(hc.Ctx, id); err != nil {
			common.HandleError(hc, err, "post_message")
			return
		}
		common.LogAndAnswer(hc, "Message sent to owner", "✉️ Mensaje enviado al propietario")
	})
}

// HandleRooms список всех комнат
func HandleRooms(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		rooms, err := h.RoomService.List(hc.Ctx)
		if err != nil {
			common.HandleError(hc, err, "list_rooms")
			return
		}

		page := common.ParsePage(callback.Data, common.RoomList)
		text, kb := common.BuildRoomListScreen("🛏 <b>Habitaciones</b>", rooms, page, common.RoomList, common.RoomView)
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandleRoom карточка комнаты
func HandleRoom(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.RoomView)
		if err != nil {
			common.HandleError(hc, err, "view_room")
			return
		}

		room, err := h.RoomService.Get(hc.Ctx, id)
		if err != nil {
			common.HandleError(hc, err, "view_room")
			return
		}

		text, kb := common.BuildRoomDetailScreen(room)
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandlePayments платежи пользователя по роли
func HandlePayments(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		payments, err := h.PaymentService.List(hc.Ctx, hc.Role())
		if err != nil {
			common.HandleError(hc, err, "list_payments")
			return
		}

		text, kb := common.BuildPaymentListScreen(hc.Role(), payments)
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

