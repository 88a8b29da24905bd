package owner

import (
	"context"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Owner Posts
// ========================

// HandleMyPosts список объявлений владельца
func HandleMyPosts(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		posts, err := h.PostService.Mine(hc.Ctx, hc.Role())
		if err != nil {
			common.HandleError(hc, err, "my_posts")
			return
		}

		page := common.ParsePage(callback.Data, common.MyPostList)
		text, kb := common.BuildPostListScreen("📢 <b>Mis anuncios</b>", posts, page, common.MyPostList, common.MyPostView)
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandleMyPost карточка объявления владельца
func HandleMyPost(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.MyPostView)
		if err != nil {
			common.HandleError(hc, err, "my_post")
			return
		}

		post, err := h.PostService.Get(hc.Ctx, id)
		if err != nil {
			common.HandleError(hc, err, "my_post")
			return
		}

		text, kb := common.BuildMyPostScreen(post)
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandlePostStatus меняет статус объявления
func HandlePostStatus(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseArgs(callback.Data, common.MyPostStatus, 2)
		if err != nil {
			common.HandleError(hc, err, "post_status")
			return
		}

		post, err := h.PostService.ChangeStatus(hc.Ctx, hc.Role(), model.ID(args[0]), model.PostStatus(args[1]))
		if err != nil {
			common.HandleError(hc, err, "post_status")
			return
		}

		text, kb := common.BuildMyPostScreen(post)
		hc.EditMessage(text, kb)
		common.LogAndAnswer(hc, "Post status changed", "✅ Estado actualizado")
	})
}

// HandleDeletePost спрашивает подтверждение удаления
func HandleDeletePost(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.MyPostDelete)
		if err != nil {
			common.HandleError(hc, err, "delete_post")
			return
		}

		kb := keyboard.NewBuilder().
			Row(keyboard.ConfirmCancelRow(common.MyPostDeleteOK+string(id), common.MyPostView+string(id))...).
			Build()
		hc.EditMessage("🗑 <b>¿Eliminar el anuncio?</b>\n\nEsta acción no se puede deshacer.", kb)
		hc.Answer("")
	})
}

// HandleDeletePostConfirm удаляет объявление
func HandleDeletePostConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.MyPostDeleteOK)
		if err != nil {
			common.HandleError(hc, err, "delete_post_confirm")
			return
		}

		if err := h.PostService.Delete(hc.Ctx, hc.Role(), id); err != nil {
			common.HandleError(hc, err, "delete_post_confirm")
			return
		}

		kb := keyboard.NewBuilder().AddBackButton(common.MyPostList + "0").Build()
		hc.EditMessage("✅ Anuncio eliminado", kb)
		hc.Answer("🗑 Eliminado")
	})
}

// ========================
// New Post Dialog (button steps)
// ========================

// HandleNewPostRoom выбор комнаты для объявления
func HandleNewPostRoom(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withPostDraft(ctx, b, callback, h, func(hc *common.HandlerContext, in *api.PostInput) {
		id, err := common.ParseID(callback.Data, common.NewPostRoom)
		if err != nil {
			common.HandleError(hc, err, "new_post_room")
			return
		}

		in.RoomID = id
		hc.SetData(state.KeyPost, in)
		hc.SetState(state.StateNewPostTitle)

		kb := keyboard.NewBuilder().Row(keyboard.CancelButton(common.NewPostCancel)).Build()
		hc.EditMessage("📢 <b>Título del anuncio</b>\n\nEscribe el título (5-120 caracteres):", kb)
		hc.Answer("")
	})
}

// HandleNewPostImagesDone завершает загрузку фото и показывает итог
func HandleNewPostImagesDone(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withPostDraft(ctx, b, callback, h, func(hc *common.HandlerContext, in *api.PostInput) {
		hc.SetState(state.StateNewPostPreview)

		text, kb := common.BuildNewPostPreview(in, draftImages(hc))
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandleNewPostSave публикует объявление
func HandleNewPostSave(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withPostDraft(ctx, b, callback, h, func(hc *common.HandlerContext, in *api.PostInput) {
		post, err := h.PostService.Create(hc.Ctx, hc.Role(), *in, draftImages(hc))
		if err != nil {
			common.HandleError(hc, err, "new_post_save")
			return
		}

		hc.ClearState()
		text, kb := common.BuildMyPostScreen(post)
		hc.EditMessage("✅ <b>Anuncio publicado</b>\n\n"+text, kb)
		common.LogAndAnswer(hc, "Post created", "✅ Publicado")
	})
}

// HandleNewPostCancel отменяет создание объявления
func HandleNewPostCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.EditMessageText("❌ Creación de anuncio cancelada")
		hc.Answer("")
	})
}

func withPostDraft(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*common.HandlerContext, *api.PostInput),
) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		in, ok := state.Draft[api.PostInput](h.StateManager, hc.TelegramID, state.KeyPost)
		if !ok {
			common.HandleError(hc, common.ErrDialogExpired, "post_draft")
			return
		}
		handler(hc, in)
	})
}

func draftImages(hc *common.HandlerContext) []api.Image {
	raw, _ := hc.GetData(state.KeyImages)
	images, _ := raw.([]api.Image)
	return images
}
