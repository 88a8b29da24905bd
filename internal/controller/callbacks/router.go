package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/account"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/catalog"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/interests"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/owner"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/student"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	// ===== Common Navigation =====
	case data == keyboard.BackToMainData:
		handleBackToMain(ctx, b, callback, h)
	case data == keyboard.NoopData:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Account =====
	case data == common.AuthLogin:
		account.HandleLogin(ctx, b, callback, h)
	case data == common.AuthRegister:
		account.HandleRegister(ctx, b, callback, h)
	case strings.HasPrefix(data, common.RegisterAsRole):
		account.HandleRole(ctx, b, callback, h)

	// ===== Interest Requests =====
	case strings.HasPrefix(data, common.InterestList):
		interests.HandleList(ctx, b, callback, h)
	case strings.HasPrefix(data, common.InterestOpen):
		interests.HandleOpen(ctx, b, callback, h)
	case strings.HasPrefix(data, common.InterestRefresh):
		interests.HandleRefresh(ctx, b, callback, h)

	// ===== Owner: Availability Proposal =====
	case strings.HasPrefix(data, common.ProposalStart):
		owner.HandleProposalStart(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ProposalStartDate):
		owner.HandleProposalStartDate(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ProposalEndDate):
		owner.HandleProposalEndDate(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ProposalStartTime):
		owner.HandleProposalStartTime(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ProposalEndTime):
		owner.HandleProposalEndTime(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ProposalDuration):
		owner.HandleProposalDuration(ctx, b, callback, h)
	case data == common.ProposalSkipMsg:
		owner.HandleProposalSkipMessage(ctx, b, callback, h)
	case data == common.ProposalSend:
		owner.HandleProposalSend(ctx, b, callback, h)
	case data == common.ProposalCancel:
		owner.HandleProposalCancel(ctx, b, callback, h)

	// ===== Student: Slot Selection =====
	case strings.HasPrefix(data, common.SlotDays):
		student.HandleDays(ctx, b, callback, h)
	case strings.HasPrefix(data, common.SlotDay):
		student.HandleDay(ctx, b, callback, h)
	case strings.HasPrefix(data, common.SlotPick):
		student.HandlePick(ctx, b, callback, h)
	case strings.HasPrefix(data, common.SlotConfirm):
		student.HandleConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, common.SlotImage):
		student.HandleImage(ctx, b, callback, h)

	// ===== Catalog =====
	case strings.HasPrefix(data, common.PostList):
		catalog.HandlePosts(ctx, b, callback, h)
	case strings.HasPrefix(data, common.PostView):
		catalog.HandlePost(ctx, b, callback, h)
	case strings.HasPrefix(data, common.PostInterest):
		catalog.HandleInterest(ctx, b, callback, h)
	case strings.HasPrefix(data, common.PostMessage):
		catalog.HandleMessage(ctx, b, callback, h)
	case strings.HasPrefix(data, common.RoomList):
		catalog.HandleRooms(ctx, b, callback, h)
	case strings.HasPrefix(data, common.RoomView):
		catalog.HandleRoom(ctx, b, callback, h)

	// ===== Owner: Posts =====
	case strings.HasPrefix(data, common.MyPostList):
		owner.HandleMyPosts(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyPostView):
		owner.HandleMyPost(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyPostStatus):
		owner.HandlePostStatus(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyPostEditMenu):
		owner.HandlePostEditMenu(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyPostEdit):
		owner.HandlePostEditField(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyPostEditStop):
		owner.HandlePostEditStop(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyPostDeleteOK):
		owner.HandleDeletePostConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyPostDelete):
		owner.HandleDeletePost(ctx, b, callback, h)
	case strings.HasPrefix(data, common.NewPostRoom):
		owner.HandleNewPostRoom(ctx, b, callback, h)
	case data == common.NewPostNoImage:
		owner.HandleNewPostImagesDone(ctx, b, callback, h)
	case data == common.NewPostSave:
		owner.HandleNewPostSave(ctx, b, callback, h)
	case data == common.NewPostCancel:
		owner.HandleNewPostCancel(ctx, b, callback, h)

	// ===== Owner: Rooms =====
	case strings.HasPrefix(data, common.MyRoomList):
		owner.HandleMyRooms(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyRoomView):
		owner.HandleMyRoom(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyRoomToggle):
		owner.HandleToggleRoom(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyRoomEditMenu):
		owner.HandleRoomEditMenu(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyRoomEdit):
		owner.HandleRoomEditField(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyRoomEditStop):
		owner.HandleRoomEditStop(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyRoomDeleteOK):
		owner.HandleDeleteRoomConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, common.MyRoomDelete):
		owner.HandleDeleteRoom(ctx, b, callback, h)
	case strings.HasPrefix(data, common.NewRoomBath):
		owner.HandleNewRoomBathroom(ctx, b, callback, h)
	case strings.HasPrefix(data, common.NewRoomKitchen):
		owner.HandleNewRoomKitchen(ctx, b, callback, h)
	case strings.HasPrefix(data, common.NewRoomFurnish):
		owner.HandleNewRoomFurnished(ctx, b, callback, h)
	case data == common.NewRoomSave:
		owner.HandleNewRoomSave(ctx, b, callback, h)
	case data == common.NewRoomCancel:
		owner.HandleNewRoomCancel(ctx, b, callback, h)

	// ===== Payments =====
	case data == common.PaymentList:
		catalog.HandlePayments(ctx, b, callback, h)
	case data == common.PaymentAccepted:
		owner.HandleAccepted(ctx, b, callback, h)
	case strings.HasPrefix(data, common.PaymentRequest):
		owner.HandleRequestPayment(ctx, b, callback, h)
	case strings.HasPrefix(data, common.PaymentRegenerate):
		owner.HandleRegeneratePayment(ctx, b, callback, h)
	case strings.HasPrefix(data, common.PaymentCard):
		student.HandlePayCard(ctx, b, callback, h)
	case strings.HasPrefix(data, common.PaymentConfirm):
		student.HandlePayConfirm(ctx, b, callback, h)
	case data == common.PaymentCancel:
		student.HandlePayCancel(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback data",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❓ Acción desconocida")
	}
}

// handleBackToMain закрывает открытую карточку и показывает главное меню
func handleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	hc.ClearState()
	h.InterestService.Close(hc.TelegramID)

	sess, _ := h.AuthService.Session(hc.TelegramID)
	text, kb := common.BuildMainMenu(sess)
	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to show main menu", zap.Error(err))
	}
	hc.Answer("")
}
