package owner

import (
	"context"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Owner Payments
// ========================

// HandleAccepted принятые заявки, по которым можно выставить платёж
func HandleAccepted(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		reqs, err := h.InterestService.Accepted(hc.Ctx, hc.Role())
		if err != nil {
			common.HandleError(hc, err, "accepted_interests")
			return
		}

		text, kb := common.BuildAcceptedScreen(reqs)
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandleRequestPayment выставляет платёж по заявке
func HandleRequestPayment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.PaymentRequest)
		if err != nil {
			common.HandleError(hc, err, "request_payment")
			return
		}

		payment, err := h.PaymentService.Request(hc.Ctx, hc.Role(), id)
		if err != nil {
			common.HandleError(hc, err, "request_payment")
			return
		}

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("💳 Ver pagos", common.PaymentList)).
			AddBackToMainButton().
			Build()
		hc.EditMessage("✅ <b>Pago solicitado</b>\n\n💰 Monto: "+formatting.FormatPrice(payment.Amount), kb)
		common.LogAndAnswer(hc, "Payment requested", "✅ Pago solicitado")
	})
}

// HandleRegeneratePayment выставляет платёж повторно
func HandleRegeneratePayment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.PaymentRegenerate)
		if err != nil {
			common.HandleError(hc, err, "regenerate_payment")
			return
		}

		payment, err := h.PaymentService.Find(hc.Ctx, hc.Role(), id)
		if err != nil {
			common.HandleError(hc, err, "regenerate_payment")
			return
		}
		if _, err := h.PaymentService.Regenerate(hc.Ctx, hc.Role(), payment); err != nil {
			common.HandleError(hc, err, "regenerate_payment")
			return
		}

		payments, err := h.PaymentService.List(hc.Ctx, hc.Role())
		if err != nil {
			common.HandleError(hc, err, "regenerate_payment")
			return
		}

		text, kb := common.BuildPaymentListScreen(hc.Role(), payments)
		hc.EditMessage(text, kb)
		common.LogAndAnswer(hc, "Payment regenerated", "🔁 Pago regenerado")
	})
}
