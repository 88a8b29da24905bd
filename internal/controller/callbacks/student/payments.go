package student

import (
	"context"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Simulated Card Payment
// ========================

// HandlePayCard начинает форму оплаты картой
func HandlePayCard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.PaymentCard)
		if err != nil {
			common.HandleError(hc, err, "pay_card")
			return
		}

		payment, err := h.PaymentService.Find(hc.Ctx, hc.Role(), id)
		if err != nil {
			common.HandleError(hc, err, "pay_card")
			return
		}
		if payment.IsPaid() {
			common.HandleError(hc, service.ErrAlreadyPaid, "pay_card")
			return
		}

		hc.StartState(state.StatePayCardNumber)
		hc.SetData(state.KeyPaymentID, id)
		hc.SetData(state.KeyCard, &service.Card{})

		kb := keyboard.NewBuilder().Row(keyboard.CancelButton(common.PaymentCancel)).Build()
		hc.EditMessage("💳 <b>Pago de "+formatting.FormatPrice(payment.Amount)+"</b>\n\n"+
			"Pago simulado: no se realiza ningún cargo real.\n\n"+
			"Escribe el número de la tarjeta:", kb)
		hc.Answer("")
	})
}

// HandlePayConfirm проводит оплату заполненной картой
func HandlePayConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.PaymentConfirm)
		if err != nil {
			common.HandleError(hc, err, "pay_confirm")
			return
		}

		raw, _ := hc.GetData(state.KeyCard)
		card, ok := raw.(*service.Card)
		stored, _ := hc.GetData(state.KeyPaymentID)
		if !ok || stored != id {
			common.HandleError(hc, common.ErrDialogExpired, "pay_confirm")
			return
		}

		payment, err := h.PaymentService.Find(hc.Ctx, hc.Role(), id)
		if err != nil {
			common.HandleError(hc, err, "pay_confirm")
			return
		}
		if _, err := h.PaymentService.Pay(hc.Ctx, hc.Role(), payment, *card); err != nil {
			common.HandleError(hc, err, "pay_confirm")
			return
		}

		hc.ClearState()
		showPayments(hc)
		common.LogAndAnswer(hc, "Payment completed", "✅ Pago realizado")
	})
}

// HandlePayCancel отменяет форму оплаты
func HandlePayCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		showPayments(hc)
		hc.Answer("❌ Pago cancelado")
	})
}

func showPayments(hc *common.HandlerContext) {
	payments, err := hc.Handler.PaymentService.List(hc.Ctx, hc.Role())
	if err != nil {
		hc.EditMessageText(common.ErrorMessage(err))
		return
	}
	text, kb := common.BuildPaymentListScreen(hc.Role(), payments)
	hc.EditMessage(text, kb)
}
