package student

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/interests"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/scheduling"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Appointment Slot Selection
// ========================

// HandleDays показывает дни окна доступности, прошедшие дни скрыты
func HandleDays(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withView(ctx, b, callback, h, common.SlotDays, func(hc *common.HandlerContext, view *scheduling.View) {
		slots, err := view.Slots()
		if err != nil {
			common.HandleError(hc, err, "slot_days")
			return
		}

		id := string(view.ID())
		now := h.Clock()
		dates := slots.UpcomingDates(now)

		bld := keyboard.NewBuilder()
		for _, date := range dates {
			daySlots := slots[date]
			label := fmt.Sprintf("%s (%d)", formatting.FormatDayShort(daySlots[0]), countUpcoming(daySlots, now))
			bld.Row(keyboard.Button(label, common.SlotDay+id+":"+date))
		}
		bld.Row(keyboard.Button("🖼 Ver calendario", common.SlotImage+id))
		bld.AddBackButton(common.InterestOpen + id)

		text := "🗓 <b>Elige un día</b>"
		if len(dates) == 0 {
			text = "😔 Ya no quedan días disponibles en esta propuesta.\nPide al propietario una nueva disponibilidad."
		}
		hc.EditMessage(text, bld.Build())
		hc.Answer("")
	})
}

// HandleDay показывает слоты дня; прошедшие помечены, но проверяются при нажатии
func HandleDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseArgs(callback.Data, common.SlotDay, 2)
		if err != nil {
			common.HandleError(hc, err, "slot_day")
			return
		}

		view, err := resolveView(hc, model.ID(args[0]))
		if err != nil {
			common.HandleError(hc, err, "slot_day")
			return
		}
		slots, err := view.Slots()
		if err != nil {
			common.HandleError(hc, err, "slot_day")
			return
		}

		showDay(hc, view.ID(), args[1], slots)
		hc.Answer("")
	})
}

// HandlePick проверяет слот в момент нажатия и спрашивает подтверждение
func HandlePick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, slot, err := common.ParseSlot(callback.Data, common.SlotPick, h.Location)
		if err != nil {
			common.HandleError(hc, err, "slot_pick")
			return
		}

		if err := scheduling.CheckSlot(slot, h.Clock()); err != nil {
			hc.AnswerAlert(common.PastSlotMessage)
			return
		}

		view, err := resolveView(hc, id)
		if err != nil {
			common.HandleError(hc, err, "slot_pick")
			return
		}
		slots, err := view.Slots()
		if err != nil {
			common.HandleError(hc, err, "slot_pick")
			return
		}
		if !slots.Contains(slot) {
			common.HandleError(hc, scheduling.ErrSlotNotOffered, "slot_pick")
			return
		}

		date := slot.Format(scheduling.DateLayout)
		text := fmt.Sprintf(
			"📅 <b>¿Confirmar la visita?</b>\n\n"+
				"🗓 %s\n"+
				"🕐 %s\n\n"+
				"Una vez confirmada no podrás cambiarla desde aquí.",
			formatting.FormatDayLong(slot),
			formatting.FormatTime(slot),
		)
		kb := keyboard.NewBuilder().
			Row(keyboard.ConfirmCancelRow(common.SlotConfirm+common.EncodeSlot(id, slot), common.SlotDay+string(id)+":"+date)...).
			Build()
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandleConfirm отправляет выбранный слот на бэкенд
func HandleConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, slot, err := common.ParseSlot(callback.Data, common.SlotConfirm, h.Location)
		if err != nil {
			common.HandleError(hc, err, "slot_confirm")
			return
		}

		if _, err := resolveView(hc, id); err != nil {
			common.HandleError(hc, err, "slot_confirm")
			return
		}

		if _, err := h.InterestService.Confirm(hc.Ctx, hc.TelegramID, id, slot); err != nil {
			if errors.Is(err, scheduling.ErrSlotInPast) {
				hc.AnswerAlert(common.PastSlotMessage)
				return
			}
			common.HandleError(hc, err, "slot_confirm")
			return
		}

		view, err := h.InterestService.View(hc.TelegramID, id)
		if err != nil {
			common.HandleError(hc, err, "slot_confirm")
			return
		}
		if err := interests.ShowCard(hc, view); err != nil {
			h.Logger.Error("Failed to show interest card", zap.Error(err))
		}
		common.LogAndAnswer(hc, "Appointment slot confirmed", "✅ Cita confirmada")
	})
}

// HandleImage отправляет картинку с календарём окна доступности
func HandleImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withView(ctx, b, callback, h, common.SlotImage, func(hc *common.HandlerContext, view *scheduling.View) {
		slots, err := view.Slots()
		if err != nil {
			common.HandleError(hc, err, "slot_image")
			return
		}

		now := h.Clock()
		req := view.Request()
		title := "Disponibilidad"
		if req.PostTitle != "" {
			title = req.PostTitle
		}

		from := now.Format(scheduling.DateLayout)
		if upcoming := slots.UpcomingDates(now); len(upcoming) > 0 {
			from = upcoming[0]
		}

		data, err := common.GenerateAvailabilityImage(title, slots, req.SlotDurationMinutes, from, now)
		if err != nil {
			common.HandleError(hc, err, "slot_image")
			return
		}

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("🗓 Elegir horario", common.SlotDays+string(view.ID()))).
			Build()
		caption := "🖼 Verde: disponible · Gris: ya pasó"
		if err := hc.SendPhoto("availability.png", data, caption, kb); err != nil {
			common.HandleError(hc, err, "slot_image")
			return
		}
		hc.Answer("")
	})
}

func showDay(hc *common.HandlerContext, id model.ID, date string, slots scheduling.Slots) {
	now := hc.Handler.Clock()
	daySlots := slots[date]

	buttons := make([]models.InlineKeyboardButton, 0, len(daySlots))
	for _, slot := range daySlots {
		label := formatting.FormatTime(slot)
		if !slot.After(now) {
			label = "⌛ " + label
		}
		buttons = append(buttons, keyboard.Button(label, common.SlotPick+common.EncodeSlot(id, slot)))
	}

	text := "😔 No hay horarios en este día"
	if len(daySlots) > 0 {
		text = fmt.Sprintf("🕐 <b>%s</b>\n\nElige la hora de la visita:", formatting.FormatDayLong(daySlots[0]))
	}
	kb := keyboard.NewBuilder().
		Grid(4, buttons...).
		AddBackButton(common.SlotDays + string(id)).
		Build()
	hc.EditMessage(text, kb)
}

func countUpcoming(slots []time.Time, now time.Time) int {
	n := 0
	for _, s := range slots {
		if s.After(now) {
			n++
		}
	}
	return n
}

// resolveView открытая карточка заявки; если её нет, заявка открывается заново
func resolveView(hc *common.HandlerContext, id model.ID) (*scheduling.View, error) {
	view, err := hc.Handler.InterestService.View(hc.TelegramID, id)
	if errors.Is(err, service.ErrViewNotOpen) {
		return hc.Handler.InterestService.Open(hc.Ctx, hc.TelegramID, id)
	}
	return view, err
}

func withView(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	prefix string,
	handler func(*common.HandlerContext, *scheduling.View),
) {
	common.WithStudent(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, prefix)
		if err != nil {
			common.HandleError(hc, err, prefix)
			return
		}

		view, err := resolveView(hc, id)
		if err != nil {
			common.HandleError(hc, err, prefix)
			return
		}
		handler(hc, view)
	})
}
