package owner

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/interests"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/scheduling"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Границы шкалы времени в форме предложения
const (
	firstPickerHour = 6
	lastPickerHour  = 22
	timeStepMinutes = 30
)

// ========================
// Availability Proposal Dialog
// ========================

// HandleProposalStart открывает форму предложения доступности
func HandleProposalStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseID(callback.Data, common.ProposalStart)
		if err != nil {
			common.HandleError(hc, err, "proposal_start")
			return
		}

		view, err := h.InterestService.View(hc.TelegramID, id)
		if err != nil {
			common.HandleError(hc, err, "proposal_start")
			return
		}
		if view.Phase() != scheduling.PhaseNoProposal || view.Request().Status.IsTerminal() {
			common.HandleError(hc, scheduling.ErrInvalidTransition, "proposal_start")
			return
		}

		hc.StartState(state.StateProposal)
		hc.SetData(state.KeyInterestID, id)
		hc.SetData(state.KeyProposal, common.DefaultProposal(h.Clock()))

		showStartDates(hc)
		hc.Answer("")
	})
}

// HandleProposalStartDate сохраняет дату начала и предлагает дату окончания
func HandleProposalStartDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, p *scheduling.Proposal) {
		date, err := parseDateArg(callback.Data, common.ProposalStartDate, h.Location)
		if err != nil {
			common.HandleError(hc, err, "proposal_start_date")
			return
		}

		p.StartDate = date
		if p.EndDate.Before(date) {
			p.EndDate = date
		}
		hc.SetData(state.KeyProposal, p)
		showEndDates(hc, p)
		hc.Answer("")
	})
}

// HandleProposalEndDate сохраняет дату окончания
func HandleProposalEndDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, p *scheduling.Proposal) {
		date, err := parseDateArg(callback.Data, common.ProposalEndDate, h.Location)
		if err != nil {
			common.HandleError(hc, err, "proposal_end_date")
			return
		}
		if date.Before(p.StartDate) {
			common.HandleError(hc, scheduling.ErrInvalidDateRange, "proposal_end_date")
			return
		}

		p.EndDate = date
		hc.SetData(state.KeyProposal, p)
		showTimes(hc, "🕘 <b>Hora de inicio</b>\n\n¿Desde qué hora puedes recibir visitas?",
			common.ProposalStartTime, scheduling.TimeOfDay{Hour: firstPickerHour}, scheduling.TimeOfDay{Hour: lastPickerHour}, p.StartTime)
		hc.Answer("")
	})
}

// HandleProposalStartTime сохраняет время начала
func HandleProposalStartTime(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, p *scheduling.Proposal) {
		t, err := parseTimeArg(callback.Data, common.ProposalStartTime)
		if err != nil {
			common.HandleError(hc, err, "proposal_start_time")
			return
		}

		p.StartTime = t
		hc.SetData(state.KeyProposal, p)
		next := t.Minutes() + timeStepMinutes
		first := scheduling.TimeOfDay{Hour: next / 60, Minute: next % 60}
		showTimes(hc, "🕔 <b>Hora de fin</b>\n\n¿Hasta qué hora puedes recibir visitas?",
			common.ProposalEndTime, first, scheduling.TimeOfDay{Hour: 23, Minute: 30}, p.EndTime)
		hc.Answer("")
	})
}

// HandleProposalEndTime сохраняет время окончания
func HandleProposalEndTime(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, p *scheduling.Proposal) {
		t, err := parseTimeArg(callback.Data, common.ProposalEndTime)
		if err != nil {
			common.HandleError(hc, err, "proposal_end_time")
			return
		}
		if !p.StartTime.Before(t) {
			common.HandleError(hc, scheduling.ErrInvalidTimeRange, "proposal_end_time")
			return
		}

		p.EndTime = t
		hc.SetData(state.KeyProposal, p)
		showDurations(hc, p)
		hc.Answer("")
	})
}

// HandleProposalDuration сохраняет длительность и просит сообщение
func HandleProposalDuration(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, p *scheduling.Proposal) {
		args, err := common.ParseArgs(callback.Data, common.ProposalDuration, 1)
		if err != nil {
			common.HandleError(hc, err, "proposal_duration")
			return
		}
		minutes, err := strconv.Atoi(args[0])
		if err != nil || minutes <= 0 {
			common.HandleError(hc, scheduling.ErrInvalidDuration, "proposal_duration")
			return
		}

		p.DurationMinutes = minutes
		hc.SetData(state.KeyProposal, p)
		hc.SetState(state.StateProposalMessage)

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("⏭ Omitir", common.ProposalSkipMsg)).
			Row(keyboard.CancelButton(common.ProposalCancel)).
			Build()
		hc.EditMessage("💬 <b>Mensaje para el estudiante</b>\n\nEscribe un mensaje opcional o pulsa «Omitir».", kb)
		hc.Answer("")
	})
}

// HandleProposalSkipMessage показывает итог без сообщения
func HandleProposalSkipMessage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, p *scheduling.Proposal) {
		p.Message = ""
		hc.SetData(state.KeyProposal, p)
		hc.SetState(state.StateProposal)

		text, kb := common.BuildProposalPreview(p, h.Location)
		hc.EditMessage(text, kb)
		hc.Answer("")
	})
}

// HandleProposalSend отправляет окно доступности на бэкенд.
// При ошибке форма сохраняется и её можно отправить повторно.
func HandleProposalSend(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withDraft(ctx, b, callback, h, func(hc *common.HandlerContext, p *scheduling.Proposal) {
		id, _ := hc.GetData(state.KeyInterestID)
		interestID, ok := id.(model.ID)
		if !ok {
			common.HandleError(hc, common.ErrDialogExpired, "proposal_send")
			return
		}

		if _, err := h.InterestService.Propose(hc.Ctx, hc.TelegramID, interestID, *p); err != nil {
			common.HandleError(hc, err, "proposal_send")
			return
		}

		hc.ClearState()
		view, err := h.InterestService.View(hc.TelegramID, interestID)
		if err != nil {
			common.HandleError(hc, err, "proposal_send")
			return
		}
		if err := interests.ShowCard(hc, view); err != nil {
			h.Logger.Error("Failed to show interest card", zap.Error(err))
		}
		hc.Answer("✅ Disponibilidad enviada")
	})
}

// HandleProposalCancel отменяет форму и возвращает карточку
func HandleProposalCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, _ := hc.GetData(state.KeyInterestID)
		hc.ClearState()

		if interestID, ok := id.(model.ID); ok {
			if view, err := h.InterestService.View(hc.TelegramID, interestID); err == nil {
				interests.ShowCard(hc, view)
				hc.Answer("❌ Cancelado")
				return
			}
		}

		hc.EditMessageText("❌ Propuesta cancelada")
		hc.Answer("")
	})
}

// withDraft достаёт копию черновика предложения из состояния.
// Изменения сохраняются только через SetData.
func withDraft(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*common.HandlerContext, *scheduling.Proposal),
) {
	common.WithOwner(ctx, b, callback, h, func(hc *common.HandlerContext) {
		p, ok := state.Draft[scheduling.Proposal](h.StateManager, hc.TelegramID, state.KeyProposal)
		if !ok {
			common.HandleError(hc, common.ErrDialogExpired, "proposal_draft")
			return
		}
		handler(hc, p)
	})
}

func parseDateArg(data, prefix string, loc *time.Location) (time.Time, error) {
	args, err := common.ParseArgs(data, prefix, 1)
	if err != nil {
		return time.Time{}, err
	}
	return scheduling.ParseDate(args[0], loc)
}

// parseTimeArg разбирает HHMM
func parseTimeArg(data, prefix string) (scheduling.TimeOfDay, error) {
	args, err := common.ParseArgs(data, prefix, 1)
	if err != nil || len(args[0]) != 4 {
		return scheduling.TimeOfDay{}, common.ErrInvalidFormat
	}
	hour, errH := strconv.Atoi(args[0][:2])
	minute, errM := strconv.Atoi(args[0][2:])
	if errH != nil || errM != nil || hour > 23 || minute > 59 {
		return scheduling.TimeOfDay{}, common.ErrInvalidFormat
	}
	return scheduling.TimeOfDay{Hour: hour, Minute: minute}, nil
}

func showStartDates(hc *common.HandlerContext) {
	showDates(hc, "📆 <b>Fecha de inicio</b>\n\n¿Desde qué día puedes recibir visitas?",
		common.ProposalStartDate, hc.Handler.Clock().AddDate(0, 0, 1))
}

func showEndDates(hc *common.HandlerContext, p *scheduling.Proposal) {
	text := fmt.Sprintf("📆 <b>Fecha de fin</b>\n\nInicio: %s\n¿Hasta qué día?",
		formatting.FormatDayLong(p.StartDate))
	showDates(hc, text, common.ProposalEndDate, p.StartDate)
}

// showDates календарь из ProposalDays дней начиная с first
func showDates(hc *common.HandlerContext, text, prefix string, first time.Time) {
	buttons := make([]models.InlineKeyboardButton, 0, common.ProposalDays)
	for i := 0; i < common.ProposalDays; i++ {
		day := first.AddDate(0, 0, i)
		buttons = append(buttons, keyboard.Button(formatting.FormatDayShort(day), prefix+day.Format(scheduling.DateLayout)))
	}

	kb := keyboard.NewBuilder().
		Grid(3, buttons...).
		Row(keyboard.CancelButton(common.ProposalCancel)).
		Build()
	hc.EditMessage(text, kb)
}

// showTimes шкала времени с шагом timeStepMinutes от first до last включительно
func showTimes(hc *common.HandlerContext, text, prefix string, first, last, selected scheduling.TimeOfDay) {
	var buttons []models.InlineKeyboardButton
	for m := first.Minutes(); m <= last.Minutes(); m += timeStepMinutes {
		t := scheduling.TimeOfDay{Hour: m / 60, Minute: m % 60}
		label := t.String()
		if t == selected {
			label = "• " + label
		}
		buttons = append(buttons, keyboard.Button(label, fmt.Sprintf("%s%02d%02d", prefix, t.Hour, t.Minute)))
	}

	kb := keyboard.NewBuilder().
		Grid(4, buttons...).
		Row(keyboard.CancelButton(common.ProposalCancel)).
		Build()
	hc.EditMessage(text, kb)
}

func showDurations(hc *common.HandlerContext, p *scheduling.Proposal) {
	buttons := make([]models.InlineKeyboardButton, 0, len(scheduling.SlotDurations))
	for _, d := range scheduling.SlotDurations {
		label := formatting.FormatDuration(d)
		if d == p.DurationMinutes {
			label = "• " + label
		}
		buttons = append(buttons, keyboard.Button(label, fmt.Sprintf("%s%d", common.ProposalDuration, d)))
	}

	text := fmt.Sprintf("⏱ <b>Duración de cada visita</b>\n\nHorario: %s - %s", p.StartTime, p.EndTime)
	kb := keyboard.NewBuilder().
		Grid(4, buttons...).
		Row(keyboard.CancelButton(common.ProposalCancel)).
		Build()
	hc.EditMessage(text, kb)
}
