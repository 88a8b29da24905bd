package common

import (
	"fmt"
	"html"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/rental_bot/internal/scheduling"
	"github.com/go-telegram/bot/models"
)

// ProposalDays сколько дней вперёд предлагается для окна доступности
const ProposalDays = 21

// DefaultProposal черновик формы: с завтрашнего дня, 09:00-17:00 по 30 минут
func DefaultProposal(now time.Time) *scheduling.Proposal {
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return &scheduling.Proposal{
		Window: scheduling.Window{
			StartDate:       tomorrow,
			EndDate:         tomorrow,
			StartTime:       scheduling.DefaultStartTime,
			EndTime:         scheduling.DefaultEndTime,
			DurationMinutes: scheduling.DefaultDurationMinutes,
		},
	}
}

// BuildProposalPreview итоговый экран предложения перед отправкой
func BuildProposalPreview(p *scheduling.Proposal, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	count := 0
	if slots, err := scheduling.Generate(p.Window, loc); err == nil {
		count = slots.Count()
	}

	text := fmt.Sprintf(
		"📋 <b>Revisa tu propuesta</b>\n\n"+
			"📆 Del %s al %s\n"+
			"🕘 De %s a %s\n"+
			"⏱ Citas de %s\n"+
			"🔢 Horarios generados: %d",
		formatting.FormatDayLong(p.StartDate),
		formatting.FormatDayLong(p.EndDate),
		p.StartTime, p.EndTime,
		formatting.FormatDuration(p.DurationMinutes),
		count,
	)
	if p.Message != "" {
		text += fmt.Sprintf("\n💬 %s", html.EscapeString(p.Message))
	}
	if count == 0 {
		text += "\n\n⚠️ Con estos valores no se genera ningún horario."
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📤 Enviar propuesta", ProposalSend)).
		Row(keyboard.CancelButton(ProposalCancel)).
		Build()
	return text, kb
}
