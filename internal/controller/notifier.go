package controller

import (
	"context"
	"fmt"
	"html"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Notifier отправляет уведомления фонового наблюдателя в чат пользователя
type Notifier struct {
	bot *bot.Bot
}

// NewNotifier создаёт уведомитель
func NewNotifier(b *bot.Bot) *Notifier {
	return &Notifier{bot: b}
}

// NotifyChange сообщает об изменении заявки
func (n *Notifier) NotifyChange(ctx context.Context, telegramID int64, change service.Change) error {
	text, kb := FormatChange(change)
	return n.send(ctx, telegramID, text, kb)
}

// NotifySessionExpired просит войти заново
func (n *Notifier) NotifySessionExpired(ctx context.Context, telegramID int64) error {
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔑 Iniciar sesión", common.AuthLogin)).
		Build()
	return n.send(ctx, telegramID, common.SessionExpiredMessage, kb)
}

func (n *Notifier) send(ctx context.Context, chatID int64, text string, kb *models.InlineKeyboardMarkup) error {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	_, err := n.bot.SendMessage(ctx, params)
	return err
}

// FormatChange текст уведомления и кнопка перехода к заявке
func FormatChange(change service.Change) (string, *models.InlineKeyboardMarkup) {
	req := change.Request
	title := html.EscapeString(req.PostTitle)
	if title == "" {
		title = "Anuncio #" + html.EscapeString(req.PostID.String())
	}

	var text string
	switch change.Kind {
	case service.ChangeNewRequest:
		text = fmt.Sprintf("📩 <b>Nueva solicitud</b>\n\n%s\nDe: %s", title, html.EscapeString(req.StudentName))
	case service.ChangeProposal:
		text = fmt.Sprintf("📅 <b>El propietario propuso horarios de visita</b>\n\n%s\nElige el que te convenga.", title)
	case service.ChangeConfirmed:
		text = fmt.Sprintf("✅ <b>Visita confirmada</b>\n\n%s\nEstudiante: %s", title, html.EscapeString(req.StudentName))
	default:
		from := "-"
		if change.Previous != nil {
			from = formatting.GetInterestStatusDisplay(change.Previous.Status).String()
		}
		text = fmt.Sprintf("🔔 <b>Cambio de estado</b>\n\n%s\n%s → %s",
			title, from, formatting.GetInterestStatusDisplay(req.Status).String())
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("👀 Ver solicitud", common.InterestOpen+string(req.ID))).
		Build()
	return text, kb
}

var _ service.Notifier = (*Notifier)(nil)
