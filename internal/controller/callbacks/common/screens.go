package common

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/scheduling"
	"github.com/go-telegram/bot/models"
)

// ========================
// Главное меню
// ========================

// BuildMainMenu формирует главное меню по роли
func BuildMainMenu(sess *model.Session) (string, *models.InlineKeyboardMarkup) {
	if sess == nil {
		text := "👋 <b>¡Bienvenido a Rental Bot!</b>\n\n" +
			"Encuentra habitaciones para estudiantes o publica la tuya.\n\n" +
			"Inicia sesión o crea una cuenta para continuar:"
		kb := keyboard.NewBuilder().
			Row(keyboard.Button("🔑 Iniciar sesión", AuthLogin)).
			Row(keyboard.Button("📝 Registrarse", AuthRegister)).
			Build()
		return text, kb
	}

	b := keyboard.NewBuilder()
	var text string

	switch sess.Role {
	case model.RoleOwner:
		text = fmt.Sprintf("🏠 <b>Menú del propietario</b>\n\n📧 %s", html.EscapeString(sess.Email))
		b.Row(keyboard.Button("📥 Solicitudes recibidas", InterestList+"0")).
			Row(
				keyboard.Button("🛏 Mis habitaciones", MyRoomList+"0"),
				keyboard.Button("📢 Mis anuncios", MyPostList+"0"),
			).
			Row(
				keyboard.Button("💳 Pagos", PaymentList),
				keyboard.Button("🤝 Aceptadas", PaymentAccepted),
			)
	case model.RoleStudent:
		text = fmt.Sprintf("🎓 <b>Menú del estudiante</b>\n\n📧 %s", html.EscapeString(sess.Email))
		b.Row(keyboard.Button("🏘 Ver anuncios", PostList+"0")).
			Row(keyboard.Button("📨 Mis solicitudes", InterestList+"0")).
			Row(keyboard.Button("💳 Mis pagos", PaymentList))
	default:
		text = "❓ Rol desconocido. Usa /logout e inicia sesión de nuevo"
	}

	return text, b.Build()
}

// ========================
// Заявки
// ========================

// BuildInterestListScreen формирует список заявок
func BuildInterestListScreen(role model.Role, reqs []*model.InterestRequest, page int) (string, *models.InlineKeyboardMarkup) {
	title := "📨 <b>Mis solicitudes</b>"
	empty := "Aún no has mostrado interés en ningún anuncio.\nUsa /posts para ver anuncios."
	if role == model.RoleOwner {
		title = "📥 <b>Solicitudes recibidas</b>"
		empty = "Todavía no tienes solicitudes."
	}

	b := keyboard.NewBuilder()
	if len(reqs) == 0 {
		return title + "\n\n" + empty, b.AddBackToMainButton().Build()
	}

	start, end, current, pages := keyboard.Page(len(reqs), page)
	for _, req := range reqs[start:end] {
		status := formatting.GetInterestStatusDisplay(req.Status)
		label := req.PostTitle
		if role == model.RoleOwner && req.StudentName != "" {
			label = req.StudentName + " · " + req.PostTitle
		}
		b.Row(keyboard.Button(status.Emoji+" "+truncate(label, 40), InterestOpen+string(req.ID)))
	}

	text := fmt.Sprintf("%s\n\nTotal: %d\nElige una solicitud:", title, len(reqs))
	return text, b.AddPagination(InterestList, current, pages).AddBackToMainButton().Build()
}

// BuildInterestCard формирует карточку заявки для владельца или студента
func BuildInterestCard(role model.Role, view *scheduling.View, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	req := view.Request()
	id := string(req.ID)
	status := formatting.GetInterestStatusDisplay(req.Status)

	var sb strings.Builder
	sb.WriteString("📋 <b>Solicitud</b>\n\n")
	if req.PostTitle != "" {
		sb.WriteString(fmt.Sprintf("🏠 %s\n", html.EscapeString(req.PostTitle)))
	}
	if role == model.RoleOwner && req.StudentName != "" {
		sb.WriteString(fmt.Sprintf("🎓 %s", html.EscapeString(req.StudentName)))
		if req.StudentEmail != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", html.EscapeString(req.StudentEmail)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("📊 Estado: %s\n", status))
	if req.Message != "" {
		sb.WriteString(fmt.Sprintf("💬 %s\n", html.EscapeString(req.Message)))
	}

	b := keyboard.NewBuilder()
	terminal := req.Status.IsTerminal()

	switch view.Phase() {
	case scheduling.PhaseNoProposal:
		switch role {
		case model.RoleOwner:
			sb.WriteString("\n📅 Aún no has propuesto disponibilidad.")
			if !terminal {
				b.Row(keyboard.Button("📅 Proponer disponibilidad", ProposalStart+id))
			}
		case model.RoleStudent:
			sb.WriteString("\n⏳ El propietario aún no ha propuesto horarios de visita.")
		}
	case scheduling.PhaseProposed:
		sb.WriteString("\n" + FormatWindow(req, loc))
		if role == model.RoleStudent && !terminal {
			if view.Submitting(scheduling.ActionConfirm) {
				sb.WriteString("\n\n⏳ Enviando confirmación…")
			} else {
				sb.WriteString("\n\n👇 Elige un horario para la visita")
				b.Row(keyboard.Button("🗓 Elegir horario", SlotDays+id))
			}
			b.Row(keyboard.Button("🖼 Ver calendario", SlotImage+id))
		}
	case scheduling.PhaseConfirmed:
		sb.WriteString("\n" + FormatWindow(req, loc))
		if at, ok := req.AppointmentTime(loc); ok {
			sb.WriteString(fmt.Sprintf("\n\n✅ <b>Cita confirmada:</b> %s, %s",
				formatting.FormatDayLong(at), formatting.FormatTime(at)))
		} else {
			sb.WriteString("\n\n✅ <b>Cita confirmada</b>")
		}
		if role == model.RoleOwner && req.Status == model.InterestStatusAccepted {
			b.Row(keyboard.Button("💳 Solicitar pago", PaymentRequest+id))
		}
	}

	b.Row(keyboard.RefreshButton(InterestRefresh + id))
	b.AddBackButton(InterestList + "0")
	return sb.String(), b.Build()
}

// FormatWindow описание окна доступности
func FormatWindow(req *model.InterestRequest, loc *time.Location) string {
	w, err := scheduling.WindowOf(req, loc)
	if err != nil {
		return "📅 Disponibilidad no válida"
	}
	return fmt.Sprintf(
		"📅 <b>Disponibilidad</b>\n"+
			"📆 Del %s al %s\n"+
			"🕘 De %s a %s\n"+
			"⏱ Citas de %s",
		formatting.FormatDayLong(w.StartDate),
		formatting.FormatDayLong(w.EndDate),
		w.StartTime, w.EndTime,
		formatting.FormatDuration(w.DurationMinutes),
	)
}

// ========================
// Объявления
// ========================

// BuildPostListScreen формирует список объявлений
// listPrefix и viewPrefix различают общий список и список владельца
func BuildPostListScreen(title string, posts []*model.Post, page int, listPrefix, viewPrefix string) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.NewBuilder()
	if len(posts) == 0 {
		return title + "\n\nNo hay anuncios.", b.AddBackToMainButton().Build()
	}

	start, end, current, pages := keyboard.Page(len(posts), page)
	for _, p := range posts[start:end] {
		status := formatting.GetPostStatusDisplay(p.Status)
		label := fmt.Sprintf("%s %s · %s", status.Emoji, truncate(p.Title, 30), formatting.FormatPriceShort(p.Price))
		b.Row(keyboard.Button(label, viewPrefix+string(p.Key())))
	}

	text := fmt.Sprintf("%s\n\nTotal: %d", title, len(posts))
	return text, b.AddPagination(listPrefix, current, pages).AddBackToMainButton().Build()
}

// FormatPost текст карточки объявления
func FormatPost(p *model.Post) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📢 <b>%s</b>\n\n", html.EscapeString(p.Title)))
	sb.WriteString(fmt.Sprintf("💰 Precio: %s / mes\n", formatting.FormatPrice(p.Price)))
	sb.WriteString(fmt.Sprintf("🔐 Depósito: %s\n", formatting.FormatPrice(p.SecurityDeposit)))
	if p.MinimumLeaseTerm != "" || p.MaximumLeaseTerm != "" {
		sb.WriteString(fmt.Sprintf("📆 Plazo: %s - %s\n",
			orDash(p.MinimumLeaseTerm), orDash(p.MaximumLeaseTerm)))
	}
	sb.WriteString(fmt.Sprintf("📊 Estado: %s\n", formatting.GetPostStatusDisplay(p.Status)))
	if addr := p.Address(); addr != "" {
		sb.WriteString(fmt.Sprintf("📍 %s\n", html.EscapeString(addr)))
	}
	if p.RoomDetails != nil {
		sb.WriteString("\n" + formatRoomDetails(p.RoomDetails))
	}
	if p.OwnerInfo != nil && p.OwnerInfo.Name != "" {
		sb.WriteString(fmt.Sprintf("\n👤 Propietario: %s", html.EscapeString(p.OwnerInfo.Name)))
	}
	if p.Description != "" {
		sb.WriteString(fmt.Sprintf("\n\n📝 %s", html.EscapeString(p.Description)))
	}
	return sb.String()
}

// BuildPostDetailScreen карточка объявления для гостя или студента
func BuildPostDetailScreen(p *model.Post, role model.Role) (string, *models.InlineKeyboardMarkup) {
	id := string(p.Key())
	b := keyboard.NewBuilder()
	if role == model.RoleStudent && p.Status == model.PostStatusAvailable {
		b.Row(keyboard.Button("💚 Me interesa", PostInterest+id))
		b.Row(keyboard.Button("✉️ Enviar mensaje", PostMessage+id))
	}
	for i, url := range p.ImageURLs {
		b.Row(keyboard.URLButton(fmt.Sprintf("🖼 Foto %d", i+1), url))
	}
	b.AddBackButton(PostList + "0")
	return FormatPost(p), b.Build()
}

// BuildMyPostScreen карточка объявления владельца
func BuildMyPostScreen(p *model.Post) (string, *models.InlineKeyboardMarkup) {
	id := string(p.Key())
	b := keyboard.NewBuilder()

	var statusButtons []models.InlineKeyboardButton
	for _, st := range model.PostStatuses {
		if st == p.Status {
			continue
		}
		display := formatting.GetPostStatusDisplay(st)
		statusButtons = append(statusButtons, keyboard.Button(display.String(), MyPostStatus+id+":"+string(st)))
	}
	b.Row(statusButtons...)
	b.Row(keyboard.Button("✏️ Editar", MyPostEditMenu+id))
	b.Row(keyboard.DeleteButton(MyPostDelete + id))
	b.AddBackButton(MyPostList + "0")

	return FormatPost(p) + "\n\nEdita, cambia el estado o elimina el anuncio:", b.Build()
}

// ========================
// Комнаты
// ========================

// BuildRoomListScreen формирует список комнат
func BuildRoomListScreen(title string, rooms []*model.Room, page int, listPrefix, viewPrefix string) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.NewBuilder()
	if len(rooms) == 0 {
		return title + "\n\nNo hay habitaciones.", b.AddBackToMainButton().Build()
	}

	start, end, current, pages := keyboard.Page(len(rooms), page)
	for _, r := range rooms[start:end] {
		label := formatting.AvailabilityDisplay(r.Available).Emoji + " " + truncate(r.Address, 40)
		b.Row(keyboard.Button(label, viewPrefix+string(r.Key())))
	}

	text := fmt.Sprintf("%s\n\nTotal: %d", title, len(rooms))
	return text, b.AddPagination(listPrefix, current, pages).AddBackToMainButton().Build()
}

func formatRoomDetails(r *model.Room) string {
	furnished := "No"
	if r.IsFurnished {
		furnished = "Sí"
	}
	text := fmt.Sprintf(
		"📐 Área: %.0f m²\n"+
			"🚿 Baño: %s\n"+
			"🍳 Cocina: %s\n"+
			"🛋 Amueblada: %s",
		r.SquareFootage,
		html.EscapeString(r.BathroomType),
		html.EscapeString(r.KitchenType),
		furnished,
	)
	if len(r.Amenities) > 0 {
		text += "\n✨ " + html.EscapeString(strings.Join(r.Amenities, ", "))
	}
	return text
}

// FormatRoom текст карточки комнаты
func FormatRoom(r *model.Room) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛏 <b>%s</b>\n\n", html.EscapeString(r.Address)))
	sb.WriteString(fmt.Sprintf("📊 %s\n", formatting.AvailabilityDisplay(r.Available)))
	sb.WriteString(formatRoomDetails(r))
	if r.OwnerName != "" {
		sb.WriteString(fmt.Sprintf("\n👤 %s", html.EscapeString(r.OwnerName)))
	}
	if r.Description != "" {
		sb.WriteString(fmt.Sprintf("\n\n📝 %s", html.EscapeString(r.Description)))
	}
	return sb.String()
}

// BuildRoomDetailScreen карточка комнаты из общего списка
func BuildRoomDetailScreen(r *model.Room) (string, *models.InlineKeyboardMarkup) {
	return FormatRoom(r), keyboard.NewBuilder().AddBackButton(RoomList + "0").Build()
}

// BuildMyRoomScreen карточка комнаты владельца
func BuildMyRoomScreen(r *model.Room) (string, *models.InlineKeyboardMarkup) {
	id := string(r.Key())
	toggle := "⏸ Marcar no disponible"
	if !r.Available {
		toggle = "🟢 Marcar disponible"
	}

	b := keyboard.NewBuilder().
		Row(keyboard.Button(toggle, MyRoomToggle+id)).
		Row(keyboard.Button("✏️ Editar", MyRoomEditMenu+id)).
		Row(keyboard.DeleteButton(MyRoomDelete + id)).
		AddBackButton(MyRoomList + "0")
	return FormatRoom(r), b.Build()
}

// ========================
// Платежи
// ========================

// BuildPaymentListScreen формирует список платежей
func BuildPaymentListScreen(role model.Role, payments []*model.Payment) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.NewBuilder()

	var sb strings.Builder
	sb.WriteString("💳 <b>Pagos</b>\n\n")
	if len(payments) == 0 {
		sb.WriteString("No hay pagos registrados.")
	}

	for _, p := range payments {
		id := string(p.ID)
		status := formatting.GetPaymentStatusDisplay(p.Status)
		who := p.StudentName
		if role == model.RoleStudent || who == "" {
			who = p.PostTitle
		}
		sb.WriteString(fmt.Sprintf("%s %s · %s\n", status.Emoji, html.EscapeString(who), formatting.FormatPrice(p.Amount)))

		switch role {
		case model.RoleStudent:
			if !p.IsPaid() {
				b.Row(keyboard.Button(fmt.Sprintf("💳 Pagar %s", formatting.FormatPrice(p.Amount)), PaymentCard+id))
			}
		case model.RoleOwner:
			if p.IsPaid() {
				b.Row(keyboard.Button("🔁 Regenerar: "+truncate(who, 30), PaymentRegenerate+id))
			}
		}
	}

	return sb.String(), b.AddBackToMainButton().Build()
}

// BuildAcceptedScreen заявки с подтверждённой встречей, по которым можно выставить платёж
func BuildAcceptedScreen(reqs []*model.InterestRequest) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.NewBuilder()
	if len(reqs) == 0 {
		return "🤝 <b>Solicitudes aceptadas</b>\n\nNo hay solicitudes aceptadas.", b.AddBackToMainButton().Build()
	}

	for _, req := range reqs {
		label := truncate(req.StudentName+" · "+req.PostTitle, 40)
		b.Row(keyboard.Button("💳 "+label, PaymentRequest+string(req.ID)))
	}
	return "🤝 <b>Solicitudes aceptadas</b>\n\nElige una para solicitar el pago:", b.AddBackToMainButton().Build()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
