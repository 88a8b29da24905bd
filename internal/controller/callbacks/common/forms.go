package common

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

// BuildBathroomChoice выбор типа санузла новой комнаты
func BuildBathroomChoice() (string, *models.InlineKeyboardMarkup) {
	return "🚿 <b>Tipo de baño</b>", choiceKeyboard(model.BathroomTypes, NewRoomBath, NewRoomCancel)
}

// BuildKitchenChoice выбор типа кухни новой комнаты
func BuildKitchenChoice() (string, *models.InlineKeyboardMarkup) {
	return "🍳 <b>Tipo de cocina</b>", choiceKeyboard(model.KitchenTypes, NewRoomKitchen, NewRoomCancel)
}

// BuildFurnishedChoice вопрос о мебели
func BuildFurnishedChoice() (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("🛋 Sí", NewRoomFurnish+"1"),
			keyboard.Button("🚫 No", NewRoomFurnish+"0"),
		).
		Row(keyboard.CancelButton(NewRoomCancel)).
		Build()
	return "🛋 <b>¿Está amueblada?</b>", kb
}

func choiceKeyboard(values []string, prefix, cancel string) *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, len(values))
	for i, v := range values {
		buttons = append(buttons, keyboard.Button(v, fmt.Sprintf("%s%d", prefix, i)))
	}
	return keyboard.NewBuilder().
		Grid(2, buttons...).
		Row(keyboard.CancelButton(cancel)).
		Build()
}

// BuildNewRoomPreview итог формы новой комнаты
func BuildNewRoomPreview(room *model.Room) (string, *models.InlineKeyboardMarkup) {
	text := "📋 <b>Revisa la habitación</b>\n\n" + FormatRoom(room) + "\n\n¿Guardar?"
	kb := keyboard.NewBuilder().
		Row(keyboard.ConfirmCancelRow(NewRoomSave, NewRoomCancel)...).
		Build()
	return text, kb
}

// BuildRoomPicker выбор комнаты для нового объявления
func BuildRoomPicker(rooms []*model.Room) (string, *models.InlineKeyboardMarkup) {
	b := keyboard.NewBuilder()
	if len(rooms) == 0 {
		return "🛏 Primero crea una habitación con /newroom", b.AddBackToMainButton().Build()
	}
	for _, r := range rooms {
		b.Row(keyboard.Button("🛏 "+truncate(r.Address, 40), NewPostRoom+string(r.Key())))
	}
	b.Row(keyboard.CancelButton(NewPostCancel))
	return "📢 <b>Nuevo anuncio</b>\n\nElige la habitación:", b.Build()
}

// BuildImagesPrompt просьба прислать фото объявления
func BuildImagesPrompt(count int) (string, *models.InlineKeyboardMarkup) {
	text := "🖼 Envía las fotos del anuncio (una por mensaje).\nCuando termines pulsa «Continuar»."
	label := "⏭ Sin fotos"
	if count > 0 {
		text = fmt.Sprintf("🖼 Fotos recibidas: %d\nEnvía más o pulsa «Continuar».", count)
		label = "✅ Continuar"
	}
	kb := keyboard.NewBuilder().
		Row(keyboard.Button(label, NewPostNoImage)).
		Row(keyboard.CancelButton(NewPostCancel)).
		Build()
	return text, kb
}

// BuildNewPostPreview итог формы нового объявления
func BuildNewPostPreview(in *api.PostInput, images []api.Image) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("📋 <b>Revisa el anuncio</b>\n\n")
	sb.WriteString(fmt.Sprintf("📢 %s\n", html.EscapeString(in.Title)))
	sb.WriteString(fmt.Sprintf("💰 Precio: %s / mes\n", formatting.FormatPrice(in.Price)))
	sb.WriteString(fmt.Sprintf("🔐 Depósito: %s\n", formatting.FormatPrice(in.SecurityDeposit)))
	sb.WriteString(fmt.Sprintf("📆 Plazo: %s - %s\n", orDash(in.MinimumLeaseTerm), orDash(in.MaximumLeaseTerm)))
	sb.WriteString(fmt.Sprintf("🖼 Fotos: %d\n\n¿Publicar?", len(images)))

	kb := keyboard.NewBuilder().
		Row(keyboard.ConfirmCancelRow(NewPostSave, NewPostCancel)...).
		Build()
	return sb.String(), kb
}

// BuildCardConfirm итог формы карты перед оплатой
func BuildCardConfirm(paymentID model.ID, card *service.Card) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"💳 <b>Confirma el pago</b>\n\n"+
			"Tarjeta: %s\n"+
			"Titular: %s\n"+
			"Vence: %s",
		maskCard(card.Number),
		html.EscapeString(card.Holder),
		html.EscapeString(card.Expiry),
	)
	kb := keyboard.NewBuilder().
		Row(keyboard.ConfirmCancelRow(PaymentConfirm+string(paymentID), PaymentCancel)...).
		Build()
	return text, kb
}

// maskCard оставляет видимыми последние 4 символа
func maskCard(number string) string {
	r := []rune(strings.ReplaceAll(number, " ", ""))
	if len(r) <= 4 {
		return html.EscapeString(string(r))
	}
	return "•••• " + html.EscapeString(string(r[len(r)-4:]))
}

// Подсказки к правке полей
var (
	roomFieldPrompts = map[string]string{
		RoomFieldDescription: "📝 Escribe la nueva descripción (mínimo 10 caracteres):",
		RoomFieldAddress:     "📍 Escribe la nueva dirección:",
		RoomFieldArea:        "📐 Escribe la nueva superficie en m² (por ejemplo 12.5):",
		RoomFieldAmenities:   "✨ Escribe los servicios separados por comas o «-» si no hay:",
	}
	postFieldPrompts = map[string]string{
		PostFieldTitle:   "📢 Escribe el nuevo título (5-120 caracteres):",
		PostFieldPrice:   "💰 Escribe el nuevo precio mensual:",
		PostFieldDeposit: "🔐 Escribe el nuevo depósito (0 si no hay):",
		PostFieldMinTerm: "📆 Escribe el plazo mínimo («-» si no hay):",
		PostFieldMaxTerm: "📆 Escribe el plazo máximo («-» si no hay):",
	}
)

// BuildRoomEditMenu выбор поля комнаты для правки
func BuildRoomEditMenu(id model.ID) (string, *models.InlineKeyboardMarkup) {
	prefix := MyRoomEdit + string(id) + ":"
	kb := keyboard.NewBuilder().
		Grid(2,
			keyboard.Button("📝 Descripción", prefix+RoomFieldDescription),
			keyboard.Button("📍 Dirección", prefix+RoomFieldAddress),
			keyboard.Button("📐 Superficie", prefix+RoomFieldArea),
			keyboard.Button("✨ Servicios", prefix+RoomFieldAmenities),
		).
		AddBackButton(MyRoomView + string(id)).
		Build()
	return "✏️ <b>Editar habitación</b>\n\n¿Qué quieres cambiar?", kb
}

// BuildPostEditMenu выбор поля объявления для правки
func BuildPostEditMenu(id model.ID) (string, *models.InlineKeyboardMarkup) {
	prefix := MyPostEdit + string(id) + ":"
	kb := keyboard.NewBuilder().
		Grid(2,
			keyboard.Button("📢 Título", prefix+PostFieldTitle),
			keyboard.Button("💰 Precio", prefix+PostFieldPrice),
			keyboard.Button("🔐 Depósito", prefix+PostFieldDeposit),
			keyboard.Button("📆 Plazo mínimo", prefix+PostFieldMinTerm),
			keyboard.Button("📆 Plazo máximo", prefix+PostFieldMaxTerm),
		).
		AddBackButton(MyPostView + string(id)).
		Build()
	return "✏️ <b>Editar anuncio</b>\n\n¿Qué quieres cambiar?", kb
}

// BuildRoomFieldPrompt просит новое значение поля комнаты
func BuildRoomFieldPrompt(id model.ID, field string) (string, *models.InlineKeyboardMarkup, bool) {
	text, ok := roomFieldPrompts[field]
	if !ok {
		return "", nil, false
	}
	kb := keyboard.NewBuilder().Row(keyboard.CancelButton(MyRoomEditStop + string(id))).Build()
	return text, kb, true
}

// BuildPostFieldPrompt просит новое значение поля объявления
func BuildPostFieldPrompt(id model.ID, field string) (string, *models.InlineKeyboardMarkup, bool) {
	text, ok := postFieldPrompts[field]
	if !ok {
		return "", nil, false
	}
	kb := keyboard.NewBuilder().Row(keyboard.CancelButton(MyPostEditStop + string(id))).Build()
	return text, kb, true
}
