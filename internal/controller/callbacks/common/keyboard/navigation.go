package keyboard

import "github.com/go-telegram/bot/models"

// Общие callback для навигации
const (
	BackToMainData = "back_to_main"
	NoopData       = "noop"
)

// BackButton создаёт кнопку "Volver"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Volver", callbackData)
}

// BackToMainButton создаёт кнопку "Menú principal"
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 Menú principal", BackToMainData)
}

// CancelButton создаёт кнопку "Cancelar"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Cancelar", callbackData)
}

// ConfirmButton создаёт кнопку "Confirmar"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Confirmar", callbackData)
}

// RefreshButton создаёт кнопку "Actualizar"
func RefreshButton(callbackData string) models.InlineKeyboardButton {
	return Button("🔄 Actualizar", callbackData)
}

// DeleteButton создаёт кнопку "Eliminar"
func DeleteButton(callbackData string) models.InlineKeyboardButton {
	return Button("🗑 Eliminar", callbackData)
}

// ConfirmCancelRow ряд с кнопками Confirmar/Cancelar
func ConfirmCancelRow(confirmCallback, cancelCallback string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		ConfirmButton(confirmCallback),
		CancelButton(cancelCallback),
	}
}

// AddBackButton добавляет кнопку "Volver" к builder
func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

// AddBackToMainButton добавляет кнопку "Menú principal" к builder
func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}
