package common

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/scheduling"
	"github.com/Freeeeeet/rental_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoSession     = errors.New("user has no session")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrDialogExpired = errors.New("dialog data is missing")
)

// SessionExpiredMessage текст при отклонённом или просроченном токене
const SessionExpiredMessage = "🔒 Tu sesión expiró, vuelve a iniciar sesión"

// PastSlotMessage текст при выборе слота в прошлом
const PastSlotMessage = "❌ No puedes seleccionar una fecha u hora que ya ha pasado."

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var apiErr *api.Error

	switch {
	case errors.Is(err, ErrNoSession):
		return "🔑 Primero inicia sesión con /login"
	case errors.Is(err, api.ErrUnauthorized):
		return SessionExpiredMessage
	case errors.Is(err, api.ErrForbidden):
		return "⛔ No tienes permiso para realizar esta acción"
	case errors.Is(err, api.ErrUnavailable):
		return "⚠️ El servidor no está disponible. Inténtalo más tarde"
	case errors.Is(err, scheduling.ErrSlotInPast):
		return PastSlotMessage
	case errors.Is(err, scheduling.ErrSlotNotOffered):
		return "❌ Ese horario no forma parte de la disponibilidad propuesta"
	case errors.Is(err, scheduling.ErrInFlight):
		return "⏳ La solicitud ya se está enviando, espera un momento"
	case errors.Is(err, scheduling.ErrInvalidTransition):
		return "❌ La solicitud ya cambió. Pulsa 🔄 Actualizar"
	case errors.Is(err, scheduling.ErrViewClosed), errors.Is(err, service.ErrViewNotOpen):
		return "❌ Esta tarjeta ya no está activa. Ábrela de nuevo"
	case errors.Is(err, scheduling.ErrInvalidDateRange):
		return "❌ La fecha de inicio no puede ser posterior a la fecha de fin"
	case errors.Is(err, scheduling.ErrInvalidTimeRange):
		return "❌ La hora de inicio debe ser anterior a la hora de fin"
	case errors.Is(err, scheduling.ErrInvalidDuration):
		return "❌ Duración de la cita no válida"
	case errors.Is(err, scheduling.ErrNoProposal):
		return "❌ El propietario aún no ha propuesto disponibilidad"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "❌ Correo o contraseña incorrectos"
	case errors.Is(err, service.ErrOwnerOnly):
		return "❌ Esta función es solo para propietarios"
	case errors.Is(err, service.ErrStudentOnly):
		return "❌ Esta función es solo para estudiantes"
	case errors.Is(err, service.ErrInvalidEmail):
		return "❌ Correo electrónico no válido"
	case errors.Is(err, service.ErrPasswordTooShort):
		return fmt.Sprintf("❌ La contraseña debe tener al menos %d caracteres", service.PasswordMinLength)
	case errors.Is(err, service.ErrNameRequired):
		return "❌ El nombre y el apellido son obligatorios"
	case errors.Is(err, service.ErrInvalidRoom):
		return "❌ Datos de la habitación no válidos"
	case errors.Is(err, service.ErrInvalidPost):
		return "❌ Datos del anuncio no válidos"
	case errors.Is(err, service.ErrInvalidCard):
		return "❌ Completa todos los datos de la tarjeta"
	case errors.Is(err, service.ErrAlreadyPaid):
		return "✅ Este pago ya fue realizado"
	case errors.Is(err, service.ErrNotPaid):
		return "❌ El pago aún no ha sido realizado"
	case errors.Is(err, model.ErrUnknownRole):
		return "❌ Rol de usuario desconocido"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Formato de datos no válido"
	case errors.Is(err, ErrDialogExpired):
		return "❌ El formulario expiró. Empieza de nuevo"
	case errors.Is(err, ErrNoMessage):
		return "❌ Error al procesar el mensaje"
	case errors.Is(err, api.ErrNotFound):
		return "❌ No encontrado"
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return "❌ " + apiErr.Message
	default:
		return "❌ Ocurrió un error. Inténtalo de nuevo"
	}
}
