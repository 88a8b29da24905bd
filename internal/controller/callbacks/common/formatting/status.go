package formatting

import "github.com/Freeeeeet/rental_bot/internal/model"

// StatusDisplay отображение статуса: emoji и подпись
type StatusDisplay struct {
	Emoji string
	Text  string
}

func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

// GetInterestStatusDisplay возвращает emoji и текст для статуса заявки
func GetInterestStatusDisplay(status model.InterestStatus) StatusDisplay {
	displays := map[model.InterestStatus]StatusDisplay{
		model.InterestStatusPending:   {"⏳", "Pendiente"},
		model.InterestStatusInContact: {"📅", "Disponibilidad Recibida"},
		model.InterestStatusAccepted:  {"✅", "Cita Confirmada"},
		model.InterestStatusRejected:  {"🚫", "Rechazada"},
		model.InterestStatusClosed:    {"⚫️", "Cerrada"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", string(status)}
}

// GetPostStatusDisplay возвращает emoji и текст для статуса объявления
func GetPostStatusDisplay(status model.PostStatus) StatusDisplay {
	displays := map[model.PostStatus]StatusDisplay{
		model.PostStatusAvailable: {"🟢", "Disponible"},
		model.PostStatusRented:    {"🔴", "Alquilado"},
		model.PostStatusPaused:    {"⏸", "Pausado"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", string(status)}
}

// GetPaymentStatusDisplay возвращает emoji и текст для статуса платежа
func GetPaymentStatusDisplay(status model.PaymentStatus) StatusDisplay {
	if status == model.PaymentStatusPaid {
		return StatusDisplay{"✅", "Pagado"}
	}
	return StatusDisplay{"💳", "Pendiente de pago"}
}

// AvailabilityDisplay доступность комнаты
func AvailabilityDisplay(available bool) StatusDisplay {
	if available {
		return StatusDisplay{"🟢", "Disponible"}
	}
	return StatusDisplay{"⏸", "No disponible"}
}
