package callbacktypes

import (
	"time"

	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	AuthService     *service.AuthService
	InterestService *service.InterestService
	RoomService     *service.RoomService
	PostService     *service.PostService
	PaymentService  *service.PaymentService
	StateManager    *state.Manager
	Location        *time.Location
	Logger          *zap.Logger
	Now             func() time.Time
}

// Clock текущее время в зоне бота
func (h *Handler) Clock() time.Time {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	return now().In(h.Location)
}
