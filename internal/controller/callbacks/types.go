package callbacks

import (
	"context"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Handler with Dependencies
// ========================

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	authService *service.AuthService,
	interestService *service.InterestService,
	roomService *service.RoomService,
	postService *service.PostService,
	paymentService *service.PaymentService,
	stateManager *state.Manager,
	loc *time.Location,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		AuthService:     authService,
		InterestService: interestService,
		RoomService:     roomService,
		PostService:     postService,
		PaymentService:  paymentService,
		StateManager:    stateManager,
		Location:        loc,
		Logger:          logger,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
