package handlers

import (
	"net/http"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/controller/state"
	"github.com/Freeeeeet/rental_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	authService     *service.AuthService
	interestService *service.InterestService
	roomService     *service.RoomService
	postService     *service.PostService
	paymentService  *service.PaymentService
	stateManager    *state.Manager
	location        *time.Location
	httpClient      *http.Client
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	authService *service.AuthService,
	interestService *service.InterestService,
	roomService *service.RoomService,
	postService *service.PostService,
	paymentService *service.PaymentService,
	stateManager *state.Manager,
	loc *time.Location,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		authService:     authService,
		interestService: interestService,
		roomService:     roomService,
		postService:     postService,
		paymentService:  paymentService,
		stateManager:    stateManager,
		location:        loc,
		httpClient:      &http.Client{Timeout: photoDownloadTimeout},
		logger:          logger,
	}
}
