package controller

import (
	"context"
	"sync"

	"github.com/Freeeeeet/rental_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/rental_bot/internal/session"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// senderID telegram ID автора апдейта, 0 если его нет
func senderID(update *models.Update) int64 {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID
	default:
		return 0
	}
}

// Identity кладёт telegram ID автора в контекст, из него API-клиент берёт токен
func Identity(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if id := senderID(update); id != 0 {
			ctx = session.WithTelegramID(ctx, id)
		}
		next(ctx, b, update)
	}
}

// limiterStore лимитеры по пользователям
type limiterStore struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newLimiterStore(perSecond float64, burst int) *limiterStore {
	return &limiterStore{
		limiters: make(map[int64]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

func (s *limiterStore) get(telegramID int64) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[telegramID]
	if !ok {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[telegramID] = limiter
	}
	return limiter
}

// RateLimit отбрасывает апдейты пользователя сверх лимита
func RateLimit(perSecond float64, burst int, logger *zap.Logger) bot.Middleware {
	store := newLimiterStore(perSecond, burst)

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			id := senderID(update)
			if id == 0 || store.get(id).Allow() {
				next(ctx, b, update)
				return
			}

			logger.Warn("Rate limit exceeded", zap.Int64("telegram_id", id))
			if update.CallbackQuery != nil {
				common.AnswerCallback(ctx, b, update.CallbackQuery.ID, "⏳ Demasiadas acciones, espera un momento")
			}
		}
	}
}
