package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/session"
	"go.uber.org/zap"
)

// ChangeKind что изменилось в заявке с прошлого опроса
type ChangeKind string

const (
	ChangeNewRequest ChangeKind = "new_request" // владельцу пришла новая заявка
	ChangeProposal   ChangeKind = "proposal"    // студенту предложили окно доступности
	ChangeConfirmed  ChangeKind = "confirmed"   // студент подтвердил визит
	ChangeStatus     ChangeKind = "status"      // бэкенд сменил статус
)

// Change одно изменение заявки для уведомления пользователя
type Change struct {
	Kind     ChangeKind
	Request  *model.InterestRequest
	Previous *model.InterestSnapshot
}

// Notifier доставляет уведомления пользователю
type Notifier interface {
	NotifyChange(ctx context.Context, telegramID int64, change Change) error
	NotifySessionExpired(ctx context.Context, telegramID int64) error
}

// SnapshotStore хранилище последних известных состояний заявок
type SnapshotStore interface {
	ListByUser(ctx context.Context, telegramID int64) (map[model.ID]*model.InterestSnapshot, error)
	Replace(ctx context.Context, telegramID int64, snapshots []*model.InterestSnapshot) error
}

// InterestLister список заявок пользователя по роли
type InterestLister interface {
	List(ctx context.Context, role model.Role) ([]*model.InterestRequest, error)
}

// SessionSource действующие сессии пользователей
type SessionSource interface {
	All() []*model.Session
	Clear(ctx context.Context, telegramID int64) error
}

// WatchService опрашивает заявки пользователей и сообщает об изменениях
type WatchService struct {
	interests InterestLister
	sessions  SessionSource
	snapshots SnapshotStore
	notifier  Notifier
	logger    *zap.Logger

	mu     sync.Mutex
	primed map[int64]bool // пользователи, для которых уже снят первый снимок
}

func NewWatchService(
	interests InterestLister,
	sessions SessionSource,
	snapshots SnapshotStore,
	notifier Notifier,
	logger *zap.Logger,
) *WatchService {
	return &WatchService{
		interests: interests,
		sessions:  sessions,
		snapshots: snapshots,
		notifier:  notifier,
		logger:    logger,
		primed:    make(map[int64]bool),
	}
}

// Poll один проход по всем сессиям
func (s *WatchService) Poll(ctx context.Context) {
	for _, sess := range s.sessions.All() {
		if ctx.Err() != nil {
			return
		}
		s.pollUser(ctx, sess)
	}
}

func (s *WatchService) pollUser(ctx context.Context, sess *model.Session) {
	telegramID := sess.TelegramID
	userCtx := session.WithTelegramID(ctx, telegramID)

	current, err := s.interests.List(userCtx, sess.Role)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.expire(ctx, telegramID)
			return
		}
		s.logger.Warn("Failed to poll interests",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		return
	}

	previous, err := s.snapshots.ListByUser(ctx, telegramID)
	if err != nil {
		s.logger.Error("Failed to load snapshots",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		return
	}

	// Первый снимок после входа или рестарта без сохранённых данных только запоминается
	s.mu.Lock()
	baseline := !s.primed[telegramID] && len(previous) == 0
	s.primed[telegramID] = true
	s.mu.Unlock()

	if !baseline {
		for _, change := range DetectChanges(sess.Role, previous, current) {
			if err := s.notifier.NotifyChange(ctx, telegramID, change); err != nil {
				s.logger.Warn("Failed to notify user",
					zap.Int64("telegram_id", telegramID),
					zap.String("kind", string(change.Kind)),
					zap.Error(err))
			}
		}
	}

	snapshots := make([]*model.InterestSnapshot, 0, len(current))
	for _, req := range current {
		snapshots = append(snapshots, model.SnapshotOf(telegramID, req))
	}
	if err := s.snapshots.Replace(ctx, telegramID, snapshots); err != nil {
		s.logger.Error("Failed to save snapshots",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}
}

func (s *WatchService) expire(ctx context.Context, telegramID int64) {
	s.logger.Info("Session rejected by backend", zap.Int64("telegram_id", telegramID))

	s.mu.Lock()
	delete(s.primed, telegramID)
	s.mu.Unlock()

	if err := s.sessions.Clear(ctx, telegramID); err != nil {
		s.logger.Warn("Failed to clear session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}
	if err := s.notifier.NotifySessionExpired(ctx, telegramID); err != nil {
		s.logger.Warn("Failed to notify about expired session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}
}

// DetectChanges сравнивает текущие заявки со снимками.
// Владельцу интересны новые заявки и подтверждения, студенту предложения, обоим смена статуса.
func DetectChanges(role model.Role, previous map[model.ID]*model.InterestSnapshot, current []*model.InterestRequest) []Change {
	var changes []Change

	for _, req := range current {
		prev, known := previous[req.ID]
		if !known {
			if role == model.RoleOwner {
				changes = append(changes, Change{Kind: ChangeNewRequest, Request: req})
			}
			continue
		}

		switch {
		case role == model.RoleStudent && !prev.HasProposal && req.HasProposal():
			changes = append(changes, Change{Kind: ChangeProposal, Request: req, Previous: prev})
		case role == model.RoleOwner && !prev.Confirmed && req.AppointmentConfirmedByStudent:
			changes = append(changes, Change{Kind: ChangeConfirmed, Request: req, Previous: prev})
		case prev.Status != req.Status:
			changes = append(changes, Change{Kind: ChangeStatus, Request: req, Previous: prev})
		}
	}

	return changes
}
