package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/model"
	"go.uber.org/zap"
)

var ErrNoSession = errors.New("no active session")

// Store постоянное хранилище сессий
type Store interface {
	Save(ctx context.Context, s *model.Session) error
	Delete(ctx context.Context, telegramID int64) error
	List(ctx context.Context) ([]*model.Session, error)
}

// Manager единственное место, где живут токены пользователей.
// Init восстанавливает сессии при старте, Set вызывается при входе, Clear при выходе.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*model.Session // telegramID -> Session
	store    Store
	logger   *zap.Logger
	now      func() time.Time
}

// NewManager создаёт менеджер сессий
func NewManager(store Store, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[int64]*model.Session),
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// Init загружает сохранённые сессии, просроченные удаляет
func (m *Manager) Init(ctx context.Context) error {
	stored, err := m.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	now := m.now()
	restored := make(map[int64]*model.Session, len(stored))
	for _, s := range stored {
		if s.Expired(now) {
			if err := m.store.Delete(ctx, s.TelegramID); err != nil {
				m.logger.Warn("Failed to delete expired session",
					zap.Int64("telegram_id", s.TelegramID),
					zap.Error(err))
			}
			continue
		}
		restored[s.TelegramID] = s
	}

	m.mu.Lock()
	m.sessions = restored
	m.mu.Unlock()

	m.logger.Info("Sessions restored",
		zap.Int("restored", len(restored)),
		zap.Int("expired", len(stored)-len(restored)))

	return nil
}

// Set сохраняет токен после успешного входа
func (m *Manager) Set(ctx context.Context, telegramID int64, token string) (*model.Session, error) {
	claims, err := ParseClaims(token)
	if err != nil {
		return nil, err
	}

	now := m.now()
	s := &model.Session{
		TelegramID: telegramID,
		Token:      token,
		Email:      claims.Email,
		Role:       claims.Role,
		ExpiresAt:  claims.ExpiresAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if s.Expired(now) {
		return nil, fmt.Errorf("%w: token already expired", ErrInvalidToken)
	}

	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	m.mu.Lock()
	m.sessions[telegramID] = s
	m.mu.Unlock()

	m.logger.Info("Session started",
		zap.Int64("telegram_id", telegramID),
		zap.String("role", s.Role.String()))

	return copySession(s), nil
}

// Clear удаляет сессию пользователя
func (m *Manager) Clear(ctx context.Context, telegramID int64) error {
	m.mu.Lock()
	delete(m.sessions, telegramID)
	m.mu.Unlock()

	if err := m.store.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	m.logger.Info("Session cleared", zap.Int64("telegram_id", telegramID))
	return nil
}

// Get возвращает действующую сессию пользователя
func (m *Manager) Get(telegramID int64) (*model.Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[telegramID]
	m.mu.RUnlock()

	if !ok || s.Expired(m.now()) {
		return nil, false
	}
	return copySession(s), true
}

// All возвращает все действующие сессии
func (m *Manager) All() []*model.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	result := make([]*model.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if !s.Expired(now) {
			result = append(result, copySession(s))
		}
	}
	return result
}

// Bearer возвращает токен пользователя из контекста запроса
func (m *Manager) Bearer(ctx context.Context) (string, bool) {
	telegramID, ok := TelegramIDFrom(ctx)
	if !ok {
		return "", false
	}

	s, ok := m.Get(telegramID)
	if !ok {
		return "", false
	}
	return s.Token, true
}

func copySession(s *model.Session) *model.Session {
	c := *s
	return &c
}

type ctxKey struct{}

// WithTelegramID кладёт в контекст пользователя, от имени которого идут запросы к API
func WithTelegramID(ctx context.Context, telegramID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, telegramID)
}

// TelegramIDFrom достаёт пользователя из контекста
func TelegramIDFrom(ctx context.Context) (int64, bool) {
	telegramID, ok := ctx.Value(ctxKey{}).(int64)
	return telegramID, ok
}
