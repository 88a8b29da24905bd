package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/session"
	"go.uber.org/zap"
)

const PasswordMinLength = 6

// RegisterInput данные формы регистрации
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      model.Role
}

// AuthService вход, регистрация и выход пользователей бота
type AuthService struct {
	api      *api.Client
	sessions *session.Manager
	logger   *zap.Logger
}

func NewAuthService(client *api.Client, sessions *session.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		api:      client,
		sessions: sessions,
		logger:   logger,
	}
}

// Login получает токен на бэкенде и сохраняет сессию
func (s *AuthService) Login(ctx context.Context, telegramID int64, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, ErrInvalidCredentials
	}

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.Message)
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	sess, err := s.sessions.Set(ctx, telegramID, token)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	s.logger.Info("User logged in",
		zap.Int64("telegram_id", telegramID),
		zap.String("role", sess.Role.String()))

	return sess, nil
}

// Register создаёт пользователя на бэкенде, вход выполняется отдельно
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	if in.FirstName == "" || in.LastName == "" {
		return ErrNameRequired
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if len(in.Password) < PasswordMinLength {
		return ErrPasswordTooShort
	}
	if !in.Role.Valid() {
		return model.ErrUnknownRole
	}

	err := s.api.Register(ctx, api.RegisterRequest{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
		UserType:  in.Role.UserType(),
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	s.logger.Info("User registered", zap.String("role", in.Role.String()))
	return nil
}

// Logout удаляет сессию пользователя
func (s *AuthService) Logout(ctx context.Context, telegramID int64) error {
	return s.sessions.Clear(ctx, telegramID)
}

// Session действующая сессия пользователя
func (s *AuthService) Session(telegramID int64) (*model.Session, bool) {
	return s.sessions.Get(telegramID)
}

// Expire сбрасывает сессию после ответа 401 от бэкенда
func (s *AuthService) Expire(ctx context.Context, telegramID int64) {
	if err := s.sessions.Clear(ctx, telegramID); err != nil {
		s.logger.Warn("Failed to clear expired session",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}
}

// ValidateEmail проверяет адрес почты
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}
