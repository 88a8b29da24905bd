package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/scheduling"
	"go.uber.org/zap"
)

// InterestService заявки на объявления и согласование визита
type InterestService struct {
	api    *api.Client
	board  *scheduling.Board
	logger *zap.Logger
}

func NewInterestService(client *api.Client, board *scheduling.Board, logger *zap.Logger) *InterestService {
	return &InterestService{
		api:    client,
		board:  board,
		logger: logger,
	}
}

// Location зона, в которой показываются слоты
func (s *InterestService) Location() *time.Location {
	return s.board.Location()
}

// List заявки пользователя: полученные владельцем или отправленные студентом
func (s *InterestService) List(ctx context.Context, role model.Role) ([]*model.InterestRequest, error) {
	switch role {
	case model.RoleOwner:
		return s.api.ReceivedInterests(ctx)
	case model.RoleStudent:
		return s.api.MyInterests(ctx)
	default:
		return nil, fmt.Errorf("list interests: %w", model.ErrUnknownRole)
	}
}

// Open загружает заявку и открывает её карточку, предыдущая карточка закрывается
func (s *InterestService) Open(ctx context.Context, viewerID int64, id model.ID) (*scheduling.View, error) {
	req, err := s.api.GetInterest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get interest %s: %w", id, err)
	}
	return s.board.Open(viewerID, req), nil
}

// View открытая карточка заявки
func (s *InterestService) View(viewerID int64, id model.ID) (*scheduling.View, error) {
	v, ok := s.board.Get(viewerID, id)
	if !ok {
		return nil, ErrViewNotOpen
	}
	return v, nil
}

// Refresh перечитывает заявку и заменяет состояние открытой карточки
func (s *InterestService) Refresh(ctx context.Context, viewerID int64, id model.ID) (*scheduling.View, error) {
	v, ok := s.board.Get(viewerID, id)
	if !ok {
		return s.Open(ctx, viewerID, id)
	}

	req, err := s.api.GetInterest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get interest %s: %w", id, err)
	}
	if err := v.Replace(req); err != nil {
		return nil, err
	}
	return v, nil
}

// Close закрывает карточку пользователя, поздние ответы бэкенда отбрасываются
func (s *InterestService) Close(viewerID int64) {
	s.board.Close(viewerID)
}

// Propose отправляет окно доступности из открытой карточки владельца
func (s *InterestService) Propose(ctx context.Context, viewerID int64, id model.ID, p scheduling.Proposal) (*model.InterestRequest, error) {
	v, err := s.View(viewerID, id)
	if err != nil {
		return nil, err
	}

	req, err := v.Propose(ctx, p, s.api.ProposeAvailability)
	if errors.Is(err, scheduling.ErrEmptyResponse) {
		req, err = s.reload(ctx, v, id)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Availability proposed",
		zap.Int64("telegram_id", viewerID),
		zap.String("interest_id", id.String()),
		zap.Int("duration_minutes", p.DurationMinutes))

	return req, nil
}

// Confirm подтверждает выбранный студентом слот
func (s *InterestService) Confirm(ctx context.Context, viewerID int64, id model.ID, slot time.Time) (*model.InterestRequest, error) {
	v, err := s.View(viewerID, id)
	if err != nil {
		return nil, err
	}

	req, err := v.Confirm(ctx, slot, s.api.ConfirmAppointment)
	if errors.Is(err, scheduling.ErrEmptyResponse) {
		req, err = s.reload(ctx, v, id)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Appointment confirmed",
		zap.Int64("telegram_id", viewerID),
		zap.String("interest_id", id.String()),
		zap.Time("slot", slot))

	return req, nil
}

// reload перечитывает заявку, когда бэкенд принял действие, но не вернул её в ответе
func (s *InterestService) reload(ctx context.Context, v *scheduling.View, id model.ID) (*model.InterestRequest, error) {
	s.logger.Warn("Empty interest response, reloading", zap.String("interest_id", id.String()))

	req, err := s.api.GetInterest(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get interest %s: %w", id, err)
	}
	if err := v.Replace(req); err != nil {
		return nil, err
	}
	return v.Request(), nil
}

// Express студент откликается на объявление
func (s *InterestService) Express(ctx context.Context, role model.Role, postID model.ID) (*model.InterestRequest, error) {
	if role != model.RoleStudent {
		return nil, ErrStudentOnly
	}
	req, err := s.api.CreateInterest(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("create interest: %w", err)
	}
	return req, nil
}

// Accepted принятые заявки владельца без выставленного платежа
func (s *InterestService) Accepted(ctx context.Context, role model.Role) ([]*model.InterestRequest, error) {
	if role != model.RoleOwner {
		return nil, ErrOwnerOnly
	}
	return s.api.AcceptedInterests(ctx)
}
