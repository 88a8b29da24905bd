package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/rental_bot/internal/api"
	"github.com/Freeeeeet/rental_bot/internal/model"
	"go.uber.org/zap"
)

// Ограничения формы комнаты
const (
	RoomDescriptionMinLength = 10
	RoomAddressMinLength     = 5
	RoomMaxSquareFootage     = 10_000
)

// RoomService комнаты владельцев
type RoomService struct {
	api    *api.Client
	logger *zap.Logger
}

func NewRoomService(client *api.Client, logger *zap.Logger) *RoomService {
	return &RoomService{
		api:    client,
		logger: logger,
	}
}

// List все комнаты
func (s *RoomService) List(ctx context.Context) ([]*model.Room, error) {
	return s.api.ListRooms(ctx)
}

// Mine комнаты владельца
func (s *RoomService) Mine(ctx context.Context, role model.Role) ([]*model.Room, error) {
	if role != model.RoleOwner {
		return nil, ErrOwnerOnly
	}
	return s.api.MyRooms(ctx)
}

// Get комната по id
func (s *RoomService) Get(ctx context.Context, id model.ID) (*model.Room, error) {
	return s.api.GetRoom(ctx, id)
}

// Create проверяет форму и создаёт комнату
func (s *RoomService) Create(ctx context.Context, role model.Role, room *model.Room) (*model.Room, error) {
	if role != model.RoleOwner {
		return nil, ErrOwnerOnly
	}
	if err := ValidateRoom(room); err != nil {
		return nil, err
	}

	created, err := s.api.CreateRoom(ctx, room)
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.logger.Info("Room created", zap.String("room_id", created.Key().String()))
	return created, nil
}

// ToggleAvailability переключает доступность комнаты
func (s *RoomService) ToggleAvailability(ctx context.Context, role model.Role, id model.ID) (*model.Room, error) {
	if role != model.RoleOwner {
		return nil, ErrOwnerOnly
	}

	room, err := s.api.GetRoom(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	room.Available = !room.Available

	updated, err := s.api.UpdateRoom(ctx, id, room)
	if err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	return updated, nil
}

// Edit перечитывает комнату, применяет правку и сохраняет её, если форма осталась корректной
func (s *RoomService) Edit(ctx context.Context, role model.Role, id model.ID, edit func(*model.Room)) (*model.Room, error) {
	if role != model.RoleOwner {
		return nil, ErrOwnerOnly
	}

	room, err := s.api.GetRoom(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	edit(room)
	if err := ValidateRoom(room); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateRoom(ctx, id, room)
	if err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}

	s.logger.Info("Room updated", zap.String("room_id", id.String()))
	return updated, nil
}

// Delete удаляет комнату
func (s *RoomService) Delete(ctx context.Context, role model.Role, id model.ID) error {
	if role != model.RoleOwner {
		return ErrOwnerOnly
	}
	if err := s.api.DeleteRoom(ctx, id); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	s.logger.Info("Room deleted", zap.String("room_id", id.String()))
	return nil
}

// ValidateRoom проверяет форму комнаты
func ValidateRoom(room *model.Room) error {
	if room == nil {
		return ErrInvalidRoom
	}
	if len([]rune(strings.TrimSpace(room.Description))) < RoomDescriptionMinLength {
		return fmt.Errorf("%w: description is too short", ErrInvalidRoom)
	}
	if len([]rune(strings.TrimSpace(room.Address))) < RoomAddressMinLength {
		return fmt.Errorf("%w: address is too short", ErrInvalidRoom)
	}
	if room.SquareFootage <= 0 || room.SquareFootage > RoomMaxSquareFootage {
		return fmt.Errorf("%w: square footage out of range", ErrInvalidRoom)
	}
	if !contains(model.BathroomTypes, room.BathroomType) {
		return fmt.Errorf("%w: unknown bathroom type", ErrInvalidRoom)
	}
	if !contains(model.KitchenTypes, room.KitchenType) {
		return fmt.Errorf("%w: unknown kitchen type", ErrInvalidRoom)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
