package service

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/rental_bot/internal/model"
)

func validRoom() *model.Room {
	return &model.Room{
		Description:   "Cuarto iluminado cerca de la universidad",
		Address:       "Colonia Escalón, San Salvador",
		Available:     true,
		SquareFootage: 18,
		BathroomType:  "Privado",
		KitchenType:   "Compartida",
	}
}

func TestValidateRoom(t *testing.T) {
	assert.NoError(t, ValidateRoom(validRoom()))

	tests := []struct {
		name   string
		mutate func(*model.Room)
	}{
		{"short description", func(r *model.Room) { r.Description = "Cuarto" }},
		{"short address", func(r *model.Room) { r.Address = "SS" }},
		{"zero area", func(r *model.Room) { r.SquareFootage = 0 }},
		{"bathroom", func(r *model.Room) { r.BathroomType = "Jacuzzi" }},
		{"kitchen", func(r *model.Room) { r.KitchenType = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := validRoom()
			tt.mutate(room)
			assert.ErrorIs(t, ValidateRoom(room), ErrInvalidRoom)
		})
	}
}

func TestRoomService_ToggleAvailability(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			room := validRoom()
			room.RoomID = "4"
			_ = json.NewEncoder(w).Encode(room)
		case http.MethodPut:
			var room model.Room
			require.NoError(t, json.NewDecoder(r.Body).Decode(&room))
			assert.False(t, room.Available)
			_ = json.NewEncoder(w).Encode(room)
		}
	})
	svc := NewRoomService(env.client, zap.NewNop())
	ctx := env.login(t, 3, "ROLE_PROPIETARIO")

	room, err := svc.ToggleAvailability(ctx, model.RoleOwner, "4")
	require.NoError(t, err)
	assert.False(t, room.Available)

	_, err = svc.ToggleAvailability(ctx, model.RoleStudent, "4")
	assert.ErrorIs(t, err, ErrOwnerOnly)
}

func TestRoomService_EditKeepsOtherFields(t *testing.T) {
	var puts int32
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			room := validRoom()
			room.RoomID = "4"
			_ = json.NewEncoder(w).Encode(room)
		case http.MethodPut:
			atomic.AddInt32(&puts, 1)
			var room model.Room
			require.NoError(t, json.NewDecoder(r.Body).Decode(&room))
			_ = json.NewEncoder(w).Encode(room)
		}
	})
	svc := NewRoomService(env.client, zap.NewNop())
	ctx := env.login(t, 3, "ROLE_PROPIETARIO")

	room, err := svc.Edit(ctx, model.RoleOwner, "4", func(r *model.Room) {
		r.Address = "Colonia San Benito, San Salvador"
	})
	require.NoError(t, err)
	assert.Equal(t, "Colonia San Benito, San Salvador", room.Address)
	assert.Equal(t, validRoom().Description, room.Description)
	assert.Equal(t, 18.0, room.SquareFootage)

	_, err = svc.Edit(ctx, model.RoleOwner, "4", func(r *model.Room) { r.Description = "corta" })
	assert.ErrorIs(t, err, ErrInvalidRoom)
	assert.Equal(t, int32(1), atomic.LoadInt32(&puts))

	_, err = svc.Edit(ctx, model.RoleStudent, "4", func(*model.Room) {})
	assert.ErrorIs(t, err, ErrOwnerOnly)
}
