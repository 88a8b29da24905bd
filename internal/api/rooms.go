package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Freeeeeet/rental_bot/internal/model"
)

func roomPath(id model.ID) string {
	return "/room/" + url.PathEscape(id.String())
}

// CreateRoom создаёт комнату владельца
func (c *Client) CreateRoom(ctx context.Context, room *model.Room) (*model.Room, error) {
	var out model.Room
	if err := c.do(ctx, request{method: http.MethodPost, path: "/room/", body: room}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRooms все комнаты
func (c *Client) ListRooms(ctx context.Context) ([]*model.Room, error) {
	var out []*model.Room
	if err := c.do(ctx, request{method: http.MethodGet, path: "/room"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyRooms комнаты текущего владельца
func (c *Client) MyRooms(ctx context.Context) ([]*model.Room, error) {
	var out []*model.Room
	if err := c.do(ctx, request{method: http.MethodGet, path: "/room/my-rooms"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRoom комната по id
func (c *Client) GetRoom(ctx context.Context, id model.ID) (*model.Room, error) {
	var out model.Room
	if err := c.do(ctx, request{method: http.MethodGet, path: roomPath(id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRoom обновляет комнату
func (c *Client) UpdateRoom(ctx context.Context, id model.ID, room *model.Room) (*model.Room, error) {
	var out model.Room
	if err := c.do(ctx, request{method: http.MethodPut, path: roomPath(id), body: room}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRoom удаляет комнату
func (c *Client) DeleteRoom(ctx context.Context, id model.ID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: roomPath(id)}, nil)
}
