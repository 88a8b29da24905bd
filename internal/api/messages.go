package api

import (
	"context"
	"net/http"

	"github.com/Freeeeeet/rental_bot/internal/model"
)

type sendMessageRequest struct {
	PostID model.ID `json:"postId"`
}

// SendMessage отправляет владельцу сообщение по объявлению
func (c *Client) SendMessage(ctx context.Context, postID model.ID) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   postPath(postID),
		body:   sendMessageRequest{PostID: postID},
	}, nil)
}
