package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Freeeeeet/rental_bot/internal/model"
)

type createPaymentRequest struct {
	InterestRequestID model.ID `json:"interestRequestId"`
}

func paymentPath(id model.ID, suffix string) string {
	return "/payments/" + url.PathEscape(id.String()) + suffix
}

// CreatePayment владелец выставляет платёж по принятой заявке
func (c *Client) CreatePayment(ctx context.Context, interestID model.ID) (*model.Payment, error) {
	var out model.Payment
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/payments",
		body:   createPaymentRequest{InterestRequestID: interestID},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmPayment студент оплачивает платёж
func (c *Client) ConfirmPayment(ctx context.Context, id model.ID) (*model.Payment, error) {
	var out model.Payment
	if err := c.do(ctx, request{method: http.MethodPatch, path: paymentPath(id, "/confirm")}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegeneratePayment выставляет новый платёж на основе оплаченного
func (c *Client) RegeneratePayment(ctx context.Context, id model.ID) (*model.Payment, error) {
	var out model.Payment
	if err := c.do(ctx, request{method: http.MethodPost, path: paymentPath(id, "/regenerate")}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyPayments платежи студента
func (c *Client) MyPayments(ctx context.Context) ([]*model.Payment, error) {
	var out []*model.Payment
	if err := c.do(ctx, request{method: http.MethodGet, path: "/payments/mine"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OwnerPayments платежи, выставленные владельцем
func (c *Client) OwnerPayments(ctx context.Context) ([]*model.Payment, error) {
	var out []*model.Payment
	if err := c.do(ctx, request{method: http.MethodGet, path: "/payments/owner/mine"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
