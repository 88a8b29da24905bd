package api

import (
	"context"
	"net/http"
)

// RegisterRequest данные регистрации на бэкенде
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserType  string `json:"userType"` // ESTUDIANTE | PROPIETARIO
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Register создаёт пользователя маркетплейса
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   req,
		public: true,
	}, nil)
}

// Login возвращает JWT пользователя
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   loginRequest{Email: email, Password: password},
		public: true,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", ErrEmptyToken
	}
	return resp.Token, nil
}
