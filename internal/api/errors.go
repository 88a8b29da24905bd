package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized нет токена или бэкенд его не принял (401)
	ErrUnauthorized = errors.New("session expired")
	// ErrForbidden у пользователя нет прав на действие (403)
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound сущность не найдена (404)
	ErrNotFound = errors.New("not found")
	// ErrUnavailable бэкенд недоступен или не ответил
	ErrUnavailable = errors.New("backend unavailable")
	// ErrEmptyToken бэкенд не вернул токен при входе
	ErrEmptyToken = errors.New("login response has no token")
)

// Error ответ бэкенда с кодом не из 2xx
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Is сопоставляет коды ответа с общими ошибками
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	default:
		return false
	}
}

// Temporary сообщает, что запрос имеет смысл повторить
func (e *Error) Temporary() bool {
	return e.Status >= http.StatusInternalServerError
}

// Message возвращает текст ошибки от бэкенда, если он есть
func Message(err error) (string, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// errorFromResponse разбирает тело ошибки {"message": "..."}
func errorFromResponse(status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Message
		if msg == "" {
			msg = payload.Error
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) < 300 {
		msg = text
	}

	if msg == "" {
		msg = http.StatusText(status)
	}

	return &Error{Status: status, Message: msg}
}
