package model

import "time"

// Session авторизация Telegram-пользователя на бэкенде маркетплейса
type Session struct {
	TelegramID int64      `json:"telegram_id"`
	Token      string     `json:"-"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Expired сообщает, что срок действия токена истёк к моменту now
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// IsOwner сообщает, что пользователь владелец жилья
func (s *Session) IsOwner() bool {
	return s.Role == RoleOwner
}
