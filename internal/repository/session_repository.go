package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository хранит токены пользователей между перезапусками бота
type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

// Save создаёт или обновляет сессию пользователя
func (r *SessionRepository) Save(ctx context.Context, s *model.Session) error {
	query := `
		INSERT INTO sessions (telegram_id, token, email, role, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE
		SET token = EXCLUDED.token,
		    email = EXCLUDED.email,
		    role = EXCLUDED.role,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.Pool().QueryRow(ctx, query,
		s.TelegramID,
		s.Token,
		s.Email,
		string(s.Role),
		s.ExpiresAt,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// Get получает сессию по Telegram ID
func (r *SessionRepository) Get(ctx context.Context, telegramID int64) (*model.Session, error) {
	query := `
		SELECT telegram_id, token, email, role, expires_at, created_at, updated_at
		FROM sessions
		WHERE telegram_id = $1
	`

	s, err := scanSession(r.Pool().QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Сессии нет
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return s, nil
}

// List возвращает все сохранённые сессии
func (r *SessionRepository) List(ctx context.Context) ([]*model.Session, error) {
	query := `
		SELECT telegram_id, token, email, role, expires_at, created_at, updated_at
		FROM sessions
		ORDER BY telegram_id
	`

	rows, err := r.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

// Delete удаляет сессию вместе со снимками заявок пользователя
func (r *SessionRepository) Delete(ctx context.Context, telegramID int64) error {
	_, err := r.Pool().Exec(ctx, `DELETE FROM sessions WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func scanSession(row pgx.Row) (*model.Session, error) {
	var (
		s    model.Session
		role string
	)

	err := row.Scan(
		&s.TelegramID,
		&s.Token,
		&s.Email,
		&role,
		&s.ExpiresAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Role = model.Role(role)
	return &s, nil
}
