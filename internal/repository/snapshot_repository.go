package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/rental_bot/internal/model"
	"github.com/Freeeeeet/rental_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotRepository последние известные состояния заявок по пользователям
type SnapshotRepository struct {
	*base.Repository
}

func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{Repository: base.NewRepository(pool)}
}

// ListByUser возвращает снимки заявок пользователя по id заявки
func (r *SnapshotRepository) ListByUser(ctx context.Context, telegramID int64) (map[model.ID]*model.InterestSnapshot, error) {
	query := `
		SELECT telegram_id, interest_id, status, has_proposal, confirmed, updated_at
		FROM interest_snapshots
		WHERE telegram_id = $1
	`

	rows, err := r.Pool().Query(ctx, query, telegramID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make(map[model.ID]*model.InterestSnapshot)
	for rows.Next() {
		var (
			s          model.InterestSnapshot
			interestID string
			status     string
		)
		if err := rows.Scan(&s.TelegramID, &interestID, &status, &s.HasProposal, &s.Confirmed, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.InterestID = model.ID(interestID)
		s.Status = model.InterestStatus(status)
		snapshots[s.InterestID] = &s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}

	return snapshots, nil
}

// Replace заменяет все снимки пользователя одним набором в транзакции
func (r *SnapshotRepository) Replace(ctx context.Context, telegramID int64, snapshots []*model.InterestSnapshot) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM interest_snapshots WHERE telegram_id = $1`, telegramID); err != nil {
			return fmt.Errorf("clear snapshots: %w", err)
		}

		if len(snapshots) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, s := range snapshots {
			batch.Queue(`
				INSERT INTO interest_snapshots (telegram_id, interest_id, status, has_proposal, confirmed)
				VALUES ($1, $2, $3, $4, $5)
			`, telegramID, s.InterestID.String(), string(s.Status), s.HasProposal, s.Confirmed)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert snapshots: %w", err)
		}
		return nil
	})
}

// DeleteByUser удаляет снимки пользователя
func (r *SnapshotRepository) DeleteByUser(ctx context.Context, telegramID int64) (int64, error) {
	n, err := base.ExecAffected(ctx, r.Pool(), `DELETE FROM interest_snapshots WHERE telegram_id = $1`, telegramID)
	if err != nil {
		return 0, fmt.Errorf("delete snapshots: %w", err)
	}
	return n, nil
}
