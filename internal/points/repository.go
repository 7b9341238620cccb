// AngelaMos | 2026
// repository.go

package points

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smartcityfix/api/internal/core"
)

type Repository interface {
	// Award credits the user's balance and records the history row in a
	// single transaction. It returns the new balance.
	Award(ctx context.Context, entry *HistoryEntry) (int, error)
	ListForUser(
		ctx context.Context,
		userID string,
		limit int,
	) ([]HistoryEntry, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Award(
	ctx context.Context,
	entry *HistoryEntry,
) (int, error) {
	var newTotal int

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		creditQuery := `
			UPDATE users
			SET points = points + $2, updated_at = NOW()
			WHERE id = $1
			RETURNING points`

		err := tx.GetContext(ctx, &newTotal, creditQuery,
			entry.UserID,
			entry.Amount,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("credit points: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("credit points: %w", err)
		}

		historyQuery := `
			INSERT INTO points_history (
				id, user_id, amount, reason, report_id, game_id
			) VALUES (
				$1, $2, $3, $4, $5, $6
			)
			RETURNING created_at`

		err = tx.GetContext(ctx, &entry.CreatedAt, historyQuery,
			entry.ID,
			entry.UserID,
			entry.Amount,
			entry.Reason,
			entry.ReportID,
			entry.GameID,
		)
		if err != nil {
			return fmt.Errorf("record points history: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return newTotal, nil
}

func (r *repository) ListForUser(
	ctx context.Context,
	userID string,
	limit int,
) ([]HistoryEntry, error) {
	query := `
		SELECT id, user_id, amount, reason, report_id, game_id, created_at
		FROM points_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	var entries []HistoryEntry
	if err := r.db.SelectContext(ctx, &entries, query, userID, limit); err != nil {
		return nil, fmt.Errorf("list points history: %w", err)
	}

	return entries, nil
}
