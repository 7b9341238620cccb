// AngelaMos | 2026
// repository.go

package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/smartcityfix/api/internal/core"
)

// Award describes the points credited alongside a report insert.
type Award struct {
	HistoryID string
	Amount    int
	Reason    string
}

type Repository interface {
	// CreateWithAward inserts the report and, when award is non-nil,
	// credits the submitter and records the history row in the same
	// transaction. The reports counter moves with the insert either way.
	CreateWithAward(ctx context.Context, report *Report, award *Award) error
	GetByID(ctx context.Context, id string) (*Report, error)
	ListForUser(ctx context.Context, userID string) ([]Report, error)
	ListAll(
		ctx context.Context,
		params ListReportsParams,
	) ([]Report, int, error)
	CountForUserToday(ctx context.Context, userID string) (int, error)
	// UpdateStatus returns the number of rows touched; zero means the
	// report no longer exists.
	UpdateStatus(ctx context.Context, id, status string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithAward(
	ctx context.Context,
	report *Report,
	award *Award,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		insertQuery := `
			INSERT INTO reports (
				id, user_id, title, description, category,
				location, image_url, status
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8
			)
			RETURNING created_at, updated_at`

		row := tx.QueryRowxContext(ctx, insertQuery,
			report.ID,
			report.UserID,
			report.Title,
			report.Description,
			report.Category,
			report.Location,
			report.ImageURL,
			report.Status,
		)
		if err := row.Scan(&report.CreatedAt, &report.UpdatedAt); err != nil {
			return fmt.Errorf("create report: %w", err)
		}

		if report.UserID == nil {
			return nil
		}

		counterQuery := `
			UPDATE users
			SET reports_count = reports_count + 1, updated_at = NOW()
			WHERE id = $1`
		if award != nil && award.Amount > 0 {
			counterQuery = `
				UPDATE users
				SET reports_count = reports_count + 1,
				    points = points + $2,
				    updated_at = NOW()
				WHERE id = $1`
		}

		var result sql.Result
		var err error
		if award != nil && award.Amount > 0 {
			result, err = tx.ExecContext(ctx, counterQuery,
				*report.UserID,
				award.Amount,
			)
		} else {
			result, err = tx.ExecContext(ctx, counterQuery, *report.UserID)
		}
		if err != nil {
			return fmt.Errorf("credit submitter: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("credit submitter: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("credit submitter: %w", core.ErrNotFound)
		}

		if award == nil || award.Amount <= 0 {
			return nil
		}

		historyQuery := `
			INSERT INTO points_history (
				id, user_id, amount, reason, report_id
			) VALUES (
				$1, $2, $3, $4, $5
			)`

		_, err = tx.ExecContext(ctx, historyQuery,
			award.HistoryID,
			*report.UserID,
			award.Amount,
			award.Reason,
			report.ID,
		)
		if err != nil {
			return fmt.Errorf("record award: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Report, error) {
	query := `
		SELECT id, user_id, title, description, category, location,
		       image_url, status, created_at, updated_at
		FROM reports
		WHERE id = $1`

	var report Report
	err := r.db.GetContext(ctx, &report, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get report: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	return &report, nil
}

func (r *repository) ListForUser(
	ctx context.Context,
	userID string,
) ([]Report, error) {
	query := `
		SELECT id, user_id, title, description, category, location,
		       image_url, status, created_at, updated_at
		FROM reports
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var reports []Report
	if err := r.db.SelectContext(ctx, &reports, query, userID); err != nil {
		return nil, fmt.Errorf("list user reports: %w", err)
	}

	return reports, nil
}

func (r *repository) ListAll(
	ctx context.Context,
	params ListReportsParams,
) ([]Report, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM reports WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, category, location,
		       image_url, status, created_at, updated_at
		FROM reports
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var reports []Report
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}

	return reports, total, nil
}

func (r *repository) CountForUserToday(
	ctx context.Context,
	userID string,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reports
		WHERE user_id = $1
			AND created_at >= date_trunc('day', NOW())`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count today's reports: %w", err)
	}

	return count, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
) (int64, error) {
	query := `
		UPDATE reports
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return 0, fmt.Errorf("update report status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update report status: %w", err)
	}

	return rows, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reports WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete report: %w", core.ErrNotFound)
	}

	return nil
}
