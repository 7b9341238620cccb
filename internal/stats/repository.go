// AngelaMos | 2026
// repository.go

package stats

import (
	"context"
	"fmt"

	"github.com/smartcityfix/api/internal/core"
)

type Totals struct {
	TotalUsers        int `db:"total_users"`
	TotalReports      int `db:"total_reports"`
	PendingReports    int `db:"pending_reports"`
	InProgressReports int `db:"in_progress_reports"`
	ResolvedReports   int `db:"resolved_reports"`
	TotalPoints       int `db:"total_points"`
}

type Repository interface {
	Totals(ctx context.Context) (*Totals, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Totals(ctx context.Context) (*Totals, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = 'user')
				AS total_users,
			(SELECT COUNT(*) FROM reports)
				AS total_reports,
			(SELECT COUNT(*) FROM reports WHERE status = 'pending')
				AS pending_reports,
			(SELECT COUNT(*) FROM reports WHERE status = 'in-progress')
				AS in_progress_reports,
			(SELECT COUNT(*) FROM reports WHERE status = 'resolved')
				AS resolved_reports,
			(SELECT COALESCE(SUM(points), 0) FROM users WHERE role = 'user')
				AS total_points`

	var totals Totals
	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("load portal totals: %w", err)
	}

	return &totals, nil
}
