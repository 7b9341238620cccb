// AngelaMos | 2026
// repository.go

package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/smartcityfix/api/internal/core"
)

// The table holds at most one row, pinned to id 1.
const singletonID = 1

type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Upsert(ctx context.Context, s *Settings) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*Settings, error) {
	query := `
		SELECT points_per_report, points_per_resolved_report,
		       max_reports_per_day, maintenance_mode, updated_at
		FROM settings
		WHERE id = $1`

	var s Settings
	err := r.db.GetContext(ctx, &s, query, singletonID)
	if errors.Is(err, sql.ErrNoRows) {
		defaults := Defaults()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &s, nil
}

func (r *repository) Upsert(ctx context.Context, s *Settings) error {
	query := `
		INSERT INTO settings (
			id, points_per_report, points_per_resolved_report,
			max_reports_per_day, maintenance_mode, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			points_per_report = EXCLUDED.points_per_report,
			points_per_resolved_report = EXCLUDED.points_per_resolved_report,
			max_reports_per_day = EXCLUDED.max_reports_per_day,
			maintenance_mode = EXCLUDED.maintenance_mode,
			updated_at = NOW()
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &s.UpdatedAt, query,
		singletonID,
		s.PointsPerReport,
		s.PointsPerResolvedReport,
		s.MaxReportsPerDay,
		s.MaintenanceMode,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
