// AngelaMos | 2026
// repository.go

package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/smartcityfix/api/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]CategoryWithCount, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// List joins on the report's category name so counts survive renames of
// a category's icon without touching existing reports.
func (r *repository) List(ctx context.Context) ([]CategoryWithCount, error) {
	query := `
		SELECT c.id, c.name, c.description, c.icon, c.created_at,
		       COUNT(rep.id) AS report_count
		FROM categories c
		LEFT JOIN reports rep ON rep.category = c.name
		GROUP BY c.id, c.name, c.description, c.icon, c.created_at
		ORDER BY c.name ASC`

	var categories []CategoryWithCount
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Category, error) {
	query := `
		SELECT id, name, description, icon, created_at
		FROM categories
		WHERE id = $1`

	var category Category
	err := r.db.GetContext(ctx, &category, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &category, nil
}

func (r *repository) Create(ctx context.Context, category *Category) error {
	query := `
		INSERT INTO categories (id, name, description, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &category.CreatedAt, query,
		category.ID,
		category.Name,
		category.Description,
		category.Icon,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *repository) Update(ctx context.Context, category *Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, icon = $4
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.Icon,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update category: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
