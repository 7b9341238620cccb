// AngelaMos | 2026
// entity.go

package category

import (
	"time"
)

type Category struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Icon        string    `db:"icon"`
	CreatedAt   time.Time `db:"created_at"`
}

// CategoryWithCount carries the number of reports filed under the
// category's name.
type CategoryWithCount struct {
	Category
	ReportCount int `db:"report_count"`
}
