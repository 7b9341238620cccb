// AngelaMos | 2026
// entity.go

package report

import (
	"time"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// Report is a citizen-submitted issue. UserID is nil for reports filed
// by the operator, which earn no points.
type Report struct {
	ID          string    `db:"id"`
	UserID      *string   `db:"user_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Location    string    `db:"location"`
	ImageURL    *string   `db:"image_url"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r *Report) IsResolved() bool {
	return r.Status == StatusResolved
}
