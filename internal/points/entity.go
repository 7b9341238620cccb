// AngelaMos | 2026
// entity.go

package points

import (
	"time"
)

// Reasons recorded in the points history. The report lifecycle writes
// the first two; the award endpoint writes the third.
const (
	ReasonReportSubmitted = "report submitted"
	ReasonReportResolved  = "report resolved"
	ReasonGame            = "game"
)

type HistoryEntry struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Amount    int       `db:"amount"`
	Reason    string    `db:"reason"`
	ReportID  *string   `db:"report_id"`
	GameID    *string   `db:"game_id"`
	CreatedAt time.Time `db:"created_at"`
}
