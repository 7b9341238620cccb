// AngelaMos | 2026
// entity.go

package settings

import (
	"time"
)

// Settings is a singleton. A missing row means the portal runs on
// defaults until an admin saves a change.
type Settings struct {
	PointsPerReport         int       `db:"points_per_report"          json:"points_per_report"`
	PointsPerResolvedReport int       `db:"points_per_resolved_report" json:"points_per_resolved_report"`
	MaxReportsPerDay        int       `db:"max_reports_per_day"        json:"max_reports_per_day"`
	MaintenanceMode         bool      `db:"maintenance_mode"           json:"maintenance_mode"`
	UpdatedAt               time.Time `db:"updated_at"                 json:"updated_at"`
}

func Defaults() Settings {
	return Settings{
		PointsPerReport:         10,
		PointsPerResolvedReport: 20,
		MaxReportsPerDay:        10,
		MaintenanceMode:         false,
	}
}
