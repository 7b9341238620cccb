// AngelaMos | 2026
// dto.go

package settings

// The point awards accept zero so an operator can switch either credit
// off; `required` would reject the zero value on an int.
type UpdateSettingsRequest struct {
	PointsPerReport         int  `json:"points_per_report"          validate:"gte=0,lte=1000"`
	PointsPerResolvedReport int  `json:"points_per_resolved_report" validate:"gte=0,lte=1000"`
	MaxReportsPerDay        int  `json:"max_reports_per_day"        validate:"required,gt=0,lte=100"`
	MaintenanceMode         bool `json:"maintenance_mode"`
}
