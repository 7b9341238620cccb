// AngelaMos | 2026
// service.go

package stats

import (
	"context"
)

type PortalStats struct {
	TotalUsers           int     `json:"total_users"`
	TotalReports         int     `json:"total_reports"`
	PendingReports       int     `json:"pending_reports"`
	InProgressReports    int     `json:"in_progress_reports"`
	ResolvedReports      int     `json:"resolved_reports"`
	TotalPoints          int     `json:"total_points"`
	AveragePointsPerUser float64 `json:"average_points_per_user"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) PortalStats(ctx context.Context) (*PortalStats, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	average := 0.0
	if totals.TotalUsers > 0 {
		average = float64(totals.TotalPoints) / float64(totals.TotalUsers)
	}

	return &PortalStats{
		TotalUsers:           totals.TotalUsers,
		TotalReports:         totals.TotalReports,
		PendingReports:       totals.PendingReports,
		InProgressReports:    totals.InProgressReports,
		ResolvedReports:      totals.ResolvedReports,
		TotalPoints:          totals.TotalPoints,
		AveragePointsPerUser: average,
	}, nil
}
