// AngelaMos | 2026
// service.go

package points

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/smartcityfix/api/internal/core"
)

const historyLimit = 100

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Award credits game points to a user. The amount must be positive; the
// report lifecycle credits its own points through AwardForReport.
func (s *Service) Award(
	ctx context.Context,
	userID string,
	req AwardPointsRequest,
) (*AwardPointsResponse, error) {
	if req.Points <= 0 {
		return nil, fmt.Errorf(
			"award points: amount must be positive: %w",
			core.ErrInvalidInput,
		)
	}

	entry := &HistoryEntry{
		ID:     uuid.New().String(),
		UserID: userID,
		Amount: req.Points,
		Reason: ReasonGame,
	}
	if req.GameID != "" {
		entry.GameID = &req.GameID
	}

	total, err := s.repo.Award(ctx, entry)
	if err != nil {
		return nil, err
	}

	return &AwardPointsResponse{
		Points: req.Points,
		Total:  total,
	}, nil
}

// AwardForReport credits points tied to a report lifecycle event.
func (s *Service) AwardForReport(
	ctx context.Context,
	userID, reportID, reason string,
	amount int,
) error {
	if amount <= 0 {
		return nil
	}

	entry := &HistoryEntry{
		ID:       uuid.New().String(),
		UserID:   userID,
		Amount:   amount,
		Reason:   reason,
		ReportID: &reportID,
	}

	if _, err := s.repo.Award(ctx, entry); err != nil {
		return fmt.Errorf("award for report: %w", err)
	}

	return nil
}

func (s *Service) History(
	ctx context.Context,
	userID string,
) (*HistoryResponse, error) {
	entries, err := s.repo.ListForUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}

	resp := toHistoryResponse(entries)
	return &resp, nil
}
