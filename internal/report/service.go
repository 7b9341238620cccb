// AngelaMos | 2026
// service.go

package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/smartcityfix/api/internal/core"
	"github.com/smartcityfix/api/internal/points"
	"github.com/smartcityfix/api/internal/settings"
)

var ErrDailyLimit = errors.New("daily report limit reached")

type SettingsProvider interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

type Awarder interface {
	AwardForReport(
		ctx context.Context,
		userID, reportID, reason string,
		amount int,
	) error
}

type Service struct {
	repo     Repository
	settings SettingsProvider
	awarder  Awarder
}

func NewService(
	repo Repository,
	settingsProvider SettingsProvider,
	awarder Awarder,
) *Service {
	return &Service{
		repo:     repo,
		settings: settingsProvider,
		awarder:  awarder,
	}
}

// Create files a new report. Citizen submissions are capped per day and
// earn the configured points; operator submissions (nil userID) skip
// both.
func (s *Service) Create(
	ctx context.Context,
	userID *string,
	req CreateReportRequest,
) (*CreateReportResponse, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if userID != nil {
		count, err := s.repo.CountForUserToday(ctx, *userID)
		if err != nil {
			return nil, err
		}
		if count >= cfg.MaxReportsPerDay {
			return nil, ErrDailyLimit
		}
	}

	report := &Report{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Status:      StatusPending,
	}
	if req.ImageURL != "" {
		report.ImageURL = &req.ImageURL
	}

	var award *Award
	awarded := 0
	if userID != nil && cfg.PointsPerReport > 0 {
		award = &Award{
			HistoryID: uuid.New().String(),
			Amount:    cfg.PointsPerReport,
			Reason:    points.ReasonReportSubmitted,
		}
		awarded = cfg.PointsPerReport
	}

	if err := s.repo.CreateWithAward(ctx, report, award); err != nil {
		return nil, err
	}

	return &CreateReportResponse{
		Report:        ToReportResponse(report),
		PointsAwarded: awarded,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForUser(
	ctx context.Context,
	userID string,
) ([]Report, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *Service) ListAll(
	ctx context.Context,
	params ListReportsParams,
) ([]Report, int, error) {
	return s.repo.ListAll(ctx, params)
}

// SetStatus moves a report through triage. A missing report is treated
// as already handled and succeeds with a nil result. The transition
// into resolved credits the submitter the configured bonus.
func (s *Service) SetStatus(
	ctx context.Context,
	id, status string,
) (*Report, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf(
			"set status: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	report, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// Repeating the current status still bumps updated_at; the award
	// guard below keys off the prior status so resolved stays idempotent.
	rows, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, nil
	}

	if status == StatusResolved && !report.IsResolved() &&
		report.UserID != nil {
		s.awardResolution(ctx, *report.UserID, report.ID)
	}

	report.Status = status
	return report, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) awardResolution(ctx context.Context, userID, reportID string) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		slog.Warn("resolution award skipped, settings unavailable",
			"report_id", reportID,
			"error", err,
		)
		return
	}

	if cfg.PointsPerResolvedReport <= 0 {
		return
	}

	err = s.awarder.AwardForReport(
		ctx,
		userID,
		reportID,
		points.ReasonReportResolved,
		cfg.PointsPerResolvedReport,
	)
	if err != nil {
		slog.Warn("resolution award failed",
			"report_id", reportID,
			"user_id", userID,
			"error", err,
		)
	}
}
