// AngelaMos | 2026
// service.go

package settings

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maintenanceCacheKey = "settings:maintenance"
	maintenanceCacheTTL = 30 * time.Second
)

type Service struct {
	repo  Repository
	redis *redis.Client
}

func NewService(repo Repository, redisClient *redis.Client) *Service {
	return &Service{
		repo:  repo,
		redis: redisClient,
	}
}

func (s *Service) Get(ctx context.Context) (*Settings, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Update(
	ctx context.Context,
	req UpdateSettingsRequest,
) (*Settings, error) {
	settings := &Settings{
		PointsPerReport:         req.PointsPerReport,
		PointsPerResolvedReport: req.PointsPerResolvedReport,
		MaxReportsPerDay:        req.MaxReportsPerDay,
		MaintenanceMode:         req.MaintenanceMode,
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	s.invalidateMaintenanceCache(ctx)
	return settings, nil
}

// MaintenanceEnabled implements middleware.MaintenanceChecker. The flag
// sits behind a short redis cache so the write gate does not add a
// database read to every mutating request.
func (s *Service) MaintenanceEnabled(ctx context.Context) (bool, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, maintenanceCacheKey).Result()
		if err == nil {
			return cached == "1", nil
		}
		if err != redis.Nil {
			slog.Debug("maintenance cache read failed", "error", err)
		}
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		return false, err
	}

	if s.redis != nil {
		value := "0"
		if settings.MaintenanceMode {
			value = "1"
		}
		if err := s.redis.Set(
			ctx,
			maintenanceCacheKey,
			value,
			maintenanceCacheTTL,
		).Err(); err != nil {
			slog.Debug("maintenance cache write failed", "error", err)
		}
	}

	return settings.MaintenanceMode, nil
}

func (s *Service) invalidateMaintenanceCache(ctx context.Context) {
	if s.redis == nil {
		return
	}

	if err := s.redis.Del(ctx, maintenanceCacheKey).Err(); err != nil {
		slog.Debug("maintenance cache invalidation failed", "error", err)
	}
}
