// AngelaMos | 2026
// service_test.go

package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	totals Totals
}

func (f *fakeRepo) Totals(_ context.Context) (*Totals, error) {
	copied := f.totals
	return &copied, nil
}

func TestPortalStats(t *testing.T) {
	svc := NewService(&fakeRepo{totals: Totals{
		TotalUsers:        4,
		TotalReports:      12,
		PendingReports:    5,
		InProgressReports: 3,
		ResolvedReports:   4,
		TotalPoints:       260,
	}})

	got, err := svc.PortalStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, got.TotalUsers)
	assert.Equal(t, 12, got.TotalReports)
	assert.Equal(t, 260, got.TotalPoints)
	assert.InDelta(t, 65.0, got.AveragePointsPerUser, 0.001)
}

func TestPortalStatsNoUsers(t *testing.T) {
	svc := NewService(&fakeRepo{})

	got, err := svc.PortalStats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, got.TotalUsers)
	assert.Zero(t, got.AveragePointsPerUser)
}
