// AngelaMos | 2026
// service_test.go

package points

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcityfix/api/internal/core"
)

type fakeRepo struct {
	total   int
	entries []HistoryEntry
}

func (f *fakeRepo) Award(_ context.Context, entry *HistoryEntry) (int, error) {
	f.total += entry.Amount
	f.entries = append(f.entries, *entry)
	return f.total, nil
}

func (f *fakeRepo) ListForUser(
	_ context.Context,
	userID string,
	_ int,
) ([]HistoryEntry, error) {
	var out []HistoryEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestAward(t *testing.T) {
	repo := &fakeRepo{total: 30}
	svc := NewService(repo)

	resp, err := svc.Award(context.Background(), "user-1", AwardPointsRequest{
		Points: 15,
		GameID: "trivia",
	})
	require.NoError(t, err)

	assert.Equal(t, 15, resp.Points)
	assert.Equal(t, 45, resp.Total)

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, ReasonGame, entry.Reason)
	require.NotNil(t, entry.GameID)
	assert.Equal(t, "trivia", *entry.GameID)
	assert.Nil(t, entry.ReportID)
}

func TestAwardWithoutGameID(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.Award(context.Background(), "user-1", AwardPointsRequest{
		Points: 5,
	})
	require.NoError(t, err)

	require.Len(t, repo.entries, 1)
	assert.Nil(t, repo.entries[0].GameID)
}

func TestAwardRejectsNonPositive(t *testing.T) {
	svc := NewService(&fakeRepo{})

	for _, amount := range []int{0, -5} {
		_, err := svc.Award(context.Background(), "user-1", AwardPointsRequest{
			Points: amount,
		})
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	}
}

func TestAwardForReport(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	err := svc.AwardForReport(
		context.Background(),
		"user-1",
		"report-1",
		ReasonReportResolved,
		20,
	)
	require.NoError(t, err)

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, 20, entry.Amount)
	assert.Equal(t, ReasonReportResolved, entry.Reason)
	require.NotNil(t, entry.ReportID)
	assert.Equal(t, "report-1", *entry.ReportID)
}

func TestAwardForReportZeroAmountNoOp(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	err := svc.AwardForReport(
		context.Background(),
		"user-1",
		"report-1",
		ReasonReportSubmitted,
		0,
	)
	require.NoError(t, err)
	assert.Empty(t, repo.entries)
}
