// AngelaMos | 2026
// service_test.go

package report

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcityfix/api/internal/core"
	"github.com/smartcityfix/api/internal/points"
	"github.com/smartcityfix/api/internal/settings"
)

type fakeRepo struct {
	reports       map[string]*Report
	todayCount    int
	lastAward     *Award
	statusUpdates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reports: make(map[string]*Report)}
}

func (f *fakeRepo) CreateWithAward(
	_ context.Context,
	report *Report,
	award *Award,
) error {
	copied := *report
	f.reports[report.ID] = &copied
	f.lastAward = award
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Report, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, fmt.Errorf("get report: %w", core.ErrNotFound)
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepo) ListForUser(
	_ context.Context,
	userID string,
) ([]Report, error) {
	var out []Report
	for _, r := range f.reports {
		if r.UserID != nil && *r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(
	_ context.Context,
	_ ListReportsParams,
) ([]Report, int, error) {
	var out []Report
	for _, r := range f.reports {
		out = append(out, *r)
	}
	return out, len(out), nil
}

func (f *fakeRepo) CountForUserToday(
	_ context.Context,
	_ string,
) (int, error) {
	return f.todayCount, nil
}

func (f *fakeRepo) UpdateStatus(
	_ context.Context,
	id, status string,
) (int64, error) {
	r, ok := f.reports[id]
	if !ok {
		return 0, nil
	}
	f.statusUpdates++
	r.Status = status
	return 1, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.reports[id]; !ok {
		return fmt.Errorf("delete report: %w", core.ErrNotFound)
	}
	delete(f.reports, id)
	return nil
}

type fakeSettings struct {
	cfg *settings.Settings
	err error
}

func (f *fakeSettings) Get(_ context.Context) (*settings.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cfg, nil
}

type awardCall struct {
	userID   string
	reportID string
	reason   string
	amount   int
}

type fakeAwarder struct {
	calls []awardCall
	err   error
}

func (f *fakeAwarder) AwardForReport(
	_ context.Context,
	userID, reportID, reason string,
	amount int,
) error {
	f.calls = append(f.calls, awardCall{userID, reportID, reason, amount})
	return f.err
}

func defaultSettings() *settings.Settings {
	return &settings.Settings{
		PointsPerReport:         10,
		PointsPerResolvedReport: 20,
		MaxReportsPerDay:        3,
	}
}

func validRequest() CreateReportRequest {
	return CreateReportRequest{
		Title:       "Broken streetlight",
		Description: "The light on Main St has been out for a week.",
		Category:    "Streetlight",
		Location:    "Main St & 4th Ave",
	}
}

func strPtr(s string) *string { return &s }

func TestCreateCitizenAwardsPoints(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeSettings{cfg: defaultSettings()}, &fakeAwarder{})

	resp, err := svc.Create(context.Background(), strPtr("user-1"), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 10, resp.PointsAwarded)
	assert.Equal(t, StatusPending, resp.Report.Status)
	require.NotNil(t, repo.lastAward)
	assert.Equal(t, 10, repo.lastAward.Amount)
	assert.Equal(t, points.ReasonReportSubmitted, repo.lastAward.Reason)
}

func TestCreateCitizenDailyLimit(t *testing.T) {
	repo := newFakeRepo()
	repo.todayCount = 3
	svc := NewService(repo, &fakeSettings{cfg: defaultSettings()}, &fakeAwarder{})

	_, err := svc.Create(context.Background(), strPtr("user-1"), validRequest())
	assert.ErrorIs(t, err, ErrDailyLimit)
	assert.Empty(t, repo.reports)
}

func TestCreateOperatorSkipsCapAndPoints(t *testing.T) {
	repo := newFakeRepo()
	repo.todayCount = 999
	svc := NewService(repo, &fakeSettings{cfg: defaultSettings()}, &fakeAwarder{})

	resp, err := svc.Create(context.Background(), nil, validRequest())
	require.NoError(t, err)

	assert.Zero(t, resp.PointsAwarded)
	assert.Nil(t, repo.lastAward)
	assert.Nil(t, resp.Report.UserID)
}

func TestCreateZeroPointsPerReport(t *testing.T) {
	cfg := defaultSettings()
	cfg.PointsPerReport = 0
	repo := newFakeRepo()
	svc := NewService(repo, &fakeSettings{cfg: cfg}, &fakeAwarder{})

	resp, err := svc.Create(context.Background(), strPtr("user-1"), validRequest())
	require.NoError(t, err)

	assert.Zero(t, resp.PointsAwarded)
	assert.Nil(t, repo.lastAward)
}

func TestSetStatusInvalid(t *testing.T) {
	svc := NewService(
		newFakeRepo(),
		&fakeSettings{cfg: defaultSettings()},
		&fakeAwarder{},
	)

	_, err := svc.SetStatus(context.Background(), "r-1", "closed")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestSetStatusMissingReport(t *testing.T) {
	svc := NewService(
		newFakeRepo(),
		&fakeSettings{cfg: defaultSettings()},
		&fakeAwarder{},
	)

	report, err := svc.SetStatus(context.Background(), "gone", StatusResolved)
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestSetStatusSameStatusStillTouchesRow(t *testing.T) {
	repo := newFakeRepo()
	repo.reports["r-1"] = &Report{
		ID:     "r-1",
		UserID: strPtr("user-1"),
		Status: StatusPending,
	}
	awarder := &fakeAwarder{}
	svc := NewService(repo, &fakeSettings{cfg: defaultSettings()}, awarder)

	report, err := svc.SetStatus(context.Background(), "r-1", StatusPending)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, report.Status)
	assert.Equal(t, 1, repo.statusUpdates)
	assert.Empty(t, awarder.calls)
}

func TestSetStatusResolvedTwiceAwardsOnce(t *testing.T) {
	repo := newFakeRepo()
	repo.reports["r-1"] = &Report{
		ID:     "r-1",
		UserID: strPtr("user-1"),
		Status: StatusPending,
	}
	awarder := &fakeAwarder{}
	svc := NewService(repo, &fakeSettings{cfg: defaultSettings()}, awarder)
	ctx := context.Background()

	_, err := svc.SetStatus(ctx, "r-1", StatusResolved)
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, "r-1", StatusResolved)
	require.NoError(t, err)

	assert.Len(t, awarder.calls, 1)
	assert.Equal(t, 2, repo.statusUpdates)
}

func TestSetStatusResolvedAwardsBonus(t *testing.T) {
	repo := newFakeRepo()
	repo.reports["r-1"] = &Report{
		ID:     "r-1",
		UserID: strPtr("user-1"),
		Status: StatusInProgress,
	}
	awarder := &fakeAwarder{}
	svc := NewService(repo, &fakeSettings{cfg: defaultSettings()}, awarder)

	report, err := svc.SetStatus(context.Background(), "r-1", StatusResolved)
	require.NoError(t, err)

	assert.Equal(t, StatusResolved, report.Status)
	require.Len(t, awarder.calls, 1)
	call := awarder.calls[0]
	assert.Equal(t, "user-1", call.userID)
	assert.Equal(t, "r-1", call.reportID)
	assert.Equal(t, points.ReasonReportResolved, call.reason)
	assert.Equal(t, 20, call.amount)
}

func TestSetStatusResolvedOperatorReportNoBonus(t *testing.T) {
	repo := newFakeRepo()
	repo.reports["r-1"] = &Report{ID: "r-1", Status: StatusPending}
	awarder := &fakeAwarder{}
	svc := NewService(repo, &fakeSettings{cfg: defaultSettings()}, awarder)

	_, err := svc.SetStatus(context.Background(), "r-1", StatusResolved)
	require.NoError(t, err)
	assert.Empty(t, awarder.calls)
}

func TestSetStatusAwardFailureDoesNotFail(t *testing.T) {
	repo := newFakeRepo()
	repo.reports["r-1"] = &Report{
		ID:     "r-1",
		UserID: strPtr("user-1"),
		Status: StatusPending,
	}
	awarder := &fakeAwarder{err: errors.New("points service down")}
	svc := NewService(repo, &fakeSettings{cfg: defaultSettings()}, awarder)

	report, err := svc.SetStatus(context.Background(), "r-1", StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, report.Status)
}
