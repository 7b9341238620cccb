// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcityfix/api/internal/config"
	"github.com/smartcityfix/api/internal/core"
)

type fakeRepo struct {
	users       map[string]*User
	leaderboard []User
	lastLimit   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeRepo) UpdatePassword(
	_ context.Context,
	id, passwordHash string,
) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeRepo) UpdateRole(_ context.Context, id, role string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update role: %w", core.ErrNotFound)
	}
	u.Role = role
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id, status string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update status: %w", core.ErrNotFound)
	}
	u.Status = status
	return nil
}

func (f *fakeRepo) List(
	_ context.Context,
	_ ListUsersParams,
) ([]User, int, error) {
	var out []User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Leaderboard(_ context.Context, limit int) ([]User, error) {
	f.lastLimit = limit
	return f.leaderboard, nil
}

func TestCreateLowercasesEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, config.LeaderboardConfig{Size: 50})

	info, err := svc.Create(
		context.Background(),
		"Citizen@Example.COM",
		"hash",
		"Citizen",
	)
	require.NoError(t, err)

	assert.Equal(t, "citizen@example.com", info.Email)
	assert.Equal(t, RoleUser, info.Role)
	assert.Equal(t, StatusActive, info.Status)
	assert.NotEmpty(t, info.ID)
}

func TestUpdateUserRoleInvalid(t *testing.T) {
	svc := NewService(newFakeRepo(), config.LeaderboardConfig{Size: 50})

	_, err := svc.UpdateUserRole(context.Background(), "user-1", "superuser")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateUserRole(t *testing.T) {
	repo := newFakeRepo()
	repo.users["user-1"] = &User{ID: "user-1", Role: RoleUser}
	svc := NewService(repo, config.LeaderboardConfig{Size: 50})

	updated, err := svc.UpdateUserRole(context.Background(), "user-1", RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, updated.Role)
}

func TestUpdateUserStatusInvalid(t *testing.T) {
	svc := NewService(newFakeRepo(), config.LeaderboardConfig{Size: 50})

	_, err := svc.UpdateUserStatus(context.Background(), "user-1", "suspended")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUpdateUserStatusBan(t *testing.T) {
	repo := newFakeRepo()
	repo.users["user-1"] = &User{ID: "user-1", Status: StatusActive}
	svc := NewService(repo, config.LeaderboardConfig{Size: 50})

	updated, err := svc.UpdateUserStatus(
		context.Background(),
		"user-1",
		StatusBanned,
	)
	require.NoError(t, err)
	assert.True(t, updated.IsBanned())
}

func TestLeaderboardRanks(t *testing.T) {
	repo := newFakeRepo()
	repo.leaderboard = []User{
		{ID: "a", Name: "Alice", Points: 300},
		{ID: "b", Name: "Bob", Points: 200},
		{ID: "c", Name: "Cara", Points: 200},
	}
	svc := NewService(repo, config.LeaderboardConfig{Size: 25})

	entries, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 25, repo.lastLimit)
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Alice", entries[0].Name)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestLeaderboardEmpty(t *testing.T) {
	svc := NewService(newFakeRepo(), config.LeaderboardConfig{Size: 50})

	entries, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
