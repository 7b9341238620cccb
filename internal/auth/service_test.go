// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcityfix/api/internal/config"
	"github.com/smartcityfix/api/internal/core"
)

type fakeSessionRepo struct {
	sessions map[string]*Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *Session) error {
	s.CreatedAt = time.Now()
	copied := *s
	f.sessions[s.ID] = &copied
	return nil
}

func (f *fakeSessionRepo) FindByID(
	_ context.Context,
	id string,
) (*Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("find session: %w", core.ErrNotFound)
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) RevokeByID(_ context.Context, id string) error {
	s, ok := f.sessions[id]
	if !ok || s.RevokedAt != nil {
		return fmt.Errorf("revoke session: %w", core.ErrNotFound)
	}
	s.Revoke()
	return nil
}

func (f *fakeSessionRepo) RevokeAllForUser(
	_ context.Context,
	userID string,
) error {
	for _, s := range f.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.Revoke()
		}
	}
	return nil
}

func (f *fakeSessionRepo) ActiveForUser(
	_ context.Context,
	userID string,
) ([]Session, error) {
	var active []Session
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsActive() {
			active = append(active, *s)
		}
	}
	return active, nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

type fakeUserProvider struct {
	byEmail map[string]*UserInfo
	byID    map[string]*UserInfo
}

func newFakeUserProvider(users ...*UserInfo) *fakeUserProvider {
	f := &fakeUserProvider{
		byEmail: make(map[string]*UserInfo),
		byID:    make(map[string]*UserInfo),
	}
	for _, u := range users {
		f.byEmail[u.Email] = u
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserProvider) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserProvider) GetByID(
	_ context.Context,
	id string,
) (*UserInfo, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserProvider) Create(
	_ context.Context,
	email, passwordHash, name string,
) (*UserInfo, error) {
	if _, exists := f.byEmail[email]; exists {
		return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}
	u := &UserInfo{
		ID:           "user-" + email,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         "user",
		Status:       "active",
	}
	f.byEmail[email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUserProvider) UpdatePassword(
	_ context.Context,
	userID, passwordHash string,
) error {
	u, ok := f.byID[userID]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func testUser(t *testing.T, password string) *UserInfo {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	return &UserInfo{
		ID:           "user-1",
		Email:        "citizen@example.com",
		Name:         "Test Citizen",
		PasswordHash: hash,
		Role:         "user",
		Status:       "active",
	}
}

func newTestService(
	t *testing.T,
	users *fakeUserProvider,
	admin config.AdminConfig,
) (*Service, *fakeSessionRepo) {
	t.Helper()

	repo := newFakeSessionRepo()
	manager := newTestTokenManager(t, time.Hour)
	svc := NewService(repo, manager, users, nil, admin)
	return svc, repo
}

func TestLoginSuccess(t *testing.T) {
	u := testUser(t, "hunter22hunter22")
	svc, repo := newTestService(t, newFakeUserProvider(u), config.AdminConfig{})

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    u.Email,
		Password: "hunter22hunter22",
	}, "test-agent", "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, u.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
	assert.Len(t, repo.sessions, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	u := testUser(t, "hunter22hunter22")
	svc, _ := newTestService(t, newFakeUserProvider(u), config.AdminConfig{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    u.Email,
		Password: "not the password",
	}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t, newFakeUserProvider(), config.AdminConfig{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever whatever",
	}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBannedUser(t *testing.T) {
	u := testUser(t, "hunter22hunter22")
	u.Status = "banned"
	svc, _ := newTestService(t, newFakeUserProvider(u), config.AdminConfig{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    u.Email,
		Password: "hunter22hunter22",
	}, "", "")
	assert.ErrorIs(t, err, ErrAccountBanned)
}

func TestSignupDuplicateEmail(t *testing.T) {
	u := testUser(t, "hunter22hunter22")
	svc, _ := newTestService(t, newFakeUserProvider(u), config.AdminConfig{})

	_, err := svc.Signup(context.Background(), SignupRequest{
		Email:    u.Email,
		Password: "another password",
		Name:     "Dup",
	}, "", "")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAdminLogin(t *testing.T) {
	admin := config.AdminConfig{
		Email:    "ops@example.com",
		Password: "super-secret",
	}
	svc, _ := newTestService(t, newFakeUserProvider(), admin)

	result, err := svc.AdminLogin(context.Background(), AdminLoginRequest{
		Email:    "ops@example.com",
		Password: "super-secret",
	}, "", "")
	require.NoError(t, err)

	assert.Equal(t, AdminUserID, result.User.ID)
	assert.Equal(t, "admin", result.User.Role)
}

func TestAdminLoginWrongCredentials(t *testing.T) {
	admin := config.AdminConfig{
		Email:    "ops@example.com",
		Password: "super-secret",
	}
	svc, _ := newTestService(t, newFakeUserProvider(), admin)

	_, err := svc.AdminLogin(context.Background(), AdminLoginRequest{
		Email:    "ops@example.com",
		Password: "wrong",
	}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLoginNotConfigured(t *testing.T) {
	svc, _ := newTestService(t, newFakeUserProvider(), config.AdminConfig{})

	_, err := svc.AdminLogin(context.Background(), AdminLoginRequest{
		Email:    "ops@example.com",
		Password: "anything",
	}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifySessionTokenLifecycle(t *testing.T) {
	u := testUser(t, "hunter22hunter22")
	svc, _ := newTestService(t, newFakeUserProvider(u), config.AdminConfig{})
	ctx := context.Background()

	result, err := svc.Login(ctx, LoginRequest{
		Email:    u.Email,
		Password: "hunter22hunter22",
	}, "", "")
	require.NoError(t, err)

	claims, err := svc.VerifySessionToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	require.NoError(t, svc.Logout(ctx, claims.SessionID))

	_, err = svc.VerifySessionToken(ctx, result.Token)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestVerifySessionTokenUnknownSession(t *testing.T) {
	u := testUser(t, "hunter22hunter22")
	users := newFakeUserProvider(u)
	repo := newFakeSessionRepo()
	manager := newTestTokenManager(t, time.Hour)
	svc := NewService(repo, manager, users, nil, config.AdminConfig{})

	// A validly signed token whose session row was never stored.
	token, _, err := manager.CreateSessionToken(SessionTokenClaims{
		UserID:    u.ID,
		Role:      "user",
		SessionID: "ghost-session",
	})
	require.NoError(t, err)

	_, err = svc.VerifySessionToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestChangePasswordAdminForbidden(t *testing.T) {
	svc, _ := newTestService(t, newFakeUserProvider(), config.AdminConfig{
		Email:    "ops@example.com",
		Password: "super-secret",
	})

	err := svc.ChangePassword(
		context.Background(),
		AdminUserID,
		"old",
		"new-password-123",
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	u := testUser(t, "hunter22hunter22")
	svc, repo := newTestService(t, newFakeUserProvider(u), config.AdminConfig{})
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{
		Email:    u.Email,
		Password: "hunter22hunter22",
	}, "", "")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID, "hunter22hunter22", "new-password-123")
	require.NoError(t, err)

	active, err := repo.ActiveForUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	valid, err := core.VerifyPassword("new-password-123", u.PasswordHash)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	u := testUser(t, "hunter22hunter22")
	svc, _ := newTestService(t, newFakeUserProvider(u), config.AdminConfig{})

	err := svc.ChangePassword(
		context.Background(),
		u.ID,
		"wrong current",
		"new-password-123",
	)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRevokeSessionOwnership(t *testing.T) {
	u := testUser(t, "hunter22hunter22")
	other := testUser(t, "hunter22hunter22")
	other.ID = "user-2"
	other.Email = "other@example.com"

	svc, _ := newTestService(
		t,
		newFakeUserProvider(u, other),
		config.AdminConfig{},
	)
	ctx := context.Background()

	result, err := svc.Login(ctx, LoginRequest{
		Email:    u.Email,
		Password: "hunter22hunter22",
	}, "", "")
	require.NoError(t, err)

	claims, err := svc.VerifySessionToken(ctx, result.Token)
	require.NoError(t, err)

	err = svc.RevokeSession(ctx, other.ID, claims.SessionID)
	assert.ErrorIs(t, err, core.ErrForbidden)
}
