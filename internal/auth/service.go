// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/smartcityfix/api/internal/config"
	"github.com/smartcityfix/api/internal/core"
	"github.com/smartcityfix/api/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBanned      = errors.New("account banned")
	ErrEmailExists        = errors.New("email already exists")
)

// AdminUserID is the synthetic subject for sessions opened through the
// configured admin credentials. It never collides with real user IDs,
// which are UUIDs.
const AdminUserID = "admin"

const revokedKeyPrefix = "session:revoked:"

type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Status       string
	Points       int
	ReportsCount int
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		email, passwordHash, name string,
	) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// AuthResult carries the session token alongside the response body so
// the handler can set the cookie without the token ever appearing in
// the JSON payload.
type AuthResult struct {
	User      UserResponse
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	repo   Repository
	tokens *TokenManager
	users  UserProvider
	redis  *redis.Client
	admin  config.AdminConfig
}

func NewService(
	repo Repository,
	tokens *TokenManager,
	users UserProvider,
	redisClient *redis.Client,
	admin config.AdminConfig,
) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		users:  users,
		redis:  redisClient,
		admin:  admin,
	}
}

func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
	userAgent, ipAddress string,
) (*AuthResult, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Email, passwordHash, req.Name)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.openSession(ctx, user, userAgent, ipAddress)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	userAgent, ipAddress string,
) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if user.Status == "banned" {
		return nil, ErrAccountBanned
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.users.UpdatePassword(ctx, user.ID, newHash)
	}

	return s.openSession(ctx, user, userAgent, ipAddress)
}

// AdminLogin authenticates against the operator credentials from the
// environment rather than a user row.
func (s *Service) AdminLogin(
	ctx context.Context,
	req AdminLoginRequest,
	userAgent, ipAddress string,
) (*AuthResult, error) {
	if !s.admin.Configured() {
		return nil, ErrInvalidCredentials
	}

	emailMatch := subtle.ConstantTimeCompare(
		[]byte(req.Email),
		[]byte(s.admin.Email),
	)
	passwordMatch := subtle.ConstantTimeCompare(
		[]byte(req.Password),
		[]byte(s.admin.Password),
	)

	if emailMatch&passwordMatch != 1 {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, &UserInfo{
		ID:    AdminUserID,
		Email: s.admin.Email,
		Name:  "Administrator",
		Role:  "admin",
	}, userAgent, ipAddress)
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.repo.RevokeByID(ctx, sessionID); err != nil &&
		!errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("revoke session: %w", err)
	}

	s.markRevoked(ctx, sessionID)
	return nil
}

func (s *Service) LogoutAll(ctx context.Context, userID string) error {
	sessions, err := s.repo.ActiveForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if err := s.repo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke all sessions: %w", err)
	}

	for _, session := range sessions {
		s.markRevoked(ctx, session.ID)
	}

	return nil
}

// VerifySessionToken implements middleware.SessionVerifier. The signature
// check is authoritative for identity; the redis mark and the session row
// make revocation effective before the token expires.
func (s *Service) VerifySessionToken(
	ctx context.Context,
	token string,
) (*middleware.SessionClaims, error) {
	claims, err := s.tokens.VerifySessionToken(ctx, token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.isMarkedRevoked(ctx, claims.SessionID)
	if err != nil {
		slog.Warn("session revocation check failed",
			"session_id", claims.SessionID,
			"error", err,
		)
	} else if revoked {
		return nil, fmt.Errorf("verify session: %w", core.ErrTokenRevoked)
	}

	session, err := s.repo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("verify session: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("verify session: %w", err)
	}

	if session.IsRevoked() {
		return nil, fmt.Errorf("verify session: %w", core.ErrTokenRevoked)
	}
	if session.IsExpired() {
		return nil, fmt.Errorf("verify session: %w", core.ErrTokenExpired)
	}

	return claims, nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	if userID == AdminUserID {
		return &UserResponse{
			ID:    AdminUserID,
			Email: s.admin.Email,
			Name:  "Administrator",
			Role:  "admin",
		}, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		Points:       user.Points,
		ReportsCount: user.ReportsCount,
		CreatedAt:    user.CreatedAt,
	}, nil
}

func (s *Service) GetActiveSessions(
	ctx context.Context,
	userID, currentSessionID string,
) ([]SessionInfo, error) {
	sessions, err := s.repo.ActiveForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get sessions: %w", err)
	}

	infos := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, SessionInfo{
			ID:        session.ID,
			UserAgent: session.UserAgent,
			IPAddress: session.IPAddress,
			CreatedAt: session.CreatedAt,
			ExpiresAt: session.ExpiresAt,
			Current:   session.ID == currentSessionID,
		})
	}

	return infos, nil
}

func (s *Service) RevokeSession(
	ctx context.Context,
	userID, sessionID string,
) error {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("find session: %w", err)
	}

	if session.UserID != userID {
		return fmt.Errorf("revoke session: %w", core.ErrForbidden)
	}

	if err := s.repo.RevokeByID(ctx, sessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	s.markRevoked(ctx, sessionID)
	return nil
}

func (s *Service) ChangePassword(
	ctx context.Context,
	userID, currentPassword, newPassword string,
) error {
	if userID == AdminUserID {
		return fmt.Errorf("change password: %w", core.ErrForbidden)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	valid, _, err := core.VerifyPasswordWithRehash(
		currentPassword,
		user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return ErrInvalidCredentials
	}

	newHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.LogoutAll(ctx, userID); err != nil {
		return fmt.Errorf("logout all: %w", err)
	}

	return nil
}

func (s *Service) openSession(
	ctx context.Context,
	user *UserInfo,
	userAgent, ipAddress string,
) (*AuthResult, error) {
	sessionID := uuid.New().String()

	token, expiresAt, err := s.tokens.CreateSessionToken(SessionTokenClaims{
		UserID:    user.ID,
		Role:      user.Role,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, fmt.Errorf("create session token: %w", err)
	}

	session := &Session{
		ID:        sessionID,
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: expiresAt,
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &AuthResult{
		User: UserResponse{
			ID:           user.ID,
			Email:        user.Email,
			Name:         user.Name,
			Role:         user.Role,
			Points:       user.Points,
			ReportsCount: user.ReportsCount,
			CreatedAt:    user.CreatedAt,
		},
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) markRevoked(ctx context.Context, sessionID string) {
	if s.redis == nil {
		return
	}

	key := revokedKeyPrefix + sessionID
	if err := s.redis.Set(ctx, key, "1", s.tokens.config.Expire).Err(); err != nil {
		slog.Warn("failed to mark session revoked",
			"session_id", sessionID,
			"error", err,
		)
	}
}

func (s *Service) isMarkedRevoked(
	ctx context.Context,
	sessionID string,
) (bool, error) {
	if s.redis == nil {
		return false, nil
	}

	exists, err := s.redis.Exists(ctx, revokedKeyPrefix+sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation mark: %w", err)
	}

	return exists > 0, nil
}
