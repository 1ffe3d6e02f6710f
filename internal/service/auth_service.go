package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/event-booking/internal/model"
	"github.com/iliyamo/event-booking/internal/repository"
	"github.com/iliyamo/event-booking/internal/utils"
)

// credentialsMessage is deliberately identical for an unknown handle and a
// wrong password so responses cannot be used to enumerate accounts.
const credentialsMessage = "Invalid email/phone or password"

// UserStore is the user directory the auth workflow runs against.
type UserStore interface {
	Create(ctx context.Context, name, emailOrPhone, passwordHash, role string) (model.User, error)
	GetByEmailOrPhone(ctx context.Context, emailOrPhone string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdateRole(ctx context.Context, id uint64, role string) error
}

// TokenStore persists refresh tokens. Implemented by repository.TokenRepo.
type TokenStore interface {
	Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	FindByHash(ctx context.Context, tokenHash string) (model.RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) (bool, error)
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// TokenConfig is the process-wide signing state for the token issuer,
// loaded once at startup and read-only afterwards.
type TokenConfig struct {
	Secret         string
	Issuer         string
	Audience       string
	AccessTTLMin   int
	RefreshTTLDays int
}

// AuthSession is returned by Signup, Login and Refresh: a fresh
// access+refresh pair plus the owning user's profile.
type AuthSession struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	UserID           uint64
	Name             string
	EmailOrPhone     string
	Role             string
}

// AuthService orchestrates signup, login and refresh-token rotation over a
// user directory and a refresh-token store.
type AuthService struct {
	users      UserStore
	tokens     TokenStore
	cfg        TokenConfig
	bcryptCost int
}

func NewAuthService(users UserStore, tokens TokenStore, cfg TokenConfig, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, cfg: cfg, bcryptCost: bcryptCost}
}

// Signup registers a new user with role "user" and opens a session.
// A taken handle fails with a conflict.
func (s *AuthService) Signup(ctx context.Context, name, emailOrPhone, password string) (AuthSession, error) {
	name = strings.TrimSpace(name)
	emailOrPhone = strings.ToLower(strings.TrimSpace(emailOrPhone))
	if name == "" || emailOrPhone == "" || password == "" {
		return AuthSession{}, invalid("Name, email/phone and password are required")
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return AuthSession{}, internal("hash password failed", err)
	}
	u, err := s.users.Create(ctx, name, emailOrPhone, hash, model.RoleUser)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return AuthSession{}, conflict("User with this email/phone already exists")
		}
		return AuthSession{}, internal("create user failed", err)
	}
	return s.openSession(ctx, u)
}

// Login verifies credentials and opens a session. Before issuing the new
// pair it revokes every active refresh token of the user: each login
// starts a fresh single-session lineage, while previously issued access
// tokens simply age out on their own expiry.
func (s *AuthService) Login(ctx context.Context, emailOrPhone, password string) (AuthSession, error) {
	emailOrPhone = strings.ToLower(strings.TrimSpace(emailOrPhone))
	u, err := s.users.GetByEmailOrPhone(ctx, emailOrPhone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return AuthSession{}, unauthorized(credentialsMessage)
		}
		return AuthSession{}, internal("load user failed", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return AuthSession{}, unauthorized(credentialsMessage)
	}
	if err := s.tokens.RevokeAllForUser(ctx, u.ID); err != nil {
		return AuthSession{}, internal("revoke tokens failed", err)
	}
	return s.openSession(ctx, u)
}

// Refresh rotates a refresh token. The access token may be expired; its
// signature, issuer and audience must still verify and its subject must
// own the presented refresh token. Each refresh token is consumable
// exactly once: the first caller wins the conditional revoke, any replay
// (including a concurrent duplicate) fails unauthorized.
func (s *AuthService) Refresh(ctx context.Context, accessToken, refreshToken string) (AuthSession, error) {
	claims, err := utils.ParseExpiredAccessToken(s.cfg.Secret, s.cfg.Issuer, s.cfg.Audience, accessToken)
	if err != nil {
		return AuthSession{}, unauthorized("Invalid access token")
	}
	stored, err := s.tokens.FindByHash(ctx, utils.HashRefreshRaw(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return AuthSession{}, unauthorized("Invalid or expired refresh token")
		}
		return AuthSession{}, internal("load refresh token failed", err)
	}
	if stored.UserID != claims.Subject || stored.RevokedAt != nil || stored.ExpiresAt.Before(time.Now().UTC()) {
		return AuthSession{}, unauthorized("Invalid or expired refresh token")
	}
	u, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return AuthSession{}, unauthorized("User not found")
		}
		return AuthSession{}, internal("load user failed", err)
	}
	// Rotation: consume the old token before issuing the new pair. Losing
	// the conditional update means another refresh already spent it.
	ok, err := s.tokens.Revoke(ctx, stored.TokenHash)
	if err != nil {
		return AuthSession{}, internal("revoke refresh token failed", err)
	}
	if !ok {
		return AuthSession{}, unauthorized("Invalid or expired refresh token")
	}
	return s.openSession(ctx, u)
}

// BootstrapAdmin mints an admin account: when the handle is unknown a new
// admin user is created, otherwise the existing account is promoted to
// admin. This backs the setup endpoint a fresh deployment uses to create
// its first administrator. Created reports which of the two happened.
func (s *AuthService) BootstrapAdmin(ctx context.Context, name, emailOrPhone, password string) (created bool, err error) {
	name = strings.TrimSpace(name)
	emailOrPhone = strings.ToLower(strings.TrimSpace(emailOrPhone))
	if name == "" || emailOrPhone == "" || password == "" {
		return false, invalid("Name, email/phone and password are required")
	}
	if len(password) < 6 {
		return false, invalid("Password must be at least 6 characters")
	}
	existing, err := s.users.GetByEmailOrPhone(ctx, emailOrPhone)
	switch {
	case err == nil:
		if err := s.users.UpdateRole(ctx, existing.ID, model.RoleAdmin); err != nil {
			return false, internal("update role failed", err)
		}
		return false, nil
	case errors.Is(err, repository.ErrNotFound):
		// fall through to create
	default:
		return false, internal("load user failed", err)
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return false, internal("hash password failed", err)
	}
	if _, err := s.users.Create(ctx, name, emailOrPhone, hash, model.RoleAdmin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, conflict("User with this email/phone already exists")
		}
		return false, internal("create admin failed", err)
	}
	return true, nil
}

// openSession issues a new access+refresh pair for u and persists the
// refresh token hash.
func (s *AuthService) openSession(ctx context.Context, u model.User) (AuthSession, error) {
	access, err := utils.NewAccessToken(s.cfg.Secret, s.cfg.Issuer, s.cfg.Audience,
		u.ID, u.EmailOrPhone, u.Role, s.cfg.AccessTTLMin)
	if err != nil {
		return AuthSession{}, internal("issue access token failed", err)
	}
	refresh, err := utils.NewRefreshToken(s.cfg.RefreshTTLDays)
	if err != nil {
		return AuthSession{}, internal("issue refresh token failed", err)
	}
	if err := s.tokens.Store(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return AuthSession{}, internal("save refresh token failed", err)
	}
	return AuthSession{
		AccessToken:      access.Token,
		AccessExpiresAt:  access.Exp,
		RefreshToken:     refresh.Raw, // raw goes back to the client once
		RefreshExpiresAt: refresh.Exp,
		UserID:           u.ID,
		Name:             u.Name,
		EmailOrPhone:     u.EmailOrPhone,
		Role:             u.Role,
	}, nil
}
