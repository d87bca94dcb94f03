// Package service provides authentication and employee business logic,
// delegating persistence to repositories.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/StaffKeeper/internal/apperr"
	"github.com/avolkov/StaffKeeper/internal/models"
	"github.com/avolkov/StaffKeeper/internal/repository"
)

// UserRepository defines the account persistence operations required by
// the authentication service.
type UserRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, u repository.User) error
	FindByEmail(ctx context.Context, email string) (*repository.User, error)
	FindByID(ctx context.Context, id string) (*repository.User, error)
}

// SessionRepository defines the token bookkeeping operations required by
// the authentication service.
type SessionRepository interface {
	Create(ctx context.Context, tokenID, userID string, expiresAt int64) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Delete(ctx context.Context, tokenID string) error
}

// tokenTTL is the lifetime of an issued session token.
const tokenTTL = 24 * time.Hour

// AuthService implements registration, login, logout, and token
// verification over the user and session repositories.
type AuthService struct {
	users    UserRepository
	sessions SessionRepository
	secret   []byte
}

// NewAuthService constructs an AuthService. secret is the HMAC key used
// to sign and verify session tokens.
func NewAuthService(users UserRepository, sessions SessionRepository, secret []byte) *AuthService {
	return &AuthService{users: users, sessions: sessions, secret: secret}
}

// Register creates a new account and signs it in, returning the new
// identity and a session token. Fails with apperr.ErrConflict when an
// account with the same email already exists.
func (s *AuthService) Register(ctx context.Context, email, password string) (models.Identity, string, error) {
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return models.Identity{}, "", fmt.Errorf("register: %w", err)
	}
	if exists {
		return models.Identity{}, "", apperr.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Identity{}, "", fmt.Errorf("hash password: %w", err)
	}

	user := repository.User{
		Identity:     models.Identity{ID: uuid.NewString(), Email: email},
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return models.Identity{}, "", fmt.Errorf("register: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return models.Identity{}, "", err
	}
	return user.Identity, token, nil
}

// Login verifies credentials and returns the identity with a fresh
// session token. Invalid credentials fail with apperr.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.Identity, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Identity{}, "", apperr.ErrUnauthorized
		}
		return models.Identity{}, "", fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return models.Identity{}, "", apperr.ErrUnauthorized
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return models.Identity{}, "", err
	}
	return user.Identity, token, nil
}

// Logout revokes the session the token belongs to. Revoking an already
// revoked token succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	_, tokenID, err := s.parseToken(token)
	if err != nil {
		return apperr.ErrUnauthorized
	}
	return s.sessions.Delete(ctx, tokenID)
}

// Authenticate verifies a bearer token and returns the user id it was
// issued for. A token whose session row has been revoked is rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	userID, tokenID, err := s.parseToken(token)
	if err != nil {
		return "", apperr.ErrUnauthorized
	}

	active, err := s.sessions.Exists(ctx, tokenID)
	if err != nil {
		return "", fmt.Errorf("authenticate: %w", err)
	}
	if !active {
		return "", apperr.ErrUnauthorized
	}
	return userID, nil
}

// CurrentUser resolves the identity behind an authenticated user id.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (models.Identity, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Identity{}, apperr.ErrUnauthorized
		}
		return models.Identity{}, fmt.Errorf("current user: %w", err)
	}
	return user.Identity, nil
}

func (s *AuthService) issueToken(ctx context.Context, userID string) (string, error) {
	tokenID := uuid.NewString()
	expires := time.Now().Add(tokenTTL)

	claims := jwt.RegisteredClaims{
		ID:        tokenID,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expires),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := s.sessions.Create(ctx, tokenID, userID, expires.Unix()); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *AuthService) parseToken(token string) (userID, tokenID string, err error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", "", apperr.ErrUnauthorized
	}
	return claims.Subject, claims.ID, nil
}
