// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, issuing/refreshing JWTs
// plus server-stored refresh tokens, and the create-admin-user function.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trackvers/trackvers/internal/common"
	"github.com/trackvers/trackvers/internal/dbx"
	"github.com/trackvers/trackvers/internal/server/auth"
	"github.com/trackvers/trackvers/internal/server/config"
	"github.com/trackvers/trackvers/internal/server/models"
	"github.com/trackvers/trackvers/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
// - Register: create a user with its profile row
// - Login: verify credentials and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
// - CreateAdmin: the create-admin-user function
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a user plus its profile row in one transaction. The role
// is stored as given (usually empty); the client defaults empty to "user".
func (s *UserService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{Email: email, PasswordHash: hash}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		user = u

		profile := &models.Profile{ID: u.ID, FullName: fullName, Email: email}
		if err := s.repomanager.Profiles(tx).Create(ctx, profile); err != nil {
			return fmt.Errorf("error creating profile: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// CreateAdmin implements the create-admin-user function: a user whose profile
// row carries the admin role from the start.
func (s *UserService) CreateAdmin(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{Email: email, PasswordHash: hash}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		user = u

		profile := &models.Profile{ID: u.ID, FullName: fullName, Email: email, Role: common.RoleAdmin}
		if err := s.repomanager.Profiles(tx).Create(ctx, profile); err != nil {
			return fmt.Errorf("error creating profile: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the password and, on success, returns a new TokenPair. The
// access token carries the profile role so admin endpoints can authorize
// without a lookup.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	role := s.lookupRole(ctx, user.ID)
	return s.generateTokenPair(ctx, user.ID, role, s.db)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	role := s.lookupRole(ctx, token.UserID)

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, role, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// GetUser returns the identity row behind a user id.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// Logout revokes a refresh token. Revoking an unknown token is not an error;
// the session is gone either way.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// --- helpers below ---

// lookupRole returns the stored profile role; a missing profile or empty
// value is reported as-is (empty) and defaulted by the client.
func (s *UserService) lookupRole(ctx context.Context, userID string) string {
	profile, err := s.repomanager.Profiles(s.db).Get(ctx, userID)
	if err != nil {
		return ""
	}
	return profile.Role
}

func (s *UserService) generateAccessToken(userID, role string) (string, error) {
	return auth.GenerateToken(userID, role, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID, role string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID, role)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
