// Package stores holds the client-side state machines the CLI renders from:
// session, catalog, dashboard and tutorial. Each store owns its state behind
// a mutex and talks to the backend only through the gateway.
package stores

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/trackvers/trackvers/internal/client/gateway"
	"github.com/trackvers/trackvers/internal/client/localdata"
	"github.com/trackvers/trackvers/internal/client/models"
	"github.com/trackvers/trackvers/internal/common"
)

// SessionState is the session lifecycle: Loading until the persisted session
// has been resolved, then Authenticated or Anonymous.
type SessionState string

const (
	SessionLoading       SessionState = "loading"
	SessionAuthenticated SessionState = "authenticated"
	SessionAnonymous     SessionState = "anonymous"
)

// SessionStore resolves and owns the current identity. The user it exposes is
// the augmented one: profile attributes merged in, with an empty role
// defaulted to "user".
type SessionStore struct {
	mu    sync.RWMutex
	gw    gateway.Gateway
	local localdata.Store

	state SessionState
	user  *models.AuthUser
}

func NewSessionStore(gw gateway.Gateway, local localdata.Store) *SessionStore {
	return &SessionStore{gw: gw, local: local, state: SessionLoading}
}

func (s *SessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *SessionStore) User() *models.AuthUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *SessionStore) IsAuthenticated() bool {
	return s.State() == SessionAuthenticated
}

func (s *SessionStore) IsAdmin() bool {
	return s.User().IsAdmin()
}

// Init restores a persisted session, refreshing the token pair once if the
// access token has gone stale. Any failure leaves the session anonymous.
func (s *SessionStore) Init(ctx context.Context) error {
	pair, err := s.loadTokens(ctx)
	if err != nil || pair == nil {
		s.setAnonymous()
		return err
	}

	s.gw.SetTokens(pair)

	info, err := s.gw.FetchSession(ctx)
	if err != nil {
		var be *gateway.BackendError
		if errors.As(err, &be) && be.IsAuth() && pair.RefreshToken != "" {
			fresh, rerr := s.gw.Refresh(ctx, pair.RefreshToken)
			if rerr != nil {
				s.clearLocal(ctx)
				s.setAnonymous()
				return nil
			}
			s.gw.SetTokens(fresh)
			s.saveTokens(ctx, fresh)
			info, err = s.gw.FetchSession(ctx)
		}
		if err != nil {
			s.clearLocal(ctx)
			s.setAnonymous()
			return nil
		}
	}

	s.setAuthenticated(info)
	return nil
}

// SignUp registers a new account and signs it straight in.
func (s *SessionStore) SignUp(ctx context.Context, email, password, fullName string) error {
	pair, err := s.gw.Register(ctx, email, password, fullName)
	if err != nil {
		return err
	}
	return s.adopt(ctx, pair)
}

func (s *SessionStore) SignIn(ctx context.Context, email, password string) error {
	pair, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.adopt(ctx, pair)
}

// SignOut revokes the refresh token server-side and always clears local
// state, whether or not the revocation succeeded.
func (s *SessionStore) SignOut(ctx context.Context) error {
	var remoteErr error
	if pair := s.gw.Tokens(); pair != nil && pair.RefreshToken != "" {
		remoteErr = s.gw.Logout(ctx, pair.RefreshToken)
	}

	s.gw.SetTokens(nil)
	s.clearLocal(ctx)
	s.setAnonymous()
	return remoteErr
}

// adopt installs a fresh token pair and resolves the identity behind it.
func (s *SessionStore) adopt(ctx context.Context, pair *models.TokenPair) error {
	s.gw.SetTokens(pair)
	s.saveTokens(ctx, pair)

	info, err := s.gw.FetchSession(ctx)
	if err != nil {
		return err
	}
	s.setAuthenticated(info)
	return nil
}

func (s *SessionStore) setAuthenticated(info *gateway.SessionInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionAuthenticated
	s.user = augmentUser(info)
}

func (s *SessionStore) setAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionAnonymous
	s.user = nil
}

// augmentUser merges the identity with its profile row. The role default to
// "user" happens here and only here; the stored row keeps whatever it has.
func augmentUser(info *gateway.SessionInfo) *models.AuthUser {
	u := &models.AuthUser{ID: info.UserID, Email: info.Email, Role: common.RoleUser}
	if info.Profile != nil {
		u.FullName = info.Profile.FullName
		if info.Profile.Role != "" {
			u.Role = info.Profile.Role
		}
		if u.Email == "" {
			u.Email = info.Profile.Email
		}
	}
	return u
}

func (s *SessionStore) loadTokens(ctx context.Context) (*models.TokenPair, error) {
	raw, err := s.local.Get(ctx, localdata.KeySession)
	if err != nil || raw == nil {
		return nil, err
	}
	var pair models.TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, nil
	}
	if pair.AccessToken == "" {
		return nil, nil
	}
	return &pair, nil
}

// saveTokens persists the pair; persistence failures do not break the
// in-memory session.
func (s *SessionStore) saveTokens(ctx context.Context, pair *models.TokenPair) {
	raw, err := json.Marshal(pair)
	if err != nil {
		return
	}
	_ = s.local.Set(ctx, localdata.KeySession, raw)
}

func (s *SessionStore) clearLocal(ctx context.Context) {
	_ = s.local.Delete(ctx, localdata.KeySession)
}
