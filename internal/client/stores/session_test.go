package stores

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackvers/trackvers/internal/client/gateway"
	"github.com/trackvers/trackvers/internal/client/localdata"
	"github.com/trackvers/trackvers/internal/client/models"
)

func TestInitWithoutSavedSessionIsAnonymous(t *testing.T) {
	session := NewSessionStore(&fakeGateway{}, newMemStore())
	require.Equal(t, SessionLoading, session.State())

	require.NoError(t, session.Init(context.Background()))
	assert.Equal(t, SessionAnonymous, session.State())
	assert.Nil(t, session.User())
}

func TestSignInDefaultsEmptyRoleToUser(t *testing.T) {
	gw := &fakeGateway{
		loginPair: &models.TokenPair{AccessToken: "at", RefreshToken: "rt"},
		session: &gateway.SessionInfo{
			UserID:  "u1",
			Email:   "a@b.c",
			Profile: &models.Profile{ID: "u1", FullName: "Alice", Role: ""},
		},
	}
	session := NewSessionStore(gw, newMemStore())

	require.NoError(t, session.SignIn(context.Background(), "a@b.c", "pw"))
	user := session.User()
	require.NotNil(t, user)
	assert.Equal(t, "user", user.Role, "empty stored role reads as user")
	assert.Equal(t, "Alice", user.FullName)
	assert.False(t, session.IsAdmin())
}

func TestSignInAdminRole(t *testing.T) {
	gw := &fakeGateway{
		loginPair: &models.TokenPair{AccessToken: "at", RefreshToken: "rt"},
		session: &gateway.SessionInfo{
			UserID:  "u1",
			Email:   "root@b.c",
			Profile: &models.Profile{ID: "u1", Role: "admin"},
		},
	}
	session := NewSessionStore(gw, newMemStore())

	require.NoError(t, session.SignIn(context.Background(), "root@b.c", "pw"))
	assert.True(t, session.IsAdmin())
}

func TestSignInPersistsTokens(t *testing.T) {
	ctx := context.Background()
	local := newMemStore()
	gw := &fakeGateway{
		loginPair: &models.TokenPair{AccessToken: "at", RefreshToken: "rt"},
		session:   &gateway.SessionInfo{UserID: "u1", Email: "a@b.c"},
	}
	session := NewSessionStore(gw, local)
	require.NoError(t, session.SignIn(ctx, "a@b.c", "pw"))

	raw, err := local.Get(ctx, localdata.KeySession)
	require.NoError(t, err)
	var pair models.TokenPair
	require.NoError(t, json.Unmarshal(raw, &pair))
	assert.Equal(t, "at", pair.AccessToken)
	assert.Equal(t, "rt", pair.RefreshToken)
}

func TestInitRestoresPersistedSession(t *testing.T) {
	ctx := context.Background()
	local := newMemStore()
	raw, _ := json.Marshal(&models.TokenPair{AccessToken: "at", RefreshToken: "rt"})
	require.NoError(t, local.Set(ctx, localdata.KeySession, raw))

	gw := &fakeGateway{session: &gateway.SessionInfo{UserID: "u1", Email: "a@b.c"}}
	session := NewSessionStore(gw, local)

	require.NoError(t, session.Init(ctx))
	assert.Equal(t, SessionAuthenticated, session.State())
	require.NotNil(t, gw.Tokens())
	assert.Equal(t, "at", gw.Tokens().AccessToken)
}

func TestInitRefreshesStaleAccessToken(t *testing.T) {
	ctx := context.Background()
	local := newMemStore()
	raw, _ := json.Marshal(&models.TokenPair{AccessToken: "stale", RefreshToken: "rt"})
	require.NoError(t, local.Set(ctx, localdata.KeySession, raw))

	gw := &fakeGateway{
		session:         &gateway.SessionInfo{UserID: "u1", Email: "a@b.c"},
		sessionFailures: 1,
		refreshPair:     &models.TokenPair{AccessToken: "fresh", RefreshToken: "rt2"},
	}
	session := NewSessionStore(gw, local)

	require.NoError(t, session.Init(ctx))
	assert.Equal(t, SessionAuthenticated, session.State())
	assert.Contains(t, gw.calls, "refresh rt")
	assert.Equal(t, "fresh", gw.Tokens().AccessToken)

	// the rotated pair replaced the persisted one
	raw, _ = local.Get(ctx, localdata.KeySession)
	var pair models.TokenPair
	require.NoError(t, json.Unmarshal(raw, &pair))
	assert.Equal(t, "rt2", pair.RefreshToken)
}

func TestInitFallsBackToAnonymousWhenRefreshFails(t *testing.T) {
	ctx := context.Background()
	local := newMemStore()
	raw, _ := json.Marshal(&models.TokenPair{AccessToken: "stale", RefreshToken: "rt"})
	require.NoError(t, local.Set(ctx, localdata.KeySession, raw))

	gw := &fakeGateway{
		sessionFailures: 1,
		refreshErr:      &gateway.BackendError{Message: "refresh token expired", Status: 401},
	}
	session := NewSessionStore(gw, local)

	require.NoError(t, session.Init(ctx))
	assert.Equal(t, SessionAnonymous, session.State())

	stored, _ := local.Get(ctx, localdata.KeySession)
	assert.Nil(t, stored, "a dead session is removed from local storage")
}

func TestSignOutClearsLocalStateEvenWhenRemoteFails(t *testing.T) {
	ctx := context.Background()
	local := newMemStore()
	gw := &fakeGateway{
		loginPair: &models.TokenPair{AccessToken: "at", RefreshToken: "rt"},
		session:   &gateway.SessionInfo{UserID: "u1", Email: "a@b.c"},
		logoutErr: &gateway.BackendError{Message: "server down", Status: 500},
	}
	session := NewSessionStore(gw, local)
	require.NoError(t, session.SignIn(ctx, "a@b.c", "pw"))

	err := session.SignOut(ctx)
	assert.Error(t, err, "the remote failure is reported")
	assert.Equal(t, SessionAnonymous, session.State())
	assert.Nil(t, session.User())
	assert.Nil(t, gw.Tokens())

	stored, _ := local.Get(ctx, localdata.KeySession)
	assert.Nil(t, stored)
}
