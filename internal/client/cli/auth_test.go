package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackvers/trackvers/internal/client/gateway"
	"github.com/trackvers/trackvers/internal/client/models"
	"github.com/trackvers/trackvers/internal/client/stores"
)

// memStore keeps local key/value state in a map for tests.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
	return nil
}

// authGateway fakes the auth slice of the gateway; any other call panics.
type authGateway struct {
	gateway.Gateway

	mu    sync.Mutex
	pair  *models.TokenPair
	calls []string

	loginErr    error
	registerErr error
	logoutErr   error
	session     *gateway.SessionInfo
}

func (g *authGateway) record(s string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, s)
}

func (g *authGateway) Register(_ context.Context, email, _, _ string) (*models.TokenPair, error) {
	g.record("register " + email)
	if g.registerErr != nil {
		return nil, g.registerErr
	}
	return &models.TokenPair{AccessToken: "at", RefreshToken: "rt"}, nil
}

func (g *authGateway) Login(_ context.Context, email, _ string) (*models.TokenPair, error) {
	g.record("login " + email)
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	return &models.TokenPair{AccessToken: "at", RefreshToken: "rt"}, nil
}

func (g *authGateway) Logout(_ context.Context, refreshToken string) error {
	g.record("logout " + refreshToken)
	return g.logoutErr
}

func (g *authGateway) FetchSession(_ context.Context) (*gateway.SessionInfo, error) {
	g.record("session")
	return g.session, nil
}

func (g *authGateway) SetTokens(pair *models.TokenPair) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pair = pair
}

func (g *authGateway) Tokens() *models.TokenPair {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pair
}

func newAuthApp(gw *authGateway) *App {
	if gw.session == nil {
		gw.session = &gateway.SessionInfo{UserID: "u1", Email: "dev@example.com"}
	}
	return &App{
		session: stores.NewSessionStore(gw, newMemStore()),
		reader:  bufio.NewReader(strings.NewReader("")),
	}
}

func stubPrompts(t *testing.T, answers []string, password string) {
	t.Helper()
	oldText, oldPass := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = oldText, oldPass })

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			t.Fatal("prompt called more times than expected")
		}
		a := answers[i]
		i++
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

func TestRegister_SignsStraightIn(t *testing.T) {
	gw := &authGateway{}
	app := newAuthApp(gw)
	stubPrompts(t, []string{"dev@example.com", "Dev Eloper"}, "pass12345")

	require.NoError(t, app.Register(context.Background()))

	assert.True(t, app.isLoggedIn())
	assert.Equal(t, []string{"register dev@example.com", "session"}, gw.calls)
}

func TestLogin_Failure(t *testing.T) {
	gw := &authGateway{loginErr: &gateway.BackendError{Message: "Invalid login credentials", Status: 401}}
	app := newAuthApp(gw)
	stubPrompts(t, []string{"dev@example.com"}, "wrong")

	err := app.Login(context.Background())
	require.Error(t, err)
	assert.False(t, app.isLoggedIn())
}

func TestLogout_ClearsSessionEvenWhenRemoteFails(t *testing.T) {
	gw := &authGateway{logoutErr: &gateway.BackendError{Message: "boom", Status: 500}}
	app := newAuthApp(gw)
	stubPrompts(t, []string{"dev@example.com"}, "pass12345")

	require.NoError(t, app.Login(context.Background()))
	require.True(t, app.isLoggedIn())

	require.NoError(t, app.Logout(context.Background()))
	assert.False(t, app.isLoggedIn())
	assert.Contains(t, gw.calls, "logout rt")
}
