package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/trackvers/trackvers/internal/client/gateway"
	"github.com/trackvers/trackvers/internal/client/models"
)

// memStore is an in-memory localdata.Store for tests.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
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

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// fakeGateway serves canned data and records mutating calls.
type fakeGateway struct {
	tokens *models.TokenPair

	loginPair   *models.TokenPair
	loginErr    error
	registerErr error
	logoutErr   error

	session         *gateway.SessionInfo
	sessionFailures int
	refreshPair     *models.TokenPair
	refreshErr      error

	catalog    []models.SoftwareItem
	catalogErr error
	tracked    []models.TrackedVersion
	trackedErr error
	favorites  []string
	favErr     error
	eol        []models.EOLDates
	eolErr     error

	insertedRow *models.TrackedVersion
	insertErr   error
	updateErr   error
	deleteErr   error
	checkErr    error

	calls []string
}

var _ gateway.Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeGateway) SetTokens(pair *models.TokenPair) { f.tokens = pair }
func (f *fakeGateway) Tokens() *models.TokenPair        { return f.tokens }

func (f *fakeGateway) Register(_ context.Context, email, _, _ string) (*models.TokenPair, error) {
	f.record("register %s", email)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.loginPair, nil
}

func (f *fakeGateway) Login(_ context.Context, email, _ string) (*models.TokenPair, error) {
	f.record("login %s", email)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginPair, nil
}

func (f *fakeGateway) Refresh(_ context.Context, token string) (*models.TokenPair, error) {
	f.record("refresh %s", token)
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshPair, nil
}

func (f *fakeGateway) Logout(_ context.Context, token string) error {
	f.record("logout %s", token)
	return f.logoutErr
}

func (f *fakeGateway) FetchSession(context.Context) (*gateway.SessionInfo, error) {
	if f.sessionFailures > 0 {
		f.sessionFailures--
		return nil, &gateway.BackendError{Message: "token expired", Status: 401}
	}
	if f.session == nil {
		return nil, &gateway.BackendError{Message: "unauthorized", Status: 401}
	}
	return f.session, nil
}

func (f *fakeGateway) FetchCatalog(context.Context) ([]models.SoftwareItem, error) {
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	out := make([]models.SoftwareItem, len(f.catalog))
	copy(out, f.catalog)
	return out, nil
}

func (f *fakeGateway) FetchEOLDates(_ context.Context, ids []string) ([]models.EOLDates, error) {
	if f.eolErr != nil {
		return nil, f.eolErr
	}
	return f.eol, nil
}

func (f *fakeGateway) FetchFavorites(context.Context) ([]string, error) {
	if f.favErr != nil {
		return nil, f.favErr
	}
	return f.favorites, nil
}

func (f *fakeGateway) AddFavorite(_ context.Context, id string) error {
	f.record("addfav %s", id)
	return f.favErr
}

func (f *fakeGateway) RemoveFavorite(_ context.Context, id string) error {
	f.record("rmfav %s", id)
	return f.favErr
}

func (f *fakeGateway) FetchTrackedVersions(context.Context) ([]models.TrackedVersion, error) {
	if f.trackedErr != nil {
		return nil, f.trackedErr
	}
	out := make([]models.TrackedVersion, len(f.tracked))
	copy(out, f.tracked)
	return out, nil
}

func (f *fakeGateway) InsertTrackedVersion(_ context.Context, softwareID, version string) (*models.TrackedVersion, error) {
	f.record("insert %s %s", softwareID, version)
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if f.insertedRow != nil {
		return f.insertedRow, nil
	}
	return &models.TrackedVersion{ID: "rec-" + softwareID, SoftwareID: softwareID, CurrentVersion: version}, nil
}

func (f *fakeGateway) UpdateTrackedVersion(_ context.Context, recordID, version string) error {
	f.record("update %s %s", recordID, version)
	return f.updateErr
}

func (f *fakeGateway) DeleteTrackedVersion(_ context.Context, recordID string) error {
	f.record("delete %s", recordID)
	return f.deleteErr
}

func (f *fakeGateway) DeleteTrackedBySoftware(_ context.Context, softwareID string) error {
	f.record("deletebysoftware %s", softwareID)
	return f.deleteErr
}

func (f *fakeGateway) FetchProfile(context.Context) (*models.Profile, error) {
	if f.session != nil && f.session.Profile != nil {
		return f.session.Profile, nil
	}
	return nil, &gateway.BackendError{Message: "not found", Status: 404}
}

func (f *fakeGateway) UpdateProfile(_ context.Context, fullName string, _, _ bool) error {
	f.record("updateprofile %s", fullName)
	return nil
}

func (f *fakeGateway) SubscribePush(_ context.Context, endpoint, _, _ string) error {
	f.record("push %s", endpoint)
	return nil
}

func (f *fakeGateway) UnsubscribePush(_ context.Context, endpoint string) error {
	f.record("unpush %s", endpoint)
	return nil
}

func (f *fakeGateway) InvokeVersionCheck(_ context.Context, ids []string) error {
	f.record("check %v", ids)
	return f.checkErr
}

func (f *fakeGateway) CreateAdminUser(_ context.Context, email, _, _ string) error {
	f.record("mkadmin %s", email)
	return nil
}

func (f *fakeGateway) CreateSoftware(_ context.Context, item *models.SoftwareItem) error {
	f.record("softadd %s", item.ID)
	return nil
}

func (f *fakeGateway) UpdateSoftware(_ context.Context, item *models.SoftwareItem) error {
	f.record("softedit %s", item.ID)
	return nil
}

func (f *fakeGateway) DeleteSoftware(_ context.Context, id string) error {
	f.record("softdel %s", id)
	return nil
}

func (f *fakeGateway) LogoUploadURL(_ context.Context, id string) (string, error) {
	f.record("logourl %s", id)
	return "https://storage.test/logos/" + id, nil
}
