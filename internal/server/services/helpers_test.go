package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/trackvers/trackvers/internal/dbx"
	"github.com/trackvers/trackvers/internal/server/config"
	"github.com/trackvers/trackvers/internal/server/models"
	eoldatesrepo "github.com/trackvers/trackvers/internal/server/repositories/eoldates"
	favoritesrepo "github.com/trackvers/trackvers/internal/server/repositories/favorites"
	profilesrepo "github.com/trackvers/trackvers/internal/server/repositories/profiles"
	pushsubsrepo "github.com/trackvers/trackvers/internal/server/repositories/pushsubs"
	refreshtokensrepo "github.com/trackvers/trackvers/internal/server/repositories/refreshtokens"
	softwarerepo "github.com/trackvers/trackvers/internal/server/repositories/software"
	usersrepo "github.com/trackvers/trackvers/internal/server/repositories/users"
	versionsrepo "github.com/trackvers/trackvers/internal/server/repositories/versions"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
}

// --- fake repositories ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	getOut    *models.User
	getErr    error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *u
	out.ID = "generated-id"
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(context.Context, string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByID(context.Context, string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeProfilesRepo struct {
	created   []*models.Profile
	createErr error
	getOut    *models.Profile
	getErr    error
	updateErr error
}

func (f *fakeProfilesRepo) Create(_ context.Context, p *models.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, p)
	return nil
}

func (f *fakeProfilesRepo) Get(context.Context, string) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeProfilesRepo) Update(context.Context, *models.Profile) error { return f.updateErr }

type fakeRefreshRepo struct {
	findOut   *models.RefreshToken
	findErr   error
	delErr    error
	createErr error
	deleted   []string
}

func (f *fakeRefreshRepo) Create(context.Context, string, string, time.Duration) error {
	return f.createErr
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeSoftwareRepo struct {
	listOut   []*models.Software
	listErr   error
	getOut    *models.Software
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	created      []*models.Software
	logoURLs     map[string]string
	checkResults map[string]string
}

func (f *fakeSoftwareRepo) List(context.Context) ([]*models.Software, error) {
	return f.listOut, f.listErr
}

func (f *fakeSoftwareRepo) ListByIDs(context.Context, []string) ([]*models.Software, error) {
	return f.listOut, f.listErr
}

func (f *fakeSoftwareRepo) Get(context.Context, string) (*models.Software, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeSoftwareRepo) Create(_ context.Context, s *models.Software) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSoftwareRepo) Update(context.Context, *models.Software) error { return f.updateErr }
func (f *fakeSoftwareRepo) Delete(context.Context, string) error           { return f.deleteErr }

func (f *fakeSoftwareRepo) SetLogoURL(_ context.Context, id, logoURL string) error {
	if f.logoURLs == nil {
		f.logoURLs = map[string]string{}
	}
	f.logoURLs[id] = logoURL
	return nil
}

func (f *fakeSoftwareRepo) SetCheckResult(_ context.Context, id, latest string, _ time.Time) error {
	if f.checkResults == nil {
		f.checkResults = map[string]string{}
	}
	f.checkResults[id] = latest
	return nil
}

type fakeVersionsRepo struct {
	listOut   []*models.TrackedVersion
	listErr   error
	getOut    *models.TrackedVersion
	getErr    error
	insertOut *models.TrackedVersion
	insertErr error
	updateErr error
	deleteErr error

	inserted []*models.TrackedVersion
}

func (f *fakeVersionsRepo) ListByUser(context.Context, string) ([]*models.TrackedVersion, error) {
	return f.listOut, f.listErr
}

func (f *fakeVersionsRepo) GetByUserAndSoftware(context.Context, string, string) (*models.TrackedVersion, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeVersionsRepo) Insert(_ context.Context, v *models.TrackedVersion) (*models.TrackedVersion, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = append(f.inserted, v)
	if f.insertOut != nil {
		return f.insertOut, nil
	}
	out := *v
	out.ID = "rec-1"
	return &out, nil
}

func (f *fakeVersionsRepo) UpdateVersion(context.Context, string, string, string) error {
	return f.updateErr
}

func (f *fakeVersionsRepo) DeleteByID(context.Context, string, string) error { return f.deleteErr }

func (f *fakeVersionsRepo) DeleteByUserAndSoftware(context.Context, string, string) error {
	return f.deleteErr
}

type fakeEOLRepo struct {
	listOut   []*models.EOLDates
	listErr   error
	upsertErr error
	upserted  []*models.EOLDates
}

func (f *fakeEOLRepo) ListBySoftwareIDs(context.Context, []string) ([]*models.EOLDates, error) {
	return f.listOut, f.listErr
}

func (f *fakeEOLRepo) Upsert(_ context.Context, d *models.EOLDates) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, d)
	return nil
}

type fakeFavoritesRepo struct {
	listOut []string
	listErr error
	addErr  error
	rmErr   error
}

func (f *fakeFavoritesRepo) ListIDs(context.Context, string) ([]string, error) {
	return f.listOut, f.listErr
}
func (f *fakeFavoritesRepo) Add(context.Context, string, string) error    { return f.addErr }
func (f *fakeFavoritesRepo) Remove(context.Context, string, string) error { return f.rmErr }

type fakePushRepo struct {
	upsertErr error
	deleteErr error
}

func (f *fakePushRepo) Upsert(context.Context, *models.PushSubscription) error { return f.upsertErr }
func (f *fakePushRepo) Delete(context.Context, string, string) error           { return f.deleteErr }

// --- fake repository manager ---

type fakeRepoManager struct {
	users    *fakeUsersRepo
	profiles *fakeProfilesRepo
	refresh  *fakeRefreshRepo
	software *fakeSoftwareRepo
	versions *fakeVersionsRepo
	eol      *fakeEOLRepo
	fav      *fakeFavoritesRepo
	push     *fakePushRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.users }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profilesrepo.Repository    { return m.profiles }
func (m *fakeRepoManager) Software(dbx.DBTX) softwarerepo.Repository    { return m.software }
func (m *fakeRepoManager) Versions(dbx.DBTX) versionsrepo.Repository    { return m.versions }
func (m *fakeRepoManager) Favorites(dbx.DBTX) favoritesrepo.Repository  { return m.fav }
func (m *fakeRepoManager) EOLDates(dbx.DBTX) eoldatesrepo.Repository    { return m.eol }
func (m *fakeRepoManager) PushSubscriptions(dbx.DBTX) pushsubsrepo.Repository {
	return m.push
}
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository {
	return m.refresh
}
