package stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackvers/trackvers/internal/client/gateway"
	"github.com/trackvers/trackvers/internal/client/localdata"
	"github.com/trackvers/trackvers/internal/client/models"
	"github.com/trackvers/trackvers/internal/common"
)

func sampleCatalog() []models.SoftwareItem {
	return []models.SoftwareItem{
		{ID: "golang", Name: "Go", Category: "Languages", LatestVersion: "1.22.0"},
		{ID: "postgres", Name: "PostgreSQL", Category: "Databases", LatestVersion: "16.2"},
		{ID: "obscure-tool", Name: "Obscure Tool"},
	}
}

// signedInCatalog returns a catalog store behind an authenticated session.
func signedInCatalog(t *testing.T, gw *fakeGateway) (*CatalogStore, *memStore) {
	t.Helper()
	local := newMemStore()

	gw.loginPair = &models.TokenPair{AccessToken: "at", RefreshToken: "rt"}
	gw.session = &gateway.SessionInfo{UserID: "u1", Email: "a@b.c"}

	session := NewSessionStore(gw, local)
	require.NoError(t, session.SignIn(context.Background(), "a@b.c", "pw"))
	require.True(t, session.IsAuthenticated())

	return NewCatalogStore(gw, local, session), local
}

func anonymousCatalog(t *testing.T, gw *fakeGateway) (*CatalogStore, *memStore) {
	t.Helper()
	local := newMemStore()
	session := NewSessionStore(gw, local)
	require.NoError(t, session.Init(context.Background()))
	require.Equal(t, SessionAnonymous, session.State())
	return NewCatalogStore(gw, local, session), local
}

func TestToggleTrackRequiresAuth(t *testing.T) {
	gw := &fakeGateway{catalog: sampleCatalog()}
	store, _ := anonymousCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))

	_, err := store.ToggleTrack(context.Background(), "golang")
	require.ErrorIs(t, err, common.ErrAuthRequired)
	assert.Empty(t, gw.calls, "no backend call may happen for anonymous tracking")
}

func TestToggleTrackStartsAtLatestVersion(t *testing.T) {
	gw := &fakeGateway{catalog: sampleCatalog()}
	store, _ := signedInCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))

	action, err := store.ToggleTrack(context.Background(), "golang")
	require.NoError(t, err)
	assert.Equal(t, "tracked", action)
	assert.Contains(t, gw.calls, "insert golang 1.22.0")

	for _, item := range store.Items() {
		if item.ID == "golang" {
			assert.Equal(t, "1.22.0", item.CurrentVersion)
			assert.Equal(t, "rec-golang", item.TrackedID)
			assert.Equal(t, models.StatusLatest, item.Status)
		}
	}
	for _, item := range store.Grouped()["Languages"] {
		if item.ID == "golang" {
			assert.True(t, item.Tracked())
			assert.Equal(t, models.StatusLatest, item.Status)
		}
	}
}

func TestToggleTrackDefaultsVersionWhenLatestUnknown(t *testing.T) {
	gw := &fakeGateway{catalog: sampleCatalog()}
	store, _ := signedInCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))

	action, err := store.ToggleTrack(context.Background(), "obscure-tool")
	require.NoError(t, err)
	assert.Equal(t, "tracked", action)
	assert.Contains(t, gw.calls, "insert obscure-tool 1.0.0")
}

func TestToggleTrackUntracksTrackedItem(t *testing.T) {
	gw := &fakeGateway{
		catalog: sampleCatalog(),
		tracked: []models.TrackedVersion{{ID: "r1", SoftwareID: "golang", CurrentVersion: "1.22.0"}},
	}
	store, _ := signedInCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))

	action, err := store.ToggleTrack(context.Background(), "golang")
	require.NoError(t, err)
	assert.Equal(t, "untracked", action)
	assert.Contains(t, gw.calls, "deletebysoftware golang")

	for _, item := range store.Items() {
		if item.ID == "golang" {
			assert.False(t, item.Tracked())
			assert.Empty(t, item.TrackedID)
			assert.Empty(t, item.Status)
		}
	}
	for _, item := range store.Grouped()["Languages"] {
		if item.ID == "golang" {
			assert.False(t, item.Tracked())
		}
	}
}

func TestToggleTrackKeepsStateOnDeleteError(t *testing.T) {
	gw := &fakeGateway{
		catalog:   sampleCatalog(),
		tracked:   []models.TrackedVersion{{ID: "r1", SoftwareID: "golang", CurrentVersion: "1.21.0"}},
		deleteErr: &gateway.BackendError{Message: "boom", Status: 500},
	}
	store, _ := signedInCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))

	_, err := store.ToggleTrack(context.Background(), "golang")
	require.Error(t, err)
	assert.Contains(t, gw.calls, "deletebysoftware golang")

	for _, item := range store.Items() {
		if item.ID == "golang" {
			assert.True(t, item.Tracked(), "a failed delete must not clear local state")
			assert.Equal(t, "1.21.0", item.CurrentVersion)
			assert.Equal(t, "r1", item.TrackedID)
		}
	}
	for _, item := range store.Grouped()["Languages"] {
		if item.ID == "golang" {
			assert.True(t, item.Tracked())
			assert.Equal(t, "1.21.0", item.CurrentVersion)
		}
	}
}

func TestToggleTrackOddSequenceEndsUntracked(t *testing.T) {
	gw := &fakeGateway{
		catalog: sampleCatalog(),
		tracked: []models.TrackedVersion{{ID: "r1", SoftwareID: "golang", CurrentVersion: "1.22.0"}},
	}
	store, _ := signedInCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))

	// from tracked state, each toggle flips the local item, so an odd number
	// of toggles lands on the same state a single untrack would
	for i, want := range []string{"untracked", "tracked", "untracked"} {
		action, err := store.ToggleTrack(context.Background(), "golang")
		require.NoError(t, err)
		assert.Equal(t, want, action, "toggle %d", i+1)
	}

	require.GreaterOrEqual(t, len(gw.calls), 3)
	assert.Equal(t, []string{
		"deletebysoftware golang",
		"insert golang 1.22.0",
		"deletebysoftware golang",
	}, gw.calls[len(gw.calls)-3:])

	for _, item := range store.Items() {
		if item.ID == "golang" {
			assert.False(t, item.Tracked())
			assert.Empty(t, item.CurrentVersion)
			assert.Empty(t, item.TrackedID)
			assert.Empty(t, item.Status)
		}
	}
	for _, item := range store.Grouped()["Languages"] {
		if item.ID == "golang" {
			assert.False(t, item.Tracked())
		}
	}
}

func TestToggleTrackKeepsStateOnBackendError(t *testing.T) {
	gw := &fakeGateway{catalog: sampleCatalog(), insertErr: &gateway.BackendError{Message: "boom", Status: 500}}
	store, _ := signedInCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))

	_, err := store.ToggleTrack(context.Background(), "golang")
	require.Error(t, err)

	for _, item := range store.Items() {
		if item.ID == "golang" {
			assert.False(t, item.Tracked(), "a failed insert must not patch local state")
		}
	}
}

func TestTrackedStatusUsesExactStringEquality(t *testing.T) {
	gw := &fakeGateway{
		catalog: []models.SoftwareItem{{ID: "node", Name: "Node.js", Category: "Runtimes", LatestVersion: "1.2.0"}},
		tracked: []models.TrackedVersion{{ID: "r1", SoftwareID: "node", CurrentVersion: "1.2"}},
	}
	store, _ := signedInCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))

	// "1.2" and "1.2.0" compare equal numerically but differ as strings
	item := store.Items()[0]
	assert.Equal(t, models.StatusUpdateAvailable, item.Status)
}

func TestEditVersionDoesNotRecomputeStatus(t *testing.T) {
	gw := &fakeGateway{
		catalog: []models.SoftwareItem{{ID: "redis", Name: "Redis", Category: "Databases", LatestVersion: "7.2.0"}},
		tracked: []models.TrackedVersion{{ID: "r1", SoftwareID: "redis", CurrentVersion: "7.2.0"}},
	}
	store, _ := signedInCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))
	require.Equal(t, models.StatusLatest, store.Items()[0].Status)

	require.NoError(t, store.EditVersion(context.Background(), "redis", "7.0.0"))
	assert.Contains(t, gw.calls, "update r1 7.0.0")

	item := store.Items()[0]
	assert.Equal(t, "7.0.0", item.CurrentVersion)
	assert.Equal(t, models.StatusLatest, item.Status, "status stays stale until the next refresh")
	for _, it := range store.Grouped()["Databases"] {
		assert.Equal(t, "7.0.0", it.CurrentVersion)
		assert.Equal(t, models.StatusLatest, it.Status)
	}

	// the next refresh recomputes it
	gw.tracked = []models.TrackedVersion{{ID: "r1", SoftwareID: "redis", CurrentVersion: "7.0.0"}}
	require.NoError(t, store.Refresh(context.Background()))
	assert.Equal(t, models.StatusUpdateAvailable, store.Items()[0].Status)
}

func TestEditVersionRejectsVersionWithoutDigits(t *testing.T) {
	gw := &fakeGateway{
		catalog: sampleCatalog(),
		tracked: []models.TrackedVersion{{ID: "r1", SoftwareID: "golang", CurrentVersion: "1.21.0"}},
	}
	store, _ := signedInCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))

	err := store.EditVersion(context.Background(), "golang", "latest")
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.NotContains(t, gw.calls, "update r1 latest")
}

func TestEditVersionRejectsVersionAboveLatest(t *testing.T) {
	gw := &fakeGateway{
		catalog: sampleCatalog(),
		tracked: []models.TrackedVersion{{ID: "r1", SoftwareID: "golang", CurrentVersion: "1.21.0"}},
	}
	store, _ := signedInCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))

	err := store.EditVersion(context.Background(), "golang", "2.0.0")
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.NotContains(t, gw.calls, "update r1 2.0.0", "validation failures never reach the gateway")
}

func TestEditVersionRequiresTrackedItem(t *testing.T) {
	gw := &fakeGateway{catalog: sampleCatalog()}
	store, _ := signedInCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))

	err := store.EditVersion(context.Background(), "golang", "1.5.0")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAnonymousFavoritesPersistLocally(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{catalog: sampleCatalog()}
	store, local := anonymousCatalog(t, gw)
	require.NoError(t, store.Refresh(ctx))

	fav, err := store.ToggleFavorite(ctx, "golang")
	require.NoError(t, err)
	assert.True(t, fav)
	assert.NotContains(t, gw.calls, "addfav golang", "anonymous favorites never hit the backend")

	raw, err := local.Get(ctx, localdata.KeyFavorites)
	require.NoError(t, err)
	assert.JSONEq(t, `["golang"]`, string(raw))

	// a new store over the same local data sees the favorite
	gw2 := &fakeGateway{catalog: sampleCatalog()}
	session2 := NewSessionStore(gw2, local)
	require.NoError(t, session2.Init(ctx))
	store2 := NewCatalogStore(gw2, local, session2)
	require.NoError(t, store2.Refresh(ctx))
	assert.True(t, store2.Favorite("golang"))

	fav, err = store2.ToggleFavorite(ctx, "golang")
	require.NoError(t, err)
	assert.False(t, fav)
	raw, _ = local.Get(ctx, localdata.KeyFavorites)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestSignedInFavoritesUseBackend(t *testing.T) {
	gw := &fakeGateway{catalog: sampleCatalog(), favorites: []string{"postgres"}}
	store, _ := signedInCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))
	assert.True(t, store.Favorite("postgres"))

	fav, err := store.ToggleFavorite(context.Background(), "golang")
	require.NoError(t, err)
	assert.True(t, fav)
	assert.Contains(t, gw.calls, "addfav golang")

	fav, err = store.ToggleFavorite(context.Background(), "postgres")
	require.NoError(t, err)
	assert.False(t, fav)
	assert.Contains(t, gw.calls, "rmfav postgres")
}

func TestRefreshKeepsPriorStateOnError(t *testing.T) {
	gw := &fakeGateway{catalog: sampleCatalog()}
	store, _ := signedInCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))
	require.Len(t, store.Items(), 3)

	gw.catalogErr = errBoom{}
	err := store.Refresh(context.Background())
	require.Error(t, err)
	assert.Len(t, store.Items(), 3, "a failed refresh keeps the last good data")
	assert.Error(t, store.LastError())

	gw.catalogErr = nil
	require.NoError(t, store.Refresh(context.Background()))
	assert.NoError(t, store.LastError())
}

func TestGroupingDefaultsCategory(t *testing.T) {
	gw := &fakeGateway{catalog: sampleCatalog()}
	store, _ := anonymousCatalog(t, gw)
	require.NoError(t, store.Refresh(context.Background()))

	grouped := store.Grouped()
	require.Contains(t, grouped, common.DefaultCategory)
	assert.Equal(t, "obscure-tool", grouped[common.DefaultCategory][0].ID)
	assert.Equal(t, []string{"Databases", "Languages", common.DefaultCategory}, store.Categories())
}
