package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/trackvers/trackvers/internal/client/gateway"
	"github.com/trackvers/trackvers/internal/client/localdata"
	"github.com/trackvers/trackvers/internal/client/models"
	"github.com/trackvers/trackvers/internal/common"
	"github.com/trackvers/trackvers/internal/versionx"
)

// defaultTrackedVersion is what a fresh tracking row starts at when the
// catalog has no known latest version; users adjust it afterwards.
const defaultTrackedVersion = "1.0.0"

// CatalogStore holds the browsable catalog in two shapes at once: a flat list
// and per-category buckets. Mutations patch both shapes, and only after the
// backend call succeeded.
type CatalogStore struct {
	mu      sync.RWMutex
	gw      gateway.Gateway
	local   localdata.Store
	session *SessionStore

	items     []models.SoftwareItem
	grouped   map[string][]models.SoftwareItem
	favorites []string
	lastErr   error
	loaded    bool
}

func NewCatalogStore(gw gateway.Gateway, local localdata.Store, session *SessionStore) *CatalogStore {
	return &CatalogStore{gw: gw, local: local, session: session}
}

// Refresh rebuilds the store from the backend. On failure the previous state
// stays visible and the error is kept for the view.
func (s *CatalogStore) Refresh(ctx context.Context) error {
	software, err := s.gw.FetchCatalog(ctx)
	if err != nil {
		s.setError(err)
		return err
	}

	trackedBySoftware := map[string]models.TrackedVersion{}
	if s.session.IsAuthenticated() {
		tracked, err := s.gw.FetchTrackedVersions(ctx)
		if err != nil {
			s.setError(err)
			return err
		}
		for _, row := range tracked {
			trackedBySoftware[row.SoftwareID] = row
		}
	}

	favorites, err := s.fetchFavorites(ctx)
	if err != nil {
		s.setError(err)
		return err
	}

	items := make([]models.SoftwareItem, len(software))
	for i, item := range software {
		if row, ok := trackedBySoftware[item.ID]; ok {
			item.CurrentVersion = row.CurrentVersion
			item.TrackedID = row.ID
			item.Status = statusFor(row.CurrentVersion, item.LatestVersion)
		}
		items[i] = item
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.grouped = groupByCategory(items)
	s.favorites = favorites
	s.lastErr = nil
	s.loaded = true
	return nil
}

// ToggleTrack flips the tracking state of one software item and reports which
// way it went, "tracked" or "untracked". New rows start at the latest known
// version, or at the default when the catalog has none. Anonymous sessions
// get ErrAuthRequired.
func (s *CatalogStore) ToggleTrack(ctx context.Context, softwareID string) (string, error) {
	if !s.session.IsAuthenticated() {
		return "", common.ErrAuthRequired
	}

	item, ok := s.item(softwareID)
	if !ok {
		return "", fmt.Errorf("unknown software %q: %w", softwareID, common.ErrorNotFound)
	}

	if item.Tracked() {
		if err := s.gw.DeleteTrackedBySoftware(ctx, softwareID); err != nil {
			return "", err
		}
		s.patch(softwareID, func(it *models.SoftwareItem) {
			it.CurrentVersion = ""
			it.TrackedID = ""
			it.Status = ""
		})
		return "untracked", nil
	}

	version := item.LatestVersion
	if version == "" {
		version = defaultTrackedVersion
	}
	row, err := s.gw.InsertTrackedVersion(ctx, softwareID, version)
	if err != nil {
		return "", err
	}
	s.patch(softwareID, func(it *models.SoftwareItem) {
		it.CurrentVersion = row.CurrentVersion
		it.TrackedID = row.ID
		it.Status = models.StatusLatest
	})
	return "tracked", nil
}

// EditVersion changes the tracked version of one item. The displayed status
// is left as it was; it catches up on the next Refresh.
func (s *CatalogStore) EditVersion(ctx context.Context, softwareID, version string) error {
	if !s.session.IsAuthenticated() {
		return common.ErrAuthRequired
	}
	if versionx.Clean(version) == "" {
		return fmt.Errorf("%w: version must contain digits", common.ErrorValidation)
	}

	item, ok := s.item(softwareID)
	if !ok {
		return fmt.Errorf("unknown software %q: %w", softwareID, common.ErrorNotFound)
	}
	if !item.Tracked() {
		return fmt.Errorf("software %q is not tracked: %w", softwareID, common.ErrorNotFound)
	}
	if versionx.Compare(version, item.LatestVersion) > 0 {
		return fmt.Errorf("%w: version %s is above the latest known version %s",
			common.ErrorValidation, version, item.LatestVersion)
	}

	if err := s.gw.UpdateTrackedVersion(ctx, item.TrackedID, version); err != nil {
		return err
	}
	s.patch(softwareID, func(it *models.SoftwareItem) {
		it.CurrentVersion = version
	})
	return nil
}

// ToggleFavorite flips the favorite state and reports whether the item is now
// a favorite. Anonymous favorites live in local storage only.
func (s *CatalogStore) ToggleFavorite(ctx context.Context, softwareID string) (bool, error) {
	isFav := s.Favorite(softwareID)

	if s.session.IsAuthenticated() {
		var err error
		if isFav {
			err = s.gw.RemoveFavorite(ctx, softwareID)
		} else {
			err = s.gw.AddFavorite(ctx, softwareID)
		}
		if err != nil {
			return isFav, err
		}
		s.applyFavorite(softwareID, !isFav)
		return !isFav, nil
	}

	s.applyFavorite(softwareID, !isFav)
	if err := s.persistLocalFavorites(ctx); err != nil {
		return !isFav, err
	}
	return !isFav, nil
}

func (s *CatalogStore) Items() []models.SoftwareItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SoftwareItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *CatalogStore) Grouped() map[string][]models.SoftwareItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]models.SoftwareItem, len(s.grouped))
	for cat, bucket := range s.grouped {
		b := make([]models.SoftwareItem, len(bucket))
		copy(b, bucket)
		out[cat] = b
	}
	return out
}

// Categories returns the category names in alphabetical order.
func (s *CatalogStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cats := make([]string, 0, len(s.grouped))
	for cat := range s.grouped {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

func (s *CatalogStore) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.favorites))
	copy(out, s.favorites)
	return out
}

func (s *CatalogStore) Favorite(softwareID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.favorites {
		if id == softwareID {
			return true
		}
	}
	return false
}

func (s *CatalogStore) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *CatalogStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// --- internals ---

// statusFor derives the tracking status by exact string comparison; "1.2" and
// "1.2.0" are shown as an available update even though they compare equal
// numerically.
func statusFor(current, latest string) models.Status {
	if current == latest {
		return models.StatusLatest
	}
	return models.StatusUpdateAvailable
}

func groupByCategory(items []models.SoftwareItem) map[string][]models.SoftwareItem {
	grouped := map[string][]models.SoftwareItem{}
	for _, item := range items {
		cat := item.Category
		if cat == "" {
			cat = common.DefaultCategory
		}
		grouped[cat] = append(grouped[cat], item)
	}
	return grouped
}

func (s *CatalogStore) item(softwareID string) (models.SoftwareItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == softwareID {
			return it, true
		}
	}
	return models.SoftwareItem{}, false
}

// patch applies fn to the item in the flat list and in every category bucket
// that holds it.
func (s *CatalogStore) patch(softwareID string, fn func(*models.SoftwareItem)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == softwareID {
			fn(&s.items[i])
		}
	}
	for _, bucket := range s.grouped {
		for i := range bucket {
			if bucket[i].ID == softwareID {
				fn(&bucket[i])
			}
		}
	}
}

func (s *CatalogStore) applyFavorite(softwareID string, fav bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fav {
		for _, id := range s.favorites {
			if id == softwareID {
				return
			}
		}
		s.favorites = append(s.favorites, softwareID)
		return
	}
	out := s.favorites[:0]
	for _, id := range s.favorites {
		if id != softwareID {
			out = append(out, id)
		}
	}
	s.favorites = out
}

func (s *CatalogStore) fetchFavorites(ctx context.Context) ([]string, error) {
	if s.session.IsAuthenticated() {
		return s.gw.FetchFavorites(ctx)
	}

	raw, err := s.local.Get(ctx, localdata.KeyFavorites)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		// a corrupt list is treated as empty rather than blocking the page
		return nil, nil
	}
	return ids, nil
}

func (s *CatalogStore) persistLocalFavorites(ctx context.Context) error {
	raw, err := json.Marshal(s.Favorites())
	if err != nil {
		return err
	}
	return s.local.Set(ctx, localdata.KeyFavorites, raw)
}

func (s *CatalogStore) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}
