package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/trackvers/trackvers/internal/client/gateway"
	"github.com/trackvers/trackvers/internal/client/models"
	"github.com/trackvers/trackvers/internal/common"
	"github.com/trackvers/trackvers/internal/versionx"
)

// DashboardRow is one tracked item joined with its catalog entry and, when
// known, its lifecycle dates.
type DashboardRow struct {
	models.SoftwareItem
	EOL *models.EOLDates
	// UpdateAvailable uses numeric comparison, unlike the catalog status, so
	// "1.2" vs "1.2.0" does not flag an update here.
	UpdateAvailable bool
}

// DashboardStore holds the signed-in user's tracked software with update and
// end-of-life context, and drives the manual version check.
type DashboardStore struct {
	mu      sync.RWMutex
	gw      gateway.Gateway
	session *SessionStore
	catalog *CatalogStore

	rows    []DashboardRow
	lastErr error
}

func NewDashboardStore(gw gateway.Gateway, session *SessionStore, catalog *CatalogStore) *DashboardStore {
	return &DashboardStore{gw: gw, session: session, catalog: catalog}
}

// Refresh rebuilds the rows from tracked versions, catalog entries and EOL
// dates. Prior rows survive a failed refresh.
func (s *DashboardStore) Refresh(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return common.ErrAuthRequired
	}

	tracked, err := s.gw.FetchTrackedVersions(ctx)
	if err != nil {
		s.setError(err)
		return err
	}

	software, err := s.gw.FetchCatalog(ctx)
	if err != nil {
		s.setError(err)
		return err
	}
	byID := make(map[string]models.SoftwareItem, len(software))
	for _, item := range software {
		byID[item.ID] = item
	}

	ids := make([]string, 0, len(tracked))
	for _, row := range tracked {
		ids = append(ids, row.SoftwareID)
	}

	eolBySoftware := map[string]models.EOLDates{}
	if len(ids) > 0 {
		eols, err := s.gw.FetchEOLDates(ctx, ids)
		if err != nil {
			s.setError(err)
			return err
		}
		for _, e := range eols {
			eolBySoftware[e.SoftwareID] = e
		}
	}

	rows := make([]DashboardRow, 0, len(tracked))
	for _, tv := range tracked {
		item, ok := byID[tv.SoftwareID]
		if !ok {
			// catalog entry removed since tracking started; show the bare row
			item = models.SoftwareItem{ID: tv.SoftwareID, Name: tv.SoftwareID}
		}
		item.CurrentVersion = tv.CurrentVersion
		item.TrackedID = tv.ID
		item.Status = statusFor(tv.CurrentVersion, item.LatestVersion)

		row := DashboardRow{
			SoftwareItem:    item,
			UpdateAvailable: versionx.Compare(item.LatestVersion, tv.CurrentVersion) > 0,
		}
		if e, ok := eolBySoftware[tv.SoftwareID]; ok {
			eol := e
			row.EOL = &eol
		}
		rows = append(rows, row)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
	s.lastErr = nil
	return nil
}

// AddTracked starts tracking softwareID at version. An empty version starts
// at the latest known version, or at the default when the catalog has none.
// A version above the latest known one is rejected before any gateway call.
func (s *DashboardStore) AddTracked(ctx context.Context, softwareID, version string) error {
	if !s.session.IsAuthenticated() {
		return common.ErrAuthRequired
	}
	if softwareID == "" {
		return fmt.Errorf("%w: software is required", common.ErrorValidation)
	}

	latest := ""
	if item, ok := s.catalog.item(softwareID); ok {
		latest = item.LatestVersion
	}
	if version == "" {
		version = latest
		if version == "" {
			version = defaultTrackedVersion
		}
	}
	if versionx.Clean(version) == "" {
		return fmt.Errorf("%w: version must contain digits", common.ErrorValidation)
	}
	if versionx.Compare(version, latest) > 0 {
		return fmt.Errorf("%w: version %s is above the latest known version %s",
			common.ErrorValidation, version, latest)
	}

	if _, err := s.gw.InsertTrackedVersion(ctx, softwareID, version); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// EditVersion updates one tracked row by record id. A version above the row's
// latest known version is rejected before any gateway call.
func (s *DashboardStore) EditVersion(ctx context.Context, recordID, version string) error {
	if !s.session.IsAuthenticated() {
		return common.ErrAuthRequired
	}
	if versionx.Clean(version) == "" {
		return fmt.Errorf("%w: version must contain digits", common.ErrorValidation)
	}

	s.mu.RLock()
	latest := ""
	for _, row := range s.rows {
		if row.TrackedID == recordID {
			latest = row.LatestVersion
			break
		}
	}
	s.mu.RUnlock()
	if versionx.Compare(version, latest) > 0 {
		return fmt.Errorf("%w: version %s is above the latest known version %s",
			common.ErrorValidation, version, latest)
	}

	if err := s.gw.UpdateTrackedVersion(ctx, recordID, version); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Remove stops tracking one row by record id.
func (s *DashboardStore) Remove(ctx context.Context, recordID string) error {
	if !s.session.IsAuthenticated() {
		return common.ErrAuthRequired
	}
	if err := s.gw.DeleteTrackedVersion(ctx, recordID); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// CheckVersions asks the server to re-check the latest versions of everything
// on the dashboard, then reloads.
func (s *DashboardStore) CheckVersions(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return common.ErrAuthRequired
	}

	s.mu.RLock()
	ids := make([]string, 0, len(s.rows))
	for _, row := range s.rows {
		ids = append(ids, row.ID)
	}
	s.mu.RUnlock()

	if err := s.gw.InvokeVersionCheck(ctx, ids); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *DashboardStore) Rows() []DashboardRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DashboardRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// UpdatesAvailable counts rows with a newer latest version.
func (s *DashboardStore) UpdatesAvailable() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, row := range s.rows {
		if row.UpdateAvailable {
			n++
		}
	}
	return n
}

func (s *DashboardStore) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *DashboardStore) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}
