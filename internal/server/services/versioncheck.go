package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/trackvers/trackvers/internal/logging"
	sc "github.com/trackvers/trackvers/internal/server/config"
	"github.com/trackvers/trackvers/internal/server/models"
	"github.com/trackvers/trackvers/internal/server/repositories/repomanager"
)

// VersionCheckService implements the check-versions function: for each
// requested software ID it asks the upstream release feed for the newest
// release cycle, then updates latest_version/last_checked on the software
// row and upserts the lifecycle dates. Callers treat the whole call as an
// opaque refresh trigger and re-fetch the catalog afterward.
type VersionCheckService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	baseURL     string
	timeout     time.Duration
	httpClient  *http.Client
}

func NewVersionCheckService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config, logger logging.Logger) *VersionCheckService {
	timeout := cfg.ReleaseFeedTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &VersionCheckService{
		db:          db,
		repomanager: m,
		logger:      logger,
		baseURL:     cfg.ReleaseFeedBaseURL,
		timeout:     timeout,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// releaseCycle is one entry of the upstream feed. The eol/support fields are
// either a date string or a boolean, hence json.RawMessage.
type releaseCycle struct {
	Cycle           string          `json:"cycle"`
	Latest          string          `json:"latest"`
	EOL             json.RawMessage `json:"eol"`
	Support         json.RawMessage `json:"support"`
	ExtendedSupport json.RawMessage `json:"extendedSupport"`
}

// CheckAll runs the check for every requested ID. Per-item failures are
// logged and skipped so one unknown product does not abort the batch; the
// call fails only when no ID could be checked at all.
func (s *VersionCheckService) CheckAll(ctx context.Context, softwareIDs []string) error {
	if len(softwareIDs) == 0 {
		return nil
	}

	var checked int
	var lastErr error
	for _, id := range softwareIDs {
		if err := s.checkOne(ctx, id); err != nil {
			s.logger.Warn(ctx, "version check failed", "software_id", id, "error", err.Error())
			lastErr = err
			continue
		}
		checked++
	}

	if checked == 0 && lastErr != nil {
		return fmt.Errorf("version check failed for all %d ids: %w", len(softwareIDs), lastErr)
	}
	return nil
}

func (s *VersionCheckService) checkOne(ctx context.Context, softwareID string) error {
	cycle, err := s.fetchLatestCycle(ctx, softwareID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.repomanager.Software(s.db).SetCheckResult(ctx, softwareID, cycle.Latest, now); err != nil {
		return err
	}

	dates := &models.EOLDates{
		SoftwareID:           softwareID,
		EOLDate:              parseFeedDate(cycle.EOL),
		EndOfSupportDate:     parseFeedDate(cycle.Support),
		EndOfMaintenanceDate: parseFeedDate(cycle.ExtendedSupport),
		Source:               s.baseURL,
	}
	if err := s.repomanager.EOLDates(s.db).Upsert(ctx, dates); err != nil {
		return err
	}

	s.logger.Info(ctx, "version check", "software_id", softwareID, "latest", cycle.Latest)
	return nil
}

func (s *VersionCheckService) fetchLatestCycle(ctx context.Context, softwareID string) (*releaseCycle, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s.json", s.baseURL, softwareID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("release feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release feed returned %s", resp.Status)
	}

	var cycles []releaseCycle
	if err := json.NewDecoder(resp.Body).Decode(&cycles); err != nil {
		return nil, fmt.Errorf("release feed decode: %w", err)
	}
	if len(cycles) == 0 {
		return nil, fmt.Errorf("release feed has no cycles for %q", softwareID)
	}

	// cycles are ordered newest first
	return &cycles[0], nil
}

// parseFeedDate interprets the feed's date-or-boolean fields; only a literal
// "YYYY-MM-DD" string yields a date.
func parseFeedDate(raw json.RawMessage) *time.Time {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
