package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/trackvers/trackvers/internal/client/config"
	"github.com/trackvers/trackvers/internal/client/models"
)

// HTTPGateway talks to the TrackVers server over its JSON API. The token pair
// is held behind a mutex because the stores call the gateway from multiple
// goroutines.
type HTTPGateway struct {
	baseURL string
	client  *http.Client

	mu     sync.RWMutex
	tokens *models.TokenPair
}

var _ Gateway = (*HTTPGateway)(nil)

func NewHTTPGateway(cfg *config.Config) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(cfg.ServerBaseURL, "/"),
		client:  &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// SetTokens installs the session's token pair; nil clears it.
func (g *HTTPGateway) SetTokens(pair *models.TokenPair) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tokens = pair
}

func (g *HTTPGateway) Tokens() *models.TokenPair {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tokens
}

// do performs one request and decodes the response into out (when non-nil).
// Any failure, transport or HTTP, comes back as *BackendError.
func (g *HTTPGateway) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &BackendError{Message: fmt.Sprintf("encoding request: %v", err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return &BackendError{Message: fmt.Sprintf("building request: %v", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if pair := g.Tokens(); pair != nil && pair.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return &BackendError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &BackendError{Message: errorMessage(resp), Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &BackendError{Message: fmt.Sprintf("decoding response: %v", err), Status: resp.StatusCode}
		}
	}
	return nil
}

// errorMessage pulls the server's {"error": ...} message out of a failed
// response, falling back to the HTTP status text.
func errorMessage(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return http.StatusText(resp.StatusCode)
}

func (g *HTTPGateway) Register(ctx context.Context, email, password, fullName string) (*models.TokenPair, error) {
	var pair models.TokenPair
	err := g.do(ctx, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":     email,
		"password":  password,
		"full_name": fullName,
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func (g *HTTPGateway) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	var pair models.TokenPair
	err := g.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func (g *HTTPGateway) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var pair models.TokenPair
	err := g.do(ctx, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func (g *HTTPGateway) Logout(ctx context.Context, refreshToken string) error {
	return g.do(ctx, http.MethodPost, "/api/v1/auth/logout", map[string]string{
		"refresh_token": refreshToken,
	}, nil)
}

func (g *HTTPGateway) FetchSession(ctx context.Context) (*SessionInfo, error) {
	var info SessionInfo
	if err := g.do(ctx, http.MethodGet, "/api/v1/auth/session", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (g *HTTPGateway) FetchCatalog(ctx context.Context) ([]models.SoftwareItem, error) {
	var resp struct {
		Software []models.SoftwareItem `json:"software"`
	}
	if err := g.do(ctx, http.MethodGet, "/api/v1/software", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Software, nil
}

func (g *HTTPGateway) FetchEOLDates(ctx context.Context, softwareIDs []string) ([]models.EOLDates, error) {
	path := "/api/v1/eol"
	if len(softwareIDs) > 0 {
		path += "?software_ids=" + url.QueryEscape(strings.Join(softwareIDs, ","))
	}

	var resp struct {
		EOLDates []models.EOLDates `json:"eol_dates"`
	}
	if err := g.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.EOLDates, nil
}

func (g *HTTPGateway) FetchFavorites(ctx context.Context) ([]string, error) {
	var resp struct {
		SoftwareIDs []string `json:"software_ids"`
	}
	if err := g.do(ctx, http.MethodGet, "/api/v1/favorites", nil, &resp); err != nil {
		return nil, err
	}
	return resp.SoftwareIDs, nil
}

func (g *HTTPGateway) AddFavorite(ctx context.Context, softwareID string) error {
	return g.do(ctx, http.MethodPut, "/api/v1/favorites/"+url.PathEscape(softwareID), nil, nil)
}

func (g *HTTPGateway) RemoveFavorite(ctx context.Context, softwareID string) error {
	return g.do(ctx, http.MethodDelete, "/api/v1/favorites/"+url.PathEscape(softwareID), nil, nil)
}

func (g *HTTPGateway) FetchTrackedVersions(ctx context.Context) ([]models.TrackedVersion, error) {
	var resp struct {
		Tracked []models.TrackedVersion `json:"tracked"`
	}
	if err := g.do(ctx, http.MethodGet, "/api/v1/tracked", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tracked, nil
}

func (g *HTTPGateway) InsertTrackedVersion(ctx context.Context, softwareID, version string) (*models.TrackedVersion, error) {
	var row models.TrackedVersion
	err := g.do(ctx, http.MethodPost, "/api/v1/tracked", map[string]string{
		"software_id":     softwareID,
		"current_version": version,
	}, &row)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (g *HTTPGateway) UpdateTrackedVersion(ctx context.Context, recordID, version string) error {
	return g.do(ctx, http.MethodPut, "/api/v1/tracked/"+url.PathEscape(recordID), map[string]string{
		"current_version": version,
	}, nil)
}

func (g *HTTPGateway) DeleteTrackedVersion(ctx context.Context, recordID string) error {
	return g.do(ctx, http.MethodDelete, "/api/v1/tracked/"+url.PathEscape(recordID), nil, nil)
}

func (g *HTTPGateway) DeleteTrackedBySoftware(ctx context.Context, softwareID string) error {
	return g.do(ctx, http.MethodDelete, "/api/v1/tracked?software_id="+url.QueryEscape(softwareID), nil, nil)
}

func (g *HTTPGateway) FetchProfile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	if err := g.do(ctx, http.MethodGet, "/api/v1/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (g *HTTPGateway) UpdateProfile(ctx context.Context, fullName string, notifyEmail, notifyBrowser bool) error {
	return g.do(ctx, http.MethodPut, "/api/v1/profile", map[string]any{
		"full_name":      fullName,
		"notify_email":   notifyEmail,
		"notify_browser": notifyBrowser,
	}, nil)
}

func (g *HTTPGateway) SubscribePush(ctx context.Context, endpoint, p256dh, auth string) error {
	return g.do(ctx, http.MethodPost, "/api/v1/push-subscriptions", map[string]string{
		"endpoint": endpoint,
		"p256dh":   p256dh,
		"auth":     auth,
	}, nil)
}

func (g *HTTPGateway) UnsubscribePush(ctx context.Context, endpoint string) error {
	return g.do(ctx, http.MethodDelete, "/api/v1/push-subscriptions?endpoint="+url.QueryEscape(endpoint), nil, nil)
}

func (g *HTTPGateway) InvokeVersionCheck(ctx context.Context, softwareIDs []string) error {
	if softwareIDs == nil {
		softwareIDs = []string{}
	}
	return g.do(ctx, http.MethodPost, "/api/v1/functions/check-versions", map[string]any{
		"softwareIds": softwareIDs,
	}, nil)
}

func (g *HTTPGateway) CreateAdminUser(ctx context.Context, email, password, fullName string) error {
	return g.do(ctx, http.MethodPost, "/api/v1/functions/create-admin-user", map[string]string{
		"email":    email,
		"password": password,
		"fullName": fullName,
	}, nil)
}

func (g *HTTPGateway) CreateSoftware(ctx context.Context, item *models.SoftwareItem) error {
	return g.do(ctx, http.MethodPost, "/api/v1/software", item, item)
}

func (g *HTTPGateway) UpdateSoftware(ctx context.Context, item *models.SoftwareItem) error {
	return g.do(ctx, http.MethodPut, "/api/v1/software/"+url.PathEscape(item.ID), item, item)
}

func (g *HTTPGateway) DeleteSoftware(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/api/v1/software/"+url.PathEscape(id), nil, nil)
}

func (g *HTTPGateway) LogoUploadURL(ctx context.Context, id string) (string, error) {
	var resp struct {
		UploadURL string `json:"upload_url"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/v1/software/"+url.PathEscape(id)+"/logo-url", nil, &resp); err != nil {
		return "", err
	}
	return resp.UploadURL, nil
}
