package repository

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
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/greatday-recap-api/internal/models"
	"github.com/noah-isme/greatday-recap-api/pkg/config"
	appErrors "github.com/noah-isme/greatday-recap-api/pkg/errors"
)

// session holds the current GreatDay token pair. It lives inside the
// client value, never in package state, so two clients never share
// credentials.
type session struct {
	accessToken  string
	refreshToken string
	expiredAt    *time.Time
}

func (s *session) expired(now time.Time) bool {
	if s == nil || s.expiredAt == nil {
		return true
	}
	return now.After(*s.expiredAt)
}

// GreatDayClient talks to the GreatDay HR API: access-key login, bearer
// requests and a single refresh retry when a 401 arrives after the
// token actually expired.
type GreatDayClient struct {
	baseURL      string
	secretKey    string
	accessSecret string
	httpClient   *http.Client
	logger       *zap.Logger
	now          func() time.Time

	mu      sync.Mutex
	session *session
}

// NewGreatDayClient constructs a client from configuration.
func NewGreatDayClient(cfg config.GreatDayConfig, logger *zap.Logger) *GreatDayClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GreatDayClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:    cfg.SecretKey,
		accessSecret: cfg.AccessSecret,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
		now:          time.Now,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiredAt    string `json:"expired_at"`
}

func (c *GreatDayClient) buildURL(path string, query url.Values) string {
	rel := path
	if !strings.HasPrefix(rel, "/") {
		rel = "/" + rel
	}
	full := c.baseURL + rel
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full
}

// login exchanges the access key pair for a fresh token session.
// Callers must hold c.mu.
func (c *GreatDayClient) login(ctx context.Context) error {
	payload := map[string]string{
		"accessKey":    c.secretKey,
		"accessSecret": c.accessSecret,
	}

	var resp tokenResponse
	if err := c.postJSON(ctx, c.buildURL("/auth/login", nil), payload, &resp); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "greatday login failed")
	}
	return c.setSession(resp)
}

// refresh trades the refresh token for a new session. Callers must hold c.mu.
func (c *GreatDayClient) refresh(ctx context.Context) error {
	if c.session == nil || c.session.refreshToken == "" {
		return appErrors.Clone(appErrors.ErrUpstream, "no refresh token available")
	}

	payload := map[string]string{"refreshToken": c.session.refreshToken}

	var resp tokenResponse
	if err := c.postJSON(ctx, c.buildURL("/auth/refresh", nil), payload, &resp); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "greatday token refresh failed")
	}
	return c.setSession(resp)
}

func (c *GreatDayClient) setSession(resp tokenResponse) error {
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		return appErrors.Clone(appErrors.ErrUpstream, "auth response missing access_token or refresh_token")
	}
	c.session = &session{
		accessToken:  resp.AccessToken,
		refreshToken: resp.RefreshToken,
		// Token expiry is a GreatDay wall-clock value like every other
		// timestamp the API emits.
		expiredAt: models.ParseWIBTime(resp.ExpiredAt),
	}
	return nil
}

func (c *GreatDayClient) postJSON(ctx context.Context, fullURL string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// ensureToken returns a usable access token, logging in when the
// session is absent or past its expiry.
func (c *GreatDayClient) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.expired(c.now()) {
		if err := c.login(ctx); err != nil {
			return "", err
		}
	}
	return c.session.accessToken, nil
}

// Request performs one authenticated API call and decodes the JSON
// payload. A 401 triggers exactly one refresh-and-retry, and only when
// the held token has really expired; a 401 on a live token is an
// upstream fault, not a cue to hammer the auth endpoint.
func (c *GreatDayClient) Request(ctx context.Context, method, path string, query url.Values, body interface{}) (interface{}, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, method, path, query, body, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		c.mu.Lock()
		if !c.session.expired(c.now()) {
			c.mu.Unlock()
			return nil, appErrors.Clone(appErrors.ErrUpstream, "received 401 but access token has not expired; not refreshing")
		}
		if err := c.refresh(ctx); err != nil {
			c.mu.Unlock()
			return nil, err
		}
		token = c.session.accessToken
		c.mu.Unlock()

		resp, err = c.do(ctx, method, path, query, body, token)
		if err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := ""
		if raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 300)); readErr == nil && len(raw) > 0 {
			detail = " body: " + string(raw)
		}
		return nil, appErrors.Clone(appErrors.ErrUpstream,
			fmt.Sprintf("greatday request failed: %d %s.%s", resp.StatusCode, http.StatusText(resp.StatusCode), detail))
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var payload interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode greatday response")
	}
	return payload, nil
}

func (c *GreatDayClient) do(ctx context.Context, method, path string, query url.Values, body interface{}, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "greatday request")
	}
	return resp, nil
}
