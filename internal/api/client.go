package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/avelius/marquee/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Marquee/1.0"
	apiPrefix      = "/api"
)

// Client is the single HTTP client for the catalog API. The session is a
// secure cookie held in the client's jar; every request is credentialed.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	// 401 handling. sessionActive gates the hook so that the initial
	// profile probe on a cold start cannot trigger a logout loop.
	sessionActive  func() bool
	onUnauthorized func()
}

// NewClient creates a new catalog API client with its own cookie jar
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
		logger: logger,
	}
}

// SetUnauthorizedHook registers the global 401 handler. The hook fires only
// when sessionActive reports a previously established session.
func (c *Client) SetUnauthorizedHook(sessionActive func() bool, hook func()) {
	c.sessionActive = sessionActive
	c.onUnauthorized = hook
}

// envelope is the standard response wrapper used by every endpoint
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
}

// do performs a credentialed request and decodes the response envelope
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload interface{}) (*envelope, error) {
	reqURL := c.baseURL + apiPrefix + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.handleUnauthorized()
		return nil, domain.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrTitleNotFound
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		if msg := envelopeMessage(raw); msg != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrBadRequest, msg)
		}
		return nil, domain.ErrBadRequest
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		c.logger.Error("api request error", "status", resp.StatusCode, "body", string(raw))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Error("response parse error", "error", err, "bodyLen", len(raw))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &env, nil
}

// handleUnauthorized invokes the global 401 hook, but only if a session was
// previously believed active
func (c *Client) handleUnauthorized() {
	if c.sessionActive == nil || c.onUnauthorized == nil {
		return
	}
	if !c.sessionActive() {
		return
	}
	c.logger.Warn("session expired, clearing cached credentials")
	c.onUnauthorized()
}

// envelopeMessage extracts the server's error message, if any
func envelopeMessage(raw []byte) string {
	var env envelope
	if json.Unmarshal(raw, &env) != nil {
		return ""
	}
	return env.Message
}

// decodeData unmarshals the envelope's data field into dest
func decodeData(env *envelope, dest interface{}) error {
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
