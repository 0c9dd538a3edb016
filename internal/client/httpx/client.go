package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marmota/failboard/internal/client/metrics"
	"github.com/marmota/failboard/internal/client/models"
	"github.com/marmota/failboard/internal/common"
	"github.com/marmota/failboard/internal/logging"
)

const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultTimeout = 30 * time.Second

	maxBodyBytes = 8 << 20
)

// TokenStore is the part of the session store the client needs.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Navigator lets the client send the user back to the login view.
type Navigator interface {
	OnLoginView() bool
	RedirectToLogin()
}

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	TokenHeader string
	TokenPrefix string
	LoginPath   string
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.TokenHeader == "" {
		c.TokenHeader = common.DefaultTokenHeader
	}
	if c.TokenPrefix == "" {
		c.TokenPrefix = common.DefaultTokenPrefix
	}
	if c.LoginPath == "" {
		c.LoginPath = common.LoginPath
	}
	return c
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *Client) { c.metrics = r }
}

func WithNavigator(n Navigator) Option {
	return func(c *Client) { c.nav = n }
}

func WithRequestID(gen func() string) Option {
	return func(c *Client) { c.requestID = gen }
}

// Client sends JSON requests to the API.
type Client struct {
	cfg       Config
	http      *http.Client
	store     TokenStore
	nav       Navigator
	log       logging.Logger
	metrics   metrics.Recorder
	requestID func() string
}

func New(cfg Config, store TokenStore, opts ...Option) *Client {
	cfg = cfg.withDefaults()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		cfg:       cfg,
		store:     store,
		log:       logging.Discard(),
		metrics:   metrics.Nop{},
		requestID: uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: cfg.Timeout}
	}
	return c
}

// SetNavigator replaces the navigator after construction. The shell creates
// the client before it exists.
func (c *Client) SetNavigator(n Navigator) {
	c.nav = n
}

func (c *Client) BaseURL() string { return c.cfg.BaseURL }

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do performs one request. A nil body sends no payload; a nil out discards
// the response body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		c.log.Error(ctx, "build request failed", "method", method, "path", path, "error", err)
		return err
	}

	if err := c.authorize(ctx, req); err != nil {
		c.log.Error(ctx, "read session token failed", "method", method, "path", path, "error", err)
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(method, 0, time.Since(start))
		c.log.Error(ctx, "request failed", "method", method, "path", path, "error", err)
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.metrics.ObserveRequest(method, resp.StatusCode, time.Since(start))
	if err != nil {
		c.log.Error(ctx, "read response failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("read response body: %w", err)
	}

	c.log.Debug(ctx, "api response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get(common.RequestIDHeader),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleFailure(ctx, method, path, resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Error(ctx, "decode response failed", "method", method, "path", path, "error", err)
		return models.NewDecodeError("response body", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := c.cfg.BaseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", common.ContentTypeJSON)
	req.Header.Set("Accept", common.ContentTypeJSON)
	req.Header.Set(common.RequestIDHeader, c.requestID())
	return req, nil
}

// authorize attaches "<header>: <prefix> <token>" when a token is stored.
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.store == nil {
		return nil
	}
	token, err := c.store.Token(ctx)
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}
	if token == "" {
		return nil
	}
	value := token
	if c.cfg.TokenPrefix != "" {
		value = c.cfg.TokenPrefix + " " + token
	}
	req.Header.Set(c.cfg.TokenHeader, value)
	return nil
}

func (c *Client) handleFailure(ctx context.Context, method, path string, status int, raw []byte) error {
	apiErr := &APIError{
		Status:  status,
		Message: errorMessage(status, raw),
		Method:  method,
		Path:    path,
	}
	c.log.Error(ctx, "api error", "method", method, "path", path, "status", status, "message", apiErr.Message)

	if status != http.StatusUnauthorized || c.isLoginPath(path) {
		return apiErr
	}

	c.teardown(ctx)
	return fmt.Errorf("%w: %w", ErrSessionExpired, apiErr)
}

// teardown clears the session and redirects to login unless the user is
// already there.
func (c *Client) teardown(ctx context.Context) {
	c.metrics.SessionTeardown()
	if c.store != nil {
		if err := c.store.Clear(ctx); err != nil {
			c.log.Error(ctx, "clear session failed", "error", err)
		}
	}
	if c.nav == nil || c.nav.OnLoginView() {
		return
	}
	c.log.Info(ctx, "session expired, redirecting to login")
	c.nav.RedirectToLogin()
}

func (c *Client) isLoginPath(path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return strings.Contains(path, c.cfg.LoginPath)
}

func errorMessage(status int, raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if m := strings.TrimSpace(body.Message); m != "" {
			return m
		}
		if m := strings.TrimSpace(body.Error); m != "" {
			return m
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unexpected status"
}
