package placement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer credential attached to every request. The
// session store implements it; tests use StaticToken.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed credential, mainly for tests and one-shot tools.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, error) { return string(s), nil }

// Observer receives one Started event when an API call is issued and one
// Observe event when it finishes, so implementations can track calls in
// flight. Outcome is "ok" or "error"; group is the role segment of the
// path (admin, student, ...).
type Observer interface {
	Started(group string)
	Observe(group, outcome string)
}

// Client is the authenticated gateway to the placement backend. Every call
// takes a context, applies the configured timeout and issues exactly one
// request; failures are returned to the caller and never retried.
type Client struct {
	cfg    Config
	tokens TokenSource
	client *http.Client
	obs    Observer

	closed int32 // atomic flag for Close()
}

// NewClient creates a new placement API client.
func NewClient(cfg Config, tokens TokenSource, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	c := &Client{
		cfg:    cfg,
		tokens: tokens,
		client: httpClient,
	}
	logger.Info("placement: NewClient created", slog.String("base_url", cfg.BaseURL), slog.Duration("timeout", cfg.Timeout))
	return c, nil
}

// NewDefaultClient creates a client with a tuned HTTP transport.
func NewDefaultClient(cfg Config, tokens TokenSource) (*Client, error) {
	defaultClient := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return NewClient(cfg, tokens, defaultClient)
}

// SetObserver installs a metrics hook. Passing nil is a no-op.
func (c *Client) SetObserver(o Observer) {
	if o != nil {
		c.obs = o
	}
}

// Close releases any resources held by the client. It closes idle
// connections on the underlying transport when supported and is idempotent.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}

// package-level logger for pkg/placement; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/placement. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// pathGroup extracts the role segment for metrics: /api/admin/... -> admin.
func pathGroup(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/api/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "other"
	}
	return parts[0]
}

func (c *Client) started(path string) {
	if c.obs != nil {
		c.obs.Started(pathGroup(path))
	}
}

func (c *Client) observe(path string, err error) {
	if c.obs == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.obs.Observe(pathGroup(path), outcome)
}

// newRequest builds an authenticated request with a fresh request id.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.cfg.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.tokens != nil {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read credential: %w", err)
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	return req, nil
}

// doRaw issues one request and returns the raw body of a 2xx response. A
// non-2xx status becomes an *APIError regardless of body shape.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	c.started(path)
	raw, err := c.roundTrip(ctx, method, path, query, body)
	c.observe(path, err)
	return raw, err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	logger.Debug("placement: request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp.StatusCode, payload)
	}
	return payload, nil
}

// do issues one request and decodes the JSON response into out (skipped when
// out is nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// download fetches an opaque byte stream (reports, evaluation graphs).
func (c *Client) download(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.doRaw(ctx, http.MethodGet, path, query, nil)
}

// upload sends one file as multipart form data and decodes the response.
func (c *Client) upload(ctx context.Context, path, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("finish upload form: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	c.started(path)
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		c.observe(path, err)
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		err = fmt.Errorf("send upload: %w", err)
		c.observe(path, err)
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("read upload response: %w", err)
		c.observe(path, err)
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = decodeError(resp.StatusCode, payload)
		c.observe(path, err)
		return err
	}
	c.observe(path, nil)

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode upload response: %w", err)
	}
	return nil
}
