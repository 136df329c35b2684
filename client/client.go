// Package client is the authenticated HTTP pipeline every API service
// goes through: bearer token attachment, a single-flight token refresh
// triggered by 401 responses, and a one-shot retry of read requests
// that failed before a response was received.
package client

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/octabyte/bm-blogclient/otel"
	"github.com/octabyte/bm-blogclient/store"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultRetryWait = 200 * time.Millisecond
	refreshPath      = "/auth/refresh"
)

var validate = validator.New()

// Config configures the API client.
type Config struct {
	// BaseURL is the root of the blogging platform API, e.g.
	// "https://api.example.com/api".
	BaseURL string `validate:"required,url"`
	// Timeout applies to every request. Defaults to 15s.
	Timeout time.Duration `validate:"min=0"`
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables resty's request/response dumping.
	Debug bool
	// OnSessionExpired is invoked after a failed refresh invalidates
	// the session, so the host application can route the user back to
	// its login entry point. Optional.
	OnSessionExpired func()
}

// Client executes API requests against the remote server. All mutable
// cross-request state (the stored token, the in-flight refresh) lives
// behind the token store and the refresher; Client itself is safe for
// concurrent use.
type Client struct {
	rc        *resty.Client
	store     store.TokenStore
	refresher *refresher
	baseURL   string

	onSessionExpired func()
}

// New builds a Client over the given token store.
func New(cfg Config, st store.TokenStore) (*Client, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}

	c := &Client{
		store:            st,
		baseURL:          cfg.BaseURL,
		onSessionExpired: cfg.OnSessionExpired,
	}
	c.refresher = newRefresher(c)

	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetDebug(cfg.Debug)

	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}

	rc.OnBeforeRequest(c.beforeRequest)

	// One retry, reads only, and only when no response was received.
	// A 401 is a received response so it never lands here.
	rc.SetRetryCount(1)
	rc.SetRetryWaitTime(defaultRetryWait)
	rc.AddRetryCondition(shouldRetry)
	rc.AddRetryHook(func(resp *resty.Response, err error) {
		zap.L().Warn("retrying read request after transient failure",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Error(err),
		)
	})

	c.rc = rc
	return c, nil
}

// beforeRequest attaches the bearer token when one is stored, a
// request correlation ID, and the active trace context.
func (c *Client) beforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx := req.Context()

	creds, err := c.store.Load(ctx)
	if err == nil && creds.AccessToken != "" {
		req.SetHeader("Authorization", "Bearer "+creds.AccessToken)
	}

	req.SetHeader("X-Request-ID", uuid.NewString())

	for k, v := range otel.InjectTraceHeaders(ctx, nil) {
		req.SetHeader(k, v)
	}
	return nil
}

func (c *Client) notifySessionExpired() {
	zap.L().Warn("session invalidated, credentials cleared")
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// Get issues a GET and decodes the response into out (out may be nil).
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	_, err := c.do(ctx, requestSpec{method: http.MethodGet, path: path, out: out})
	return err
}

// GetQuery issues a GET with query parameters.
func (c *Client) GetQuery(ctx context.Context, path string, query map[string]string, out interface{}) error {
	_, err := c.do(ctx, requestSpec{method: http.MethodGet, path: path, query: query, out: out})
	return err
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.do(ctx, requestSpec{method: http.MethodPost, path: path, body: body, out: out})
	return err
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.do(ctx, requestSpec{method: http.MethodPut, path: path, body: body, out: out})
	return err
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.do(ctx, requestSpec{method: http.MethodPatch, path: path, body: body, out: out})
	return err
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	_, err := c.do(ctx, requestSpec{method: http.MethodDelete, path: path, out: out})
	return err
}

// Raw issues a request and returns the raw response body, for call
// sites that normalize loosely-shaped server responses themselves.
func (c *Client) Raw(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	resp, err := c.do(ctx, requestSpec{method: method, path: path, body: body})
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), resp.Body()...), nil
}

// Upload sends a multipart form with a single file part plus optional
// extra fields. The multipart content type replaces the JSON default.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader, fields map[string]string, out interface{}) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, requestSpec{
		method:   http.MethodPost,
		path:     path,
		formData: fields,
		file:     &fileUpload{field: field, filename: filename, content: content},
		out:      out,
	})
	return err
}
