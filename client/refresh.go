package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/octabyte/bm-blogclient/store"
)

// refresher guarantees at most one refresh call is outstanding at a
// time. Requests that observe a 401 while a refresh is pending wait on
// the pending channel instead of issuing a second refresh; the close
// of that channel broadcasts the settled outcome to every waiter at
// once, success and failure alike.
type refresher struct {
	client *Client

	mu      sync.Mutex
	pending chan struct{}
	token   string
	err     error
}

func newRefresher(c *Client) *refresher {
	return &refresher{client: c}
}

// Refresh returns the access token produced by the in-flight refresh,
// starting one if none is pending. Waiters resume only after the
// shared refresh settles, or when their own context is cancelled.
func (r *refresher) Refresh(ctx context.Context) (string, error) {
	r.mu.Lock()
	if ch := r.pending; ch != nil {
		r.mu.Unlock()
		select {
		case <-ch:
			r.mu.Lock()
			token, err := r.token, r.err
			r.mu.Unlock()
			return token, err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	ch := make(chan struct{})
	r.pending = ch
	r.mu.Unlock()

	token, err := r.doRefresh(ctx)

	r.mu.Lock()
	r.token, r.err = token, err
	r.pending = nil
	r.mu.Unlock()
	close(ch)

	return token, err
}

// doRefresh performs the actual POST /auth/refresh. The refresh
// credential travels via the client's cookie jar; the response token
// is accepted at accessToken or data.accessToken and persisted before
// any waiter resumes.
func (r *refresher) doRefresh(ctx context.Context) (string, error) {
	zap.L().Debug("refreshing access token")

	// Bypasses do(): a 401 here must not recurse into another refresh,
	// and POSTs are outside the transient retry condition anyway.
	resp, err := r.client.execute(ctx, requestSpec{method: http.MethodPost, path: refreshPath}, true)
	if err != nil {
		return "", err
	}

	if resp.IsError() {
		apiErr := newAPIError(resp)
		if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
			// Refresh credential rejected: the session is gone for
			// good, so drop both stored keys together.
			if cerr := r.client.store.Clear(ctx); cerr != nil {
				zap.L().Error("clearing credentials after rejected refresh", zap.Error(cerr))
			}
			r.client.notifySessionExpired()
			return "", fmt.Errorf("%w: %w", ErrSessionInvalid, apiErr)
		}
		return "", apiErr
	}

	token := gjson.GetBytes(resp.Body(), "accessToken").String()
	if token == "" {
		token = gjson.GetBytes(resp.Body(), "data.accessToken").String()
	}
	if token == "" {
		return "", &DecodeError{URL: resp.Request.URL, Err: fmt.Errorf("refresh response carries no access token")}
	}

	creds, lerr := r.client.store.Load(ctx)
	if lerr != nil {
		creds = store.Credentials{}
	}
	creds.AccessToken = token
	if serr := r.client.store.Save(ctx, creds); serr != nil {
		return "", serr
	}

	zap.L().Debug("access token refreshed")
	return token, nil
}
