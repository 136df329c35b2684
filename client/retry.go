package client

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
)

type ctxKey int

const replayedKey ctxKey = 0

// markReplayed tags the context of a request that has already been
// replayed after a token refresh, taking it out of the transient
// retry condition.
func markReplayed(ctx context.Context) context.Context {
	return context.WithValue(ctx, replayedKey, true)
}

func isReplayed(ctx context.Context) bool {
	v, _ := ctx.Value(replayedKey).(bool)
	return v
}

// shouldRetry is the transient-failure retry condition: true iff the
// request is a read, has not been replayed after a refresh, and no
// response was received at all. Server-issued statuses, 401 included,
// never match.
func shouldRetry(resp *resty.Response, err error) bool {
	if err == nil {
		return false
	}
	if resp == nil || resp.Request == nil {
		return false
	}
	if resp.Request.Method != http.MethodGet {
		return false
	}
	return !isReplayed(resp.Request.Context())
}
