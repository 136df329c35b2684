// Package store persists the access token and the user profile
// snapshot between runs of the host application. The two values live
// and die together: Save writes both, Clear removes both, and Load
// never reports a state where one is present without the other.
package store

import (
	"context"
	"errors"
)

// Storage keys shared by every backend.
const (
	KeyAccessToken = "accessToken"
	KeyUser        = "user"
)

// ErrNotFound is returned by Load when no credentials are stored.
var ErrNotFound = errors.New("store: no credentials")

// Credentials is the persisted session snapshot. User holds the raw
// profile JSON as received from the server; callers that need a typed
// user decode it themselves and treat malformed bytes as absent.
type Credentials struct {
	AccessToken string `json:"accessToken"`
	User        []byte `json:"user,omitempty"`
}

// TokenStore is the persistence boundary for session credentials.
// Implementations must keep Save and Clear atomic over both fields.
type TokenStore interface {
	Load(ctx context.Context) (Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}
