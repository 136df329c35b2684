// Package session owns the in-memory authenticated user, mirroring it
// to a token store. The store is a passive snapshot; this manager is
// the only writer on login, logout and profile refresh.
package session

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/octabyte/bm-blogclient/auth"
	"github.com/octabyte/bm-blogclient/models"
	"github.com/octabyte/bm-blogclient/store"
)

// AuthAPI is the slice of the auth service the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, creds auth.Credentials) (*models.Session, error)
	Register(ctx context.Context, input auth.RegisterInput) (*models.Session, error)
	Profile(ctx context.Context) (*models.User, error)
}

// Manager holds the current authenticated user. Construction restores
// a best-effort snapshot from the store; Hydrate then validates it
// against the server before the manager reports ready.
type Manager struct {
	store store.TokenStore
	api   AuthAPI

	mu    sync.RWMutex
	user  *models.User
	ready bool
}

// NewManager builds a manager and synchronously restores the stored
// user snapshot. Malformed stored data is treated as absent, never an
// error: the worst case is that the user logs in again.
func NewManager(st store.TokenStore, api AuthAPI) *Manager {
	m := &Manager{store: st, api: api}

	creds, err := st.Load(context.Background())
	if err == nil && len(creds.User) > 0 {
		var user models.User
		if jerr := json.Unmarshal(creds.User, &user); jerr == nil && user.ID != "" {
			m.user = &user
		}
	}
	return m
}

// Hydrate validates the stored token against the server and settles
// the ready flag. With no token stored it degrades to a logout.
// Calling it again is idempotent: one validation call per invocation,
// converging to the same state.
func (m *Manager) Hydrate(ctx context.Context) error {
	defer m.setReady()

	creds, err := m.store.Load(ctx)
	if err != nil || creds.AccessToken == "" {
		return m.Logout(ctx)
	}

	user, err := m.api.Profile(ctx)
	if err != nil {
		zap.L().Warn("stored session failed validation", zap.Error(err))
		if lerr := m.Logout(ctx); lerr != nil {
			return lerr
		}
		return err
	}

	return m.setUser(ctx, user, creds.AccessToken)
}

// RefreshUser re-fetches the profile from the server. Same contract
// as Hydrate; kept as a separate name for call sites that refresh an
// already-ready session.
func (m *Manager) RefreshUser(ctx context.Context) error {
	return m.Hydrate(ctx)
}

// Login authenticates and persists the session.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	sess, err := m.api.Login(ctx, auth.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := m.setUser(ctx, &sess.User, sess.AccessToken); err != nil {
		return nil, err
	}
	m.setReady()
	return &sess.User, nil
}

// Register creates an account and persists the fresh session.
func (m *Manager) Register(ctx context.Context, input auth.RegisterInput) (*models.User, error) {
	sess, err := m.api.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := m.setUser(ctx, &sess.User, sess.AccessToken); err != nil {
		return nil, err
	}
	m.setReady()
	return &sess.User, nil
}

// Logout clears the stored credentials and the in-memory user. Both
// stored keys go together; there is no state with one and not the
// other.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	return m.store.Clear(ctx)
}

// Current returns the in-memory user, if any.
func (m *Manager) Current() (*models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil, false
	}
	user := *m.user
	return &user, true
}

// Ready reports whether Hydrate has settled. UI that depends on
// authorization state blocks on this.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

func (m *Manager) setReady() {
	m.mu.Lock()
	m.ready = true
	m.mu.Unlock()
}

func (m *Manager) setUser(ctx context.Context, user *models.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := m.store.Save(ctx, store.Credentials{AccessToken: token, User: raw}); err != nil {
		return err
	}

	m.mu.Lock()
	u := *user
	m.user = &u
	m.mu.Unlock()
	return nil
}
