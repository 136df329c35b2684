package store

import (
	"context"
	"sync"
)

// Memory is an in-process TokenStore. It is the default backend and
// the one used in tests.
type Memory struct {
	mu    sync.RWMutex
	creds Credentials
	set   bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.set {
		return Credentials{}, ErrNotFound
	}
	creds := m.creds
	creds.User = append([]byte(nil), m.creds.User...)
	return creds, nil
}

func (m *Memory) Save(_ context.Context, creds Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	creds.User = append([]byte(nil), creds.User...)
	m.creds = creds
	m.set = true
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.creds = Credentials{}
	m.set = false
	return nil
}
