// Package session persists the access and refresh tokens and exposes the
// identity of the logged-in user.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/naveenspark/estate/pkg/domain"
)

// Fixed storage keys.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// ErrNoSession is returned when no token is stored.
var ErrNoSession = errors.New("session: not logged in")

// Store is the session service handed to every component that needs it.
type Store interface {
	Save(ctx context.Context, tokens domain.TokenPair) error
	Token(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
}

// Backend is a string key/value store. Get returns ("", false, nil) for a
// missing key; Delete of a missing key is not an error.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Manager implements Store over a Backend.
type Manager struct {
	backend Backend
}

// NewManager returns a Store backed by b.
func NewManager(b Backend) *Manager {
	return &Manager{backend: b}
}

// Save stores both tokens. An empty refresh token removes the stored one.
func (m *Manager) Save(ctx context.Context, tokens domain.TokenPair) error {
	if err := m.backend.Set(ctx, KeyAccessToken, tokens.AccessToken); err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}
	if tokens.RefreshToken == "" {
		if err := m.backend.Delete(ctx, KeyRefreshToken); err != nil {
			return fmt.Errorf("session.Save: %w", err)
		}
		return nil
	}
	if err := m.backend.Set(ctx, KeyRefreshToken, tokens.RefreshToken); err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}
	return nil
}

// Token returns the access token, or ErrNoSession.
func (m *Manager) Token(ctx context.Context) (string, error) {
	return m.get(ctx, KeyAccessToken)
}

// RefreshToken returns the refresh token, or ErrNoSession.
func (m *Manager) RefreshToken(ctx context.Context) (string, error) {
	return m.get(ctx, KeyRefreshToken)
}

// Clear removes both tokens.
func (m *Manager) Clear(ctx context.Context) error {
	for _, k := range []string{KeyAccessToken, KeyRefreshToken} {
		if err := m.backend.Delete(ctx, k); err != nil {
			return fmt.Errorf("session.Clear: %w", err)
		}
	}
	return nil
}

// IsAuthenticated reports whether an access token is present. The token is
// not checked for format or expiry.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	_, err := m.Token(ctx)
	return err == nil
}

func (m *Manager) get(ctx context.Context, key string) (string, error) {
	v, ok, err := m.backend.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("session: read %s: %w", key, err)
	}
	if !ok || v == "" {
		return "", ErrNoSession
	}
	return v, nil
}
