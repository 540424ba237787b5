package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/estate/pkg/domain"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	sq, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"file":   NewFileBackend(filepath.Join(t.TempDir(), "estate", "session.json")),
		"sqlite": sq,
	}
}

func TestManager_SaveGetClear(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := NewManager(b)

			assert.False(t, s.IsAuthenticated(ctx))
			_, err := s.Token(ctx)
			assert.ErrorIs(t, err, ErrNoSession)

			require.NoError(t, s.Save(ctx, domain.TokenPair{AccessToken: "acc-1", RefreshToken: "ref-1"}))

			tok, err := s.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "acc-1", tok)
			ref, err := s.RefreshToken(ctx)
			require.NoError(t, err)
			assert.Equal(t, "ref-1", ref)
			assert.True(t, s.IsAuthenticated(ctx))

			require.NoError(t, s.Clear(ctx))
			assert.False(t, s.IsAuthenticated(ctx))
			_, err = s.Token(ctx)
			assert.ErrorIs(t, err, ErrNoSession)
			_, err = s.RefreshToken(ctx)
			assert.ErrorIs(t, err, ErrNoSession)

			// Clearing twice is fine.
			require.NoError(t, s.Clear(ctx))
		})
	}
}

func TestManager_LastWriteWins(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := NewManager(b)

			require.NoError(t, s.Save(ctx, domain.TokenPair{AccessToken: "old", RefreshToken: "old-ref"}))
			require.NoError(t, s.Save(ctx, domain.TokenPair{AccessToken: "new"}))

			tok, err := s.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "new", tok)
			_, err = s.RefreshToken(ctx)
			assert.ErrorIs(t, err, ErrNoSession, "empty refresh token removes the old one")
		})
	}
}

func TestFileBackend_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	require.NoError(t, NewManager(NewFileBackend(path)).Save(ctx, domain.TokenPair{AccessToken: "a", RefreshToken: "r"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	tok, err := NewManager(NewFileBackend(path)).Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", tok)

	require.NoError(t, NewManager(NewFileBackend(path)).Clear(ctx))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file removed once empty")
}

func TestFileBackend_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	s := NewManager(NewFileBackend(path))
	_, err := s.Token(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
	assert.False(t, s.IsAuthenticated(context.Background()))
}

func TestSQLiteBackend_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "session.db")

	b, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewManager(b).Save(ctx, domain.TokenPair{AccessToken: "a"}))
	require.NoError(t, b.Close())

	b, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer b.Close()
	tok, err := NewManager(b).Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", tok)
}

func TestSQLiteBackend_ClosedDB(t *testing.T) {
	ctx := context.Background()
	b, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, b.Close())

	_, _, err = b.Get(ctx, KeyAccessToken)
	assert.Error(t, err)
	assert.Error(t, b.Set(ctx, KeyAccessToken, "x"))
	assert.Error(t, b.Delete(ctx, KeyAccessToken))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, backend := range []string{"file", "sqlite", "memory"} {
		t.Run(backend, func(t *testing.T) {
			s, closer, err := Open(ctx, backend, filepath.Join(dir, backend))
			require.NoError(t, err)
			defer closer.Close()
			require.NoError(t, s.Save(ctx, domain.TokenPair{AccessToken: "tok"}))
			assert.True(t, s.IsAuthenticated(ctx))
		})
	}

	_, _, err := Open(ctx, "redis", "")
	assert.Error(t, err)
}
