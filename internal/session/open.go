package session

import (
	"context"
	"fmt"
	"io"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the Store for the configured backend ("file", "sqlite" or
// "memory") and a Closer for its resources.
func Open(ctx context.Context, backend, path string) (*Manager, io.Closer, error) {
	switch backend {
	case "file":
		return NewManager(NewFileBackend(path)), nopCloser{}, nil
	case "sqlite":
		b, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, nil, fmt.Errorf("session.Open: %w", err)
		}
		return NewManager(b), b, nil
	case "memory":
		return NewMemory(), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("session.Open: unknown backend %q", backend)
}
