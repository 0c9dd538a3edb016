package metadata

import (
	"context"
)

// Repository is a small key/value table for client-side state that must
// survive restarts (the session token and the signed-in user).
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
}

var _ Repository = (*SQLiteRepository)(nil)
