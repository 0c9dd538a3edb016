package services

import (
	"context"
	"net/url"

	"github.com/marmota/failboard/internal/client/models"
)

// API is the transport the services need. *httpx.Client satisfies it.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// SessionStore is where a successful login is kept. *session.Store satisfies
// it.
type SessionStore interface {
	Save(ctx context.Context, token string, user models.User) error
	Clear(ctx context.Context) error
	User(ctx context.Context) (*models.User, error)
	LoggedIn(ctx context.Context) (bool, error)
}
