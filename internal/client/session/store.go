package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/marmota/failboard/internal/client/models"
	"github.com/marmota/failboard/internal/client/repositories/metadata"
	"github.com/marmota/failboard/internal/common"
)

// DefaultTTL is how long an opaque (non-JWT) token is trusted after login.
const DefaultTTL = 60 * time.Minute

// Backend is the key/value storage a Store writes through.
type Backend = metadata.Repository

// sessionKeys are the entries Save writes and Clear removes.
var sessionKeys = []string{
	common.SessionTokenKey,
	common.SessionLegacyKey,
	common.SessionUserKey,
	common.SessionSavedAtKey,
}

type Option func(*Store)

// WithTTL overrides DefaultTTL. A non-positive TTL disables expiry of opaque
// tokens.
func WithTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store holds the session token and user info.
type Store struct {
	backend Backend
	ttl     time.Duration
	now     func() time.Time
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, ttl: DefaultTTL, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewMemory returns a Store that lives only as long as the process.
func NewMemory(opts ...Option) *Store {
	return New(newMemoryBackend(), opts...)
}

// Token returns the stored bearer token, or "" when there is none. An expired
// token is cleared and reported as absent.
func (s *Store) Token(ctx context.Context) (string, error) {
	raw, err := s.backend.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", nil
	}
	token := string(raw)

	savedAt, err := s.savedAt(ctx)
	if err != nil {
		return "", err
	}

	exp := ExpiresAt(token, savedAt, s.ttl)
	if !exp.IsZero() && !s.now().Before(exp) {
		if err := s.Clear(ctx); err != nil {
			return "", err
		}
		return "", nil
	}
	return token, nil
}

// LoggedIn reports whether a usable token is stored.
func (s *Store) LoggedIn(ctx context.Context) (bool, error) {
	tok, err := s.Token(ctx)
	return tok != "", err
}

// User returns the stored profile, or nil when nobody is signed in.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	raw, err := s.backend.Get(ctx, common.SessionUserKey)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("stored user info: %w", err)
	}
	return &u, nil
}

// Save replaces the session with token and user in one write.
func (s *Store) Save(ctx context.Context, token string, user models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user info: %w", err)
	}
	return s.backend.SetMany(ctx, map[string][]byte{
		common.SessionTokenKey:   []byte(token),
		common.SessionLegacyKey:  []byte(token),
		common.SessionUserKey:    userJSON,
		common.SessionSavedAtKey: []byte(s.now().UTC().Format(time.RFC3339Nano)),
	})
}

// Clear removes the session entries. Other keys in the backend are kept.
func (s *Store) Clear(ctx context.Context) error {
	return s.backend.Delete(ctx, sessionKeys...)
}

func (s *Store) savedAt(ctx context.Context) (time.Time, error) {
	raw, err := s.backend.Get(ctx, common.SessionSavedAtKey)
	if err != nil {
		return time.Time{}, err
	}
	if len(raw) == 0 {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}
