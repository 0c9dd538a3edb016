package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt works out when token stops being usable. A JWT with an exp claim
// expires then; the signature is not checked because only the backend holds
// the key. Any other token expires ttl after savedAt. The zero time means
// no known expiry.
func ExpiresAt(token string, savedAt time.Time, ttl time.Duration) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	if ttl <= 0 || savedAt.IsZero() {
		return time.Time{}
	}
	return savedAt.Add(ttl)
}
