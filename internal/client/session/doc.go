// Package session keeps the signed-in user's bearer token and profile across
// restarts.
//
// A Store is created once at startup and handed to the HTTP client and the
// auth service; nothing in this package is global. The persistent variant
// writes to the local SQLite database through the metadata repository, the
// in-memory variant backs tests and throwaway sessions.
//
// A stored token is dropped on read once it has expired: JWTs by their exp
// claim, opaque tokens by the configured TTL counted from the moment they
// were saved.
package session
