// Package common contains constants and sentinel errors shared by the
// failboard client packages and the local fake backend.
package common

// Keys of the persisted session entries.
const (
	SessionTokenKey   = "auth_token"
	SessionUserKey    = "user_info"
	SessionLegacyKey  = "auth"
	SessionSavedAtKey = "saved_at"
)

// HTTP header defaults.
const (
	DefaultTokenHeader = "Authorization"
	DefaultTokenPrefix = "Bearer"
	RequestIDHeader    = "X-Request-ID"
	ContentTypeJSON    = "application/json"
)

// API routes consumed by the client.
const (
	LoginPath    = "/user/login"
	UsersPath    = "/user"
	FailuresPath = "/falhas"
)
