// Package services holds the typed calls the client makes to the failures
// API. Each method performs exactly one request through the shared HTTP client
// and hands its errors back unchanged.
package services
