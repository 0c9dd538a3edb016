// Package httpx is the single HTTP client the failboard services talk to the
// failures API through.
//
// Every request carries the stored session token (when present) and a request
// id. A 401 answer on any route other than login tears the session down and
// asks the Navigator to show the login view.
package httpx
