// Package metadata persists client-side key/value state in the local SQLite
// database. The session store is its only consumer.
package metadata
