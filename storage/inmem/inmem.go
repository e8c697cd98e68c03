// Package inmemdb provides in-memory repositories backing the services in
// tests. Every repository is safe for concurrent use and keeps newest-first
// ordering for listings, matching the remote store's defaults.
package inmemdb

import "github.com/google/uuid"

func newID() string { return uuid.New().String() }
