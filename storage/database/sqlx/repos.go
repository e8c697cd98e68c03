// Package sqlxrepos implements the remote record store repositories on
// PostgreSQL via sqlx.
package sqlxrepos

import "github.com/google/uuid"

func newID() string { return uuid.New().String() }
