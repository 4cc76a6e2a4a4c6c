// Package database holds the errors shared by the in-memory repositories
// backing the reference server. Nothing is written to disk: a restart
// starts from the seeded catalog and the bootstrap admin.
package database

import "errors"

var (
	ErrDBNotFound = errors.New("not found in database")

	ErrDBDuplicatedEntry = errors.New("duplicated entry")
)
