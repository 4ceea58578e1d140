// Package repository handles all interactions with the database.
//
// It contains the SQL for fetching and persisting recipes and countries,
// keeping statement construction and row scanning away from the service
// layer. Every value reaches the database as a bound parameter.
package repository

import "github.com/pkg/errors"

// ErrNotFound is returned when a lookup by identifier matches no row.
var ErrNotFound = errors.New("record not found")
