// Package storage persists collection snapshots as key-value blobs.
// Every write is a full overwrite of the key; reads are best-effort and
// callers substitute defaults when a key is missing or unreadable.
package storage

import (
	"context"
	"errors"
)

// Snapshot keys, one per logical collection.
const (
	KeyTransactions  = "transactions"
	KeyCategories    = "categories"
	KeyUserMode      = "user_mode"
	KeyMonthlyBudget = "monthly_budget"
	KeyWeeklyBudget  = "weekly_budget"
)

// ErrNotFound indicates no snapshot exists for the key.
var ErrNotFound = errors.New("snapshot not found")

// Snapshots stores one opaque blob per key.
type Snapshots interface {
	// Save overwrites the blob stored under key.
	Save(ctx context.Context, key string, value []byte) error
	// Load returns the blob stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
}
