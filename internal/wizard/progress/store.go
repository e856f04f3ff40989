// internal/wizard/progress/store.go

// Package progress persists per-candidate wizard state. One record per user
// email, written through on every mutation, last write wins. The store is a
// plain key-value contract so deployments can pick redis, an embedded badger
// database, or an in-memory map.
package progress

import (
	"context"

	"carrier-portal/internal/models"
)

const (
	keyPrefix = "applicationProgress_"

	// fallbackKey is used when the user email is unknown, matching the
	// portal's legacy storage key.
	fallbackKey = "applicationProgress"
)

// Store is the durable progress contract. Get returns (nil, nil) when no
// record exists for the key.
type Store interface {
	Get(ctx context.Context, key string) (*models.WizardProgress, error)
	Put(ctx context.Context, key string, p *models.WizardProgress) error
	Delete(ctx context.Context, key string) error
}

// Key derives the storage key for a user email. Records are namespaced per
// email so switching accounts on one device cannot cross-contaminate state.
func Key(email string) string {
	if email == "" {
		return fallbackKey
	}
	return keyPrefix + email
}
