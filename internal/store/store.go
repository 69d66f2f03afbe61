// Package store persists calculation records and tracks monthly usage quotas.
// Stored results are opaque: the store never re-derives them.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/inmocalc/internal/domain"
)

var (
	// ErrNotFound is returned when a record does not exist for its owner.
	ErrNotFound = errors.New("record not found")
	// ErrQuotaExceeded is returned by Consume once the plan limit is reached.
	ErrQuotaExceeded = errors.New("monthly calculation quota exceeded")
)

// Record is one saved calculation: the request and its result, verbatim.
type Record struct {
	ID        uuid.UUID       `json:"id"`
	Owner     string          `json:"owner"`
	Kind      domain.Kind     `json:"kind"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Store is the persistence collaborator for calculation records.
type Store interface {
	Save(ctx context.Context, rec Record) (Record, error)
	Get(ctx context.Context, owner string, id uuid.UUID) (Record, error)
	List(ctx context.Context, owner string) ([]Record, error)
	Delete(ctx context.Context, owner string, id uuid.UUID) error
}

// prepare assigns an ID and creation time when missing.
func prepare(rec Record, now time.Time) (Record, error) {
	if rec.Owner == "" {
		return Record{}, domain.NewInvalidInput("owner", rec.Owner, "owner is required")
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now.UTC()
	}
	return rec, nil
}
