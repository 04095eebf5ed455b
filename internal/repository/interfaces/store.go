// Package interfaces defines the repository contracts the engine depends
// on. A concrete backing store (Postgres-JSONB, in-memory) is substitutable
// behind these interfaces.
package interfaces

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// StoreError wraps a single failure surface for repository operations:
// transport, serialization, and (where relevant) programmer-error cases.
// A missing row from Get is represented as (nil, nil), not a StoreError.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// Identified pairs a stored item with its id, returned from a multi-row
// lookup.
type Identified[T any] struct {
	ID   uuid.UUID
	Item T
}

// Store is a typed CRUD + secondary-lookup contract over (id, item) rows.
// Items are (de)serialized as JSON-shaped documents; field lookups address
// a top-level JSON field of the stored document. Every operation is safe
// to invoke concurrently from any caller; atomicity is per-call only —
// multi-step read-modify-write sequences must be protected by a caller-held
// lock, not by the store.
type Store[T any] interface {
	Insert(ctx context.Context, id uuid.UUID, item T) error
	Update(ctx context.Context, id uuid.UUID, item T) error
	Remove(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	FindByField(ctx context.Context, field, value string) (*T, error)
	FindAllByField(ctx context.Context, field, value string) ([]Identified[T], error)
	Len(ctx context.Context) (int, error)
	IsEmpty(ctx context.Context) (bool, error)
}
