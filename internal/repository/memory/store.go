// Package memory implements the repository contracts over a mutex-guarded
// in-process map, mirroring the postgres package's JSONB document-store
// semantics (including its field-by-name lookup) without a database. Used
// by tests and by the standalone/dev run mode.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/google/uuid"
)

// Store is a generic Store[T] backed by an in-memory map of id -> item.
// Field lookups marshal each candidate item to JSON and compare the named
// top-level field as a string, the same shape the Postgres data->>field
// projection produces.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{items: make(map[uuid.UUID]T)}
}

func (s *Store[T]) Insert(ctx context.Context, id uuid.UUID, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[id]; exists {
		return interfaces.NewStoreError("insert", fmt.Errorf("duplicate id %s", id))
	}
	s.items[id] = item
	return nil
}

func (s *Store[T]) Update(ctx context.Context, id uuid.UUID, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = item
	return nil
}

func (s *Store[T]) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *Store[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func fieldValue(item any, field string) (string, bool, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return "", false, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", false, err
	}
	fv, ok := doc[field]
	if !ok {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(fv, &s); err == nil {
		return s, true, nil
	}
	// Non-string fields (e.g. a nested uuid) still compare by their raw
	// JSON text, matching Postgres's textual ->> projection closely enough
	// for the uuid/string fields this store is queried on.
	var unquoted any
	if err := json.Unmarshal(fv, &unquoted); err == nil {
		return fmt.Sprintf("%v", unquoted), true, nil
	}
	return string(fv), true, nil
}

func (s *Store[T]) FindByField(ctx context.Context, field, value string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		fv, ok, err := fieldValue(item, field)
		if err != nil {
			return nil, interfaces.NewStoreError("find_by_field", err)
		}
		if ok && fv == value {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Store[T]) FindAllByField(ctx context.Context, field, value string) ([]interfaces.Identified[T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []interfaces.Identified[T]
	for id, item := range s.items {
		fv, ok, err := fieldValue(item, field)
		if err != nil {
			return nil, interfaces.NewStoreError("find_all_by_field", err)
		}
		if ok && fv == value {
			out = append(out, interfaces.Identified[T]{ID: id, Item: item})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

// All returns every stored row. Mirrors postgres.JSONStore.All.
func (s *Store[T]) All(ctx context.Context) ([]interfaces.Identified[T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]interfaces.Identified[T], 0, len(s.items))
	for id, item := range s.items {
		out = append(out, interfaces.Identified[T]{ID: id, Item: item})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (s *Store[T]) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *Store[T]) IsEmpty(ctx context.Context) (bool, error) {
	n, _ := s.Len(ctx)
	return n == 0, nil
}
