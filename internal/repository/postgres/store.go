// Package postgres implements the repository contracts over a Postgres
// JSONB document table, grounded on the same (id, data) row shape used
// throughout this codebase's key/value-with-JSON persistence adapter.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// JSONStore is a generic Store[T] backed by a single Postgres table of
// shape (id text primary key, data jsonb not null). The same
// implementation backs both the users and orders tables; field lookups
// are expressed as data->>field = value.
type JSONStore[T any] struct {
	db    *sqlx.DB
	table string
}

// NewJSONStore returns a JSONStore and ensures its backing table exists.
func NewJSONStore[T any](ctx context.Context, db *sqlx.DB, table string) (*JSONStore[T], error) {
	s := &JSONStore[T]{db: db, table: table}
	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, data JSONB NOT NULL)`, table)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, interfaces.NewStoreError("create table "+table, err)
	}
	return s, nil
}

func (s *JSONStore[T]) Insert(ctx context.Context, id uuid.UUID, item T) error {
	data, err := json.Marshal(item)
	if err != nil {
		return interfaces.NewStoreError("marshal", err)
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, data) VALUES ($1, $2)`, s.table)
	if _, err := s.db.ExecContext(ctx, query, id.String(), data); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return interfaces.NewStoreError("insert", fmt.Errorf("duplicate id %s: %w", id, err))
		}
		return interfaces.NewStoreError("insert", err)
	}
	return nil
}

func (s *JSONStore[T]) Update(ctx context.Context, id uuid.UUID, item T) error {
	data, err := json.Marshal(item)
	if err != nil {
		return interfaces.NewStoreError("marshal", err)
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, data) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`, s.table)
	if _, err := s.db.ExecContext(ctx, query, id.String(), data); err != nil {
		return interfaces.NewStoreError("update", err)
	}
	return nil
}

func (s *JSONStore[T]) Remove(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)
	if _, err := s.db.ExecContext(ctx, query, id.String()); err != nil {
		return interfaces.NewStoreError("remove", err)
	}
	return nil
}

func (s *JSONStore[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	query := fmt.Sprintf(`SELECT data FROM %s WHERE id = $1`, s.table)
	return s.scanOne(ctx, query, id.String())
}

func (s *JSONStore[T]) FindByField(ctx context.Context, field, value string) (*T, error) {
	query := fmt.Sprintf(`SELECT data FROM %s WHERE data->>$1 = $2 LIMIT 1`, s.table)
	return s.scanOne(ctx, query, field, value)
}

func (s *JSONStore[T]) scanOne(ctx context.Context, query string, args ...interface{}) (*T, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, interfaces.NewStoreError("get", err)
	}
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, interfaces.NewStoreError("unmarshal", err)
	}
	return &item, nil
}

func (s *JSONStore[T]) FindAllByField(ctx context.Context, field, value string) ([]interfaces.Identified[T], error) {
	query := fmt.Sprintf(`SELECT id, data FROM %s WHERE data->>$1 = $2`, s.table)
	rows, err := s.db.QueryContext(ctx, query, field, value)
	if err != nil {
		return nil, interfaces.NewStoreError("find_all", err)
	}
	defer rows.Close()

	var out []interfaces.Identified[T]
	for rows.Next() {
		var idStr string
		var raw []byte
		if err := rows.Scan(&idStr, &raw); err != nil {
			return nil, interfaces.NewStoreError("scan", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, interfaces.NewStoreError("parse id", err)
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, interfaces.NewStoreError("unmarshal", err)
		}
		out = append(out, interfaces.Identified[T]{ID: id, Item: item})
	}
	if err := rows.Err(); err != nil {
		return nil, interfaces.NewStoreError("find_all", err)
	}
	return out, nil
}

// All returns every row in the table. Used by sweeps that cannot be
// expressed as a single field-equality lookup (e.g. expiry scans).
func (s *JSONStore[T]) All(ctx context.Context) ([]interfaces.Identified[T], error) {
	query := fmt.Sprintf(`SELECT id, data FROM %s`, s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, interfaces.NewStoreError("all", err)
	}
	defer rows.Close()

	var out []interfaces.Identified[T]
	for rows.Next() {
		var idStr string
		var raw []byte
		if err := rows.Scan(&idStr, &raw); err != nil {
			return nil, interfaces.NewStoreError("scan", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, interfaces.NewStoreError("parse id", err)
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, interfaces.NewStoreError("unmarshal", err)
		}
		out = append(out, interfaces.Identified[T]{ID: id, Item: item})
	}
	if err := rows.Err(); err != nil {
		return nil, interfaces.NewStoreError("all", err)
	}
	return out, nil
}

func (s *JSONStore[T]) Len(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.table)
	var n int
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, interfaces.NewStoreError("len", err)
	}
	return n, nil
}

func (s *JSONStore[T]) IsEmpty(ctx context.Context) (bool, error) {
	n, err := s.Len(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
