package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var errSessionNotFound = errors.New("session token not found")

type sessionTokenRepository struct {
	*JSONStore[models.SessionToken]
}

// NewSessionTokenRepository returns a Postgres-JSONB-backed
// SessionTokenRepository over the "session_tokens" table.
func NewSessionTokenRepository(ctx context.Context, db *sqlx.DB) (interfaces.SessionTokenRepository, error) {
	store, err := NewJSONStore[models.SessionToken](ctx, db, "session_tokens")
	if err != nil {
		return nil, err
	}
	return &sessionTokenRepository{JSONStore: store}, nil
}

func (r *sessionTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.SessionToken, error) {
	return r.FindByField(ctx, "token_hash", tokenHash)
}

func (r *sessionTokenRepository) GetActiveSessionsByUserID(ctx context.Context, userID uuid.UUID) ([]models.SessionToken, error) {
	rows, err := r.FindAllByField(ctx, "user_id", userID.String())
	if err != nil {
		return nil, err
	}
	var active []models.SessionToken
	for _, row := range rows {
		if row.Item.IsValid() {
			active = append(active, row.Item)
		}
	}
	return active, nil
}

func (r *sessionTokenRepository) RevokeByTokenHash(ctx context.Context, tokenHash, reason string) error {
	token, err := r.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return err
	}
	if token == nil {
		return interfaces.NewStoreError("revoke", errSessionNotFound)
	}
	now := time.Now()
	token.IsRevoked = true
	token.RevokedAt = &now
	token.RevocationReason = &reason
	return r.Update(ctx, token.ID, *token)
}

func (r *sessionTokenRepository) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID, reason string) error {
	rows, err := r.FindAllByField(ctx, "user_id", userID.String())
	if err != nil {
		return err
	}
	now := time.Now()
	for _, row := range rows {
		token := row.Item
		if token.IsRevoked {
			continue
		}
		token.IsRevoked = true
		token.RevokedAt = &now
		token.RevocationReason = &reason
		if err := r.Update(ctx, token.ID, token); err != nil {
			return err
		}
	}
	return nil
}

func (r *sessionTokenRepository) DeleteExpiredTokens(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour)
	rows, err := r.All(ctx)
	if err != nil {
		return 0, err
	}
	var removed int64
	for _, row := range rows {
		if row.Item.ExpiresAt.Before(cutoff) {
			if err := r.Remove(ctx, row.ID); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}
