package interfaces

import (
	"context"

	"github.com/brokerx/engine/internal/models"
	"github.com/google/uuid"
)

// SessionTokenRepository backs the bearer-token session collaborator.
// Session tokens carry no core engine invariants; this is an ambient
// layer consumed by the HTTP auth middleware.
type SessionTokenRepository interface {
	Store[models.SessionToken]

	GetByTokenHash(ctx context.Context, tokenHash string) (*models.SessionToken, error)
	GetActiveSessionsByUserID(ctx context.Context, userID uuid.UUID) ([]models.SessionToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash, reason string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID, reason string) error
	DeleteExpiredTokens(ctx context.Context, retentionDays int) (int64, error)
}
