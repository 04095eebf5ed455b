package interfaces

import (
	"context"

	"github.com/brokerx/engine/internal/models"
	"github.com/google/uuid"
)

// OrderRepository layers the order-specific lookups spec §4.3 calls for on
// top of the generic document store.
type OrderRepository interface {
	Store[models.Order]

	// CreateOrder assigns id, sets Status=Queued and SubmittedAt=now, and
	// inserts. It does not enqueue — that is the broker facade's job.
	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)

	// GetOrdersForUser uses FindAllByField("client_id", ...) and returns
	// the results ordered by submission date descending.
	GetOrdersForUser(ctx context.Context, clientID uuid.UUID) ([]models.Order, error)

	// FindByStatus uses FindAllByField("status", ...); used by startup
	// recovery to rebuild the work queue.
	FindByStatus(ctx context.Context, status string) ([]models.Order, error)
}
