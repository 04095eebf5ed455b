package postgres

import (
	"context"
	"sort"
	"time"

	"github.com/brokerx/engine/internal/models"
	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type orderRepository struct {
	*JSONStore[models.Order]
}

// NewOrderRepository returns a Postgres-JSONB-backed OrderRepository over
// the "orders" table.
func NewOrderRepository(ctx context.Context, db *sqlx.DB) (interfaces.OrderRepository, error) {
	store, err := NewJSONStore[models.Order](ctx, db, "orders")
	if err != nil {
		return nil, err
	}
	return &orderRepository{JSONStore: store}, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	order.ID = uuid.New()
	order.SubmittedAt = time.Now()
	order.Status = models.StatusQueued
	order.StatusDate = nil
	if err := r.Insert(ctx, order.ID, order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetOrdersForUser(ctx context.Context, clientID uuid.UUID) ([]models.Order, error) {
	rows, err := r.FindAllByField(ctx, "client_id", clientID.String())
	if err != nil {
		return nil, err
	}
	orders := make([]models.Order, len(rows))
	for i, row := range rows {
		orders[i] = row.Item
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].SubmittedAt.After(orders[j].SubmittedAt)
	})
	return orders, nil
}

func (r *orderRepository) FindByStatus(ctx context.Context, status string) ([]models.Order, error) {
	rows, err := r.FindAllByField(ctx, "status", status)
	if err != nil {
		return nil, err
	}
	orders := make([]models.Order, len(rows))
	for i, row := range rows {
		orders[i] = row.Item
	}
	return orders, nil
}
