package repository

import (
	"context"

	"github.com/polkiloo/courierdesk/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByOrderID(ctx context.Context, orderID string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error)
	Stats(ctx context.Context) (*model.OrderStats, error)
}

// OrderSequence allocates order identifiers atomically.
type OrderSequence interface {
	NextOrderID(ctx context.Context) (string, int64, error)
}
