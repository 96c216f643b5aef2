package handlers

import (
	"context"

	"github.com/polkiloo/courierdesk/internal/domain/model"
	"github.com/polkiloo/courierdesk/internal/domain/pricing"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Caller, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error)
	TrackOrder(ctx context.Context, orderID string) (*model.Order, error)
	Orders(ctx context.Context, caller model.Caller) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, caller model.Caller, orderID, status string) (*model.Order, error)
	OrderStats(ctx context.Context, caller model.Caller) (*model.OrderStats, error)
}

// PricingFacade serves price previews.
type PricingFacade interface {
	Quote(distance float64, urgent bool) (*pricing.Quote, error)
	PriceRanges() []pricing.Range
}

// HealthFacade reports backing store availability.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// CourierFacade aggregates the full set of operations used across handlers.
type CourierFacade interface {
	AuthFacade
	OrderFacade
	PricingFacade
	HealthFacade
}
