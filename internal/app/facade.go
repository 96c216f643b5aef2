package app

import (
	"context"

	"github.com/polkiloo/courierdesk/internal/domain/model"
	"github.com/polkiloo/courierdesk/internal/domain/pricing"
	"github.com/polkiloo/courierdesk/internal/domain/repository"
	"github.com/polkiloo/courierdesk/internal/usecase"
)

// CourierFacade exposes use cases to the transport layer.
type CourierFacade struct {
	auth   *usecase.AuthUseCase
	orders *usecase.OrderUseCase
	store  repository.Factory
}

func NewCourierFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, store repository.Factory) *CourierFacade {
	return &CourierFacade{auth: auth, orders: orders, store: store}
}

func (f *CourierFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *CourierFacade) ParseToken(token string) (model.Caller, error) {
	return f.auth.ParseToken(token)
}

func (f *CourierFacade) CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	return f.orders.Create(ctx, draft)
}

func (f *CourierFacade) TrackOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Track(ctx, orderID)
}

func (f *CourierFacade) Orders(ctx context.Context, caller model.Caller) ([]model.Order, error) {
	return f.orders.List(ctx, caller)
}

func (f *CourierFacade) UpdateOrderStatus(ctx context.Context, caller model.Caller, orderID, status string) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, caller, orderID, status)
}

func (f *CourierFacade) OrderStats(ctx context.Context, caller model.Caller) (*model.OrderStats, error) {
	return f.orders.Stats(ctx, caller)
}

func (f *CourierFacade) Quote(distance float64, urgent bool) (*pricing.Quote, error) {
	return f.orders.Quote(distance, urgent)
}

func (f *CourierFacade) PriceRanges() []pricing.Range {
	return f.orders.PriceRanges()
}

// Health pings the backing store.
func (f *CourierFacade) Health(ctx context.Context) error {
	return f.store.HealthCheck(ctx)
}
