package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/courierdesk/internal/domain/model"
	"github.com/polkiloo/courierdesk/internal/domain/pricing"
)

// SampleOrder returns a fully populated order for handler tests.
func SampleOrder(orderID string) model.Order {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return model.Order{
		ID:              "2f1a3e4c-0000-4000-8000-000000000001",
		OrderID:         orderID,
		Sequence:        1,
		FirstName:       "Ivan",
		LastName:        "Petrov",
		PhoneNumber:     "+79000000000",
		PackageName:     "Documents",
		PickupAddress:   "Lenina 1",
		DeliveryAddress: "Mira 10",
		Distance:        7.5,
		IsUrgent:        true,
		Price:           11,
		Status:          model.OrderStatusNew,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn func(context.Context, model.OrderDraft) (*model.Order, error)
	TrackFn  func(context.Context, string) (*model.Order, error)
	OrdersFn func(context.Context, model.Caller) ([]model.Order, error)
	UpdateFn func(context.Context, model.Caller, string, string) (*model.Order, error)
	StatsFn  func(context.Context, model.Caller) (*model.OrderStats, error)
}

// CreateOrder delegates to provided function or echoes the draft as a new order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	order := SampleOrder("AZS0001")
	order.FirstName = draft.FirstName
	order.Distance = draft.Distance
	order.IsUrgent = draft.IsUrgent
	return &order, nil
}

// TrackOrder returns a sample order for any identifier.
func (s OrderFacadeStub) TrackOrder(ctx context.Context, orderID string) (*model.Order, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, orderID)
	}
	order := SampleOrder(orderID)
	return &order, nil
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders(ctx context.Context, caller model.Caller) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, caller)
	}
	return []model.Order{SampleOrder("AZS0001")}, nil
}

// UpdateOrderStatus returns a sample order carrying the requested status.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, caller model.Caller, orderID, status string) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, caller, orderID, status)
	}
	order := SampleOrder(orderID)
	order.Status = model.OrderStatus(status)
	return &order, nil
}

// OrderStats returns fixed counters.
func (s OrderFacadeStub) OrderStats(ctx context.Context, caller model.Caller) (*model.OrderStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, caller)
	}
	return &model.OrderStats{
		ByStatus: map[model.OrderStatus]int64{model.OrderStatusNew: 2, model.OrderStatusDelivered: 1},
		Total:    3,
	}, nil
}

// PricingFacadeStub serves price previews.
type PricingFacadeStub struct {
	QuoteFn  func(float64, bool) (*pricing.Quote, error)
	RangesFn func() []pricing.Range
}

// Quote prices with the default calculator unless overridden.
func (s PricingFacadeStub) Quote(distance float64, urgent bool) (*pricing.Quote, error) {
	if s.QuoteFn != nil {
		return s.QuoteFn(distance, urgent)
	}
	q := &pricing.Quote{Distance: distance, IsUrgent: urgent, Price: pricing.Calculate(distance, urgent)}
	if r, ok := pricing.NewCalculator(nil).RangeFor(distance); ok {
		q.Range = &r
	}
	return q, nil
}

// PriceRanges returns the default table unless overridden.
func (s PricingFacadeStub) PriceRanges() []pricing.Range {
	if s.RangesFn != nil {
		return s.RangesFn()
	}
	return pricing.NewCalculator(nil).Ranges()
}

// HealthFacadeStub reports a configured health error.
type HealthFacadeStub struct {
	Err error
}

// Health returns the configured error.
func (s HealthFacadeStub) Health(context.Context) error {
	return s.Err
}

// CourierFacadeStub aggregates facade dependencies for HTTP layer tests.
type CourierFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	PricingFacadeStub
	HealthFacadeStub
}

// PublisherStub records published events.
type PublisherStub struct {
	PublishFn func(context.Context, model.OrderEvent) error
	CloseErr  error

	mu        sync.Mutex
	Published []model.OrderEvent
	Closed    bool
}

// Publish records the event unless overridden.
func (p *PublisherStub) Publish(ctx context.Context, event model.OrderEvent) error {
	if p.PublishFn != nil {
		if err := p.PublishFn(ctx, event); err != nil {
			return err
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Published = append(p.Published, event)
	return nil
}

// Close marks the publisher as closed.
func (p *PublisherStub) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return p.CloseErr
}

// Count returns the number of recorded events.
func (p *PublisherStub) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Published)
}
