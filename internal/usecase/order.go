package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/courierdesk/internal/domain/errors"
	"github.com/polkiloo/courierdesk/internal/domain/model"
	"github.com/polkiloo/courierdesk/internal/domain/pricing"
	"github.com/polkiloo/courierdesk/internal/domain/repository"
)

// EventSink accepts order events for asynchronous delivery.
type EventSink interface {
	Enqueue(event model.OrderEvent) bool
}

type nopSink struct{}

func (nopSink) Enqueue(model.OrderEvent) bool { return true }

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	sequence repository.OrderSequence
	prices   *pricing.Calculator
	events   EventSink
	now      func() time.Time
	newID    func() string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, sequence repository.OrderSequence, events EventSink) *OrderUseCase {
	if events == nil {
		events = nopSink{}
	}
	return &OrderUseCase{
		orders:   orders,
		sequence: sequence,
		prices:   pricing.NewCalculator(nil),
		events:   events,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// Create validates the draft, prices it, allocates an identifier and stores the order.
func (u *OrderUseCase) Create(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	draft = NormalizeDraft(draft)
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	orderID, seq, err := u.sequence.NextOrderID(ctx)
	if err != nil {
		return nil, fmt.Errorf("allocate order id: %w", err)
	}

	now := u.now().UTC().Truncate(time.Millisecond)
	order := &model.Order{
		ID:              u.newID(),
		OrderID:         orderID,
		Sequence:        seq,
		FirstName:       draft.FirstName,
		LastName:        draft.LastName,
		PhoneNumber:     draft.PhoneNumber,
		PackageName:     draft.PackageName,
		PackageCode:     draft.PackageCode,
		PackageSize:     draft.PackageSize,
		PickupAddress:   draft.PickupAddress,
		DeliveryAddress: draft.DeliveryAddress,
		Distance:        draft.Distance,
		IsUrgent:        draft.IsUrgent,
		DeliveryTime:    draft.DeliveryTime,
		Notes:           draft.Notes,
		Price:           u.prices.Price(draft.Distance, draft.IsUrgent),
		Status:          model.OrderStatusNew,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	stored, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	u.emit(model.OrderEventCreated, stored)
	return stored, nil
}

// Track returns a single order by its public identifier.
func (u *OrderUseCase) Track(ctx context.Context, orderID string) (*model.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, domainErrors.ErrNotFound
	}
	return u.orders.GetByOrderID(ctx, orderID)
}

// List returns every order, newest first.
func (u *OrderUseCase) List(ctx context.Context, caller model.Caller) ([]model.Order, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	orders, err := u.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// UpdateStatus moves an order to the given status. Any status may follow any other.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, caller model.Caller, orderID, rawStatus string) (*model.Order, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	status, err := model.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, domainErrors.ErrNotFound
	}

	order, err := u.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	u.emit(model.OrderEventStatusChanged, order)
	return order, nil
}

// Stats returns order counters for the admin dashboard.
func (u *OrderUseCase) Stats(ctx context.Context, caller model.Caller) (*model.OrderStats, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return u.orders.Stats(ctx)
}

// Quote previews the price of an order without storing anything.
func (u *OrderUseCase) Quote(distance float64, urgent bool) (*pricing.Quote, error) {
	if err := validateDistance(distance); err != nil {
		return nil, err
	}
	q := &pricing.Quote{Distance: distance, IsUrgent: urgent, Price: u.prices.Price(distance, urgent)}
	if r, ok := u.prices.RangeFor(distance); ok {
		q.Range = &r
	}
	return q, nil
}

// PriceRanges returns the active price table.
func (u *OrderUseCase) PriceRanges() []pricing.Range {
	return u.prices.Ranges()
}

func (u *OrderUseCase) emit(kind model.OrderEventType, order *model.Order) {
	u.events.Enqueue(model.OrderEvent{
		Type:       kind,
		Order:      *order,
		OccurredAt: u.now().UTC(),
	})
}

func requireAdmin(caller model.Caller) error {
	if !caller.Authenticated() || !caller.Admin {
		return domainErrors.ErrForbidden
	}
	return nil
}
