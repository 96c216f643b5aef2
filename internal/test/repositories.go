package test

import (
	"context"
	"sort"
	"sync"

	domainErrors "github.com/polkiloo/courierdesk/internal/domain/errors"
	"github.com/polkiloo/courierdesk/internal/domain/model"
	"github.com/polkiloo/courierdesk/internal/domain/orderid"
	"github.com/polkiloo/courierdesk/internal/domain/repository"
)

// OrderRepositoryStub keeps orders in memory unless overridden.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	GetByOrderIDFn func(context.Context, string) (*model.Order, error)
	ListFn         func(context.Context) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) (*model.Order, error)
	StatsFn        func(context.Context) (*model.OrderStats, error)

	mu          sync.Mutex
	Orders      []model.Order
	UpdateCalls []OrderUpdateCall
}

// OrderUpdateCall stores information about UpdateStatus invocations.
type OrderUpdateCall struct {
	OrderID string
	Status  model.OrderStatus
}

// Create stores a copy of the order.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.OrderID == order.OrderID {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	s.Orders = append(s.Orders, *order)
	stored := *order
	return &stored, nil
}

// GetByOrderID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	if s.GetByOrderIDFn != nil {
		return s.GetByOrderIDFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.OrderID == orderID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns stored orders newest first.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, len(s.Orders))
	copy(out, s.Orders)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Sequence > out[j].Sequence
	})
	return out, nil
}

// UpdateStatus records update invocations and mutates the stored order.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	s.mu.Lock()
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: orderID, Status: status})
	s.mu.Unlock()
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Orders {
		if s.Orders[i].OrderID == orderID {
			s.Orders[i].Status = status
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Stats counts stored orders by status.
func (s *OrderRepositoryStub) Stats(ctx context.Context) (*model.OrderStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &model.OrderStats{ByStatus: make(map[model.OrderStatus]int64)}
	for _, o := range s.Orders {
		stats.ByStatus[o.Status]++
		stats.Total++
	}
	return stats, nil
}

// SequenceStub hands out consecutive identifiers.
type SequenceStub struct {
	NextFn func(context.Context) (string, int64, error)

	mu   sync.Mutex
	Last int64
}

// NextOrderID returns the identifier following Last.
func (s *SequenceStub) NextOrderID(ctx context.Context) (string, int64, error) {
	if s.NextFn != nil {
		return s.NextFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Last++
	return orderid.Format(s.Last), s.Last, nil
}

// FactoryStub bundles repository stubs behind repository.Factory.
type FactoryStub struct {
	OrdersRepo  *OrderRepositoryStub
	SequenceGen *SequenceStub
	HealthErr   error
	Closed      bool
}

// NewFactoryStub builds a factory with empty stubs.
func NewFactoryStub() *FactoryStub {
	return &FactoryStub{OrdersRepo: &OrderRepositoryStub{}, SequenceGen: &SequenceStub{}}
}

// Orders returns the order repository stub.
func (f *FactoryStub) Orders() repository.OrderRepository { return f.OrdersRepo }

// Sequence returns the sequence stub.
func (f *FactoryStub) Sequence() repository.OrderSequence { return f.SequenceGen }

// HealthCheck returns the configured health error.
func (f *FactoryStub) HealthCheck(context.Context) error { return f.HealthErr }

// Close marks the factory as closed.
func (f *FactoryStub) Close(context.Context) error {
	f.Closed = true
	return nil
}

// EventSinkStub records enqueued events.
type EventSinkStub struct {
	mu     sync.Mutex
	Events []model.OrderEvent
	Reject bool
}

// Enqueue stores the event and reports acceptance.
func (s *EventSinkStub) Enqueue(event model.OrderEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Reject {
		return false
	}
	s.Events = append(s.Events, event)
	return true
}

// Snapshot returns a copy of recorded events.
func (s *EventSinkStub) Snapshot() []model.OrderEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.OrderEvent, len(s.Events))
	copy(out, s.Events)
	return out
}

var _ repository.OrderRepository = (*OrderRepositoryStub)(nil)
var _ repository.OrderSequence = (*SequenceStub)(nil)
var _ repository.Factory = (*FactoryStub)(nil)
