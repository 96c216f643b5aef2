// Package memory keeps orders in process memory. It backs the service when
// no database is configured and is handy for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/courierdesk/internal/domain/errors"
	"github.com/polkiloo/courierdesk/internal/domain/model"
	"github.com/polkiloo/courierdesk/internal/domain/orderid"
	"github.com/polkiloo/courierdesk/internal/domain/repository"
)

// Storage is a mutex guarded order store.
type Storage struct {
	mu     sync.RWMutex
	orders map[string]model.Order
	last   string
	now    func() time.Time
}

// New returns an empty store.
func New() *Storage {
	return &Storage{orders: make(map[string]model.Order), now: time.Now}
}

func (s *Storage) Orders() repository.OrderRepository { return s }

func (s *Storage) Sequence() repository.OrderSequence { return s }

// HealthCheck always succeeds.
func (s *Storage) HealthCheck(context.Context) error { return nil }

// Close drops nothing; orders live as long as the process.
func (s *Storage) Close(context.Context) error { return nil }

// NextOrderID derives the identifier following the last one handed out.
func (s *Storage) NextOrderID(ctx context.Context) (string, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := orderid.Next(s.last)
	if err != nil {
		return "", 0, err
	}
	n, err := orderid.Parse(next)
	if err != nil {
		return "", 0, err
	}
	s.last = next
	return next, n, nil
}

func (s *Storage) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[order.OrderID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	s.orders[order.OrderID] = *order
	stored := *order
	return &stored, nil
}

func (s *Storage) GetByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &order, nil
}

func (s *Storage) List(ctx context.Context) ([]model.Order, error) {
	s.mu.RLock()
	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Sequence > out[j].Sequence
	})
	return out, nil
}

func (s *Storage) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = s.now().UTC().Truncate(time.Millisecond)
	s.orders[orderID] = order
	return &order, nil
}

func (s *Storage) Stats(ctx context.Context) (*model.OrderStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := &model.OrderStats{ByStatus: make(map[model.OrderStatus]int64, len(model.OrderStatuses))}
	for _, o := range s.orders {
		stats.ByStatus[o.Status]++
		stats.Total++
	}
	return stats, nil
}

var (
	_ repository.Factory         = (*Storage)(nil)
	_ repository.OrderRepository = (*Storage)(nil)
	_ repository.OrderSequence   = (*Storage)(nil)
)
