package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/courierdesk/internal/domain/model"
)

// Publisher is the outbound side of the dispatcher.
type Publisher interface {
	Publish(ctx context.Context, event model.OrderEvent) error
}

// EventDispatcher hands order events to a fixed pool of publishing workers.
// Enqueue never blocks: when the buffer is full the event is dropped and logged.
type EventDispatcher struct {
	publisher      Publisher
	workers        int
	publishTimeout time.Duration
	logger         *slog.Logger

	jobs    chan model.OrderEvent
	wg      sync.WaitGroup
	mu      sync.RWMutex
	running bool
	closed  bool
}

// NewEventDispatcher constructs the dispatcher worker pool.
func NewEventDispatcher(publisher Publisher, workers, buffer int, logger *slog.Logger) *EventDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 1
	}
	return &EventDispatcher{
		publisher:      publisher,
		workers:        workers,
		publishTimeout: 5 * time.Second,
		logger:         logger,
		jobs:           make(chan model.OrderEvent, buffer),
	}
}

// Start launches the workers. Calling Start twice is a no-op.
func (d *EventDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running || d.closed {
		return
	}
	d.running = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Enqueue schedules event for publishing and reports whether it was accepted.
func (d *EventDispatcher) Enqueue(event model.OrderEvent) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("event dropped, dispatcher stopped",
			slog.String("type", string(event.Type)),
			slog.String("order_id", event.Order.OrderID))
		return false
	}

	select {
	case d.jobs <- event:
		return true
	default:
		d.logger.Warn("event dropped, buffer full",
			slog.String("type", string(event.Type)),
			slog.String("order_id", event.Order.OrderID))
		return false
	}
}

// Stop closes the queue and waits until buffered events are published or ctx expires.
func (d *EventDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.jobs)
	running := d.running
	d.mu.Unlock()

	if !running {
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *EventDispatcher) worker() {
	defer d.wg.Done()
	for event := range d.jobs {
		d.handleEvent(event)
	}
}

func (d *EventDispatcher) handleEvent(event model.OrderEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.publishTimeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, event); err != nil {
		d.logger.Error("publish event failed",
			slog.String("type", string(event.Type)),
			slog.String("order_id", event.Order.OrderID),
			slog.String("error", err.Error()))
		return
	}
	d.logger.Debug("event published",
		slog.String("type", string(event.Type)),
		slog.String("order_id", event.Order.OrderID))
}
