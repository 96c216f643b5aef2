package model

import "time"

// OrderEventType names a change in the order lifecycle.
type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
)

// OrderEvent is emitted after an order change is persisted.
type OrderEvent struct {
	Type       OrderEventType
	Order      Order
	OccurredAt time.Time
}
