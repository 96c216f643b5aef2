package model

import (
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/courierdesk/internal/domain/errors"
)

// OrderStatus describes delivery progress.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every valid status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusAccepted,
	OrderStatusInTransit,
	OrderStatusDelivered,
}

// Valid reports whether status belongs to the known enumeration.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusAccepted, OrderStatusInTransit, OrderStatusDelivered:
		return true
	}
	return false
}

// ParseOrderStatus converts raw input into OrderStatus.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(strings.TrimSpace(raw))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", domainErrors.ErrInvalidStatus, raw)
	}
	return status, nil
}

// Order describes a single delivery request.
//
// ID is the internal storage key, OrderID the customer facing identifier and
// Sequence its numeric part.
type Order struct {
	ID              string
	OrderID         string
	Sequence        int64
	FirstName       string
	LastName        string
	PhoneNumber     string
	PackageName     string
	PackageCode     string
	PackageSize     string
	PickupAddress   string
	DeliveryAddress string
	Distance        float64
	IsUrgent        bool
	DeliveryTime    string
	Notes           string
	Price           float64
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderStats aggregates order counters by status.
type OrderStats struct {
	ByStatus map[OrderStatus]int64
	Total    int64
}

// Active returns the number of orders that are not delivered yet.
func (s OrderStats) Active() int64 {
	return s.Total - s.ByStatus[OrderStatusDelivered]
}
