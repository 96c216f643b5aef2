package dto

import "time"

// CreateOrderRequest is the body of POST /order/create.
type CreateOrderRequest struct {
	FirstName       string   `json:"firstName" validate:"notblank,max=100"`
	LastName        string   `json:"lastName" validate:"notblank,max=100"`
	PhoneNumber     string   `json:"phoneNumber" validate:"notblank,max=32"`
	PackageName     string   `json:"packageName" validate:"notblank,max=200"`
	PackageCode     string   `json:"packageCode" validate:"max=100"`
	PackageSize     string   `json:"packageSize" validate:"max=100"`
	PickupAddress   string   `json:"pickupAddress" validate:"notblank,max=500"`
	DeliveryAddress string   `json:"deliveryAddress" validate:"notblank,max=500"`
	Distance        *float64 `json:"distance" validate:"required,gte=0"`
	IsUrgent        bool     `json:"isUrgent"`
	DeliveryTime    string   `json:"deliveryTime" validate:"max=100"`
	Notes           string   `json:"notes" validate:"max=2000"`
}

// UpdateStatusRequest is the body of PATCH /order/:orderId.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"notblank"`
}

// OrderResponse is the public representation of an order.
type OrderResponse struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"orderId"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	PhoneNumber     string    `json:"phoneNumber"`
	PackageName     string    `json:"packageName"`
	PackageCode     string    `json:"packageCode,omitempty"`
	PackageSize     string    `json:"packageSize,omitempty"`
	PickupAddress   string    `json:"pickupAddress"`
	DeliveryAddress string    `json:"deliveryAddress"`
	Distance        float64   `json:"distance"`
	IsUrgent        bool      `json:"isUrgent"`
	DeliveryTime    string    `json:"deliveryTime,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Price           float64   `json:"price"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// StatsResponse holds the admin dashboard counters.
type StatsResponse struct {
	New       int64 `json:"new"`
	Accepted  int64 `json:"accepted"`
	InTransit int64 `json:"in_transit"`
	Delivered int64 `json:"delivered"`
	Active    int64 `json:"active"`
	Total     int64 `json:"total"`
}
