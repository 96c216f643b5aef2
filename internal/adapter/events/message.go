package events

import (
	"time"

	"github.com/polkiloo/courierdesk/internal/domain/model"
)

// Message is the JSON body published for every order event.
type Message struct {
	Type       string       `json:"type"`
	OrderID    string       `json:"orderId"`
	Status     string       `json:"status"`
	Order      OrderPayload `json:"order"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// OrderPayload is the order snapshot carried by a Message.
type OrderPayload struct {
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

// NewMessage converts a domain event into its wire form.
func NewMessage(event model.OrderEvent) Message {
	o := event.Order
	return Message{
		Type:    string(event.Type),
		OrderID: o.OrderID,
		Status:  string(o.Status),
		Order: OrderPayload{
			ID:              o.ID,
			OrderID:         o.OrderID,
			FirstName:       o.FirstName,
			LastName:        o.LastName,
			PhoneNumber:     o.PhoneNumber,
			PackageName:     o.PackageName,
			PackageCode:     o.PackageCode,
			PackageSize:     o.PackageSize,
			PickupAddress:   o.PickupAddress,
			DeliveryAddress: o.DeliveryAddress,
			Distance:        o.Distance,
			IsUrgent:        o.IsUrgent,
			DeliveryTime:    o.DeliveryTime,
			Notes:           o.Notes,
			Price:           o.Price,
			Status:          string(o.Status),
			CreatedAt:       o.CreatedAt,
			UpdatedAt:       o.UpdatedAt,
		},
		OccurredAt: event.OccurredAt,
	}
}
