package model

// OrderDraft carries the customer supplied part of a new order.
type OrderDraft struct {
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
}
