package usecase

import (
	"fmt"
	"math"
	"strings"

	domainErrors "github.com/polkiloo/courierdesk/internal/domain/errors"
	"github.com/polkiloo/courierdesk/internal/domain/model"
)

// NormalizeDraft trims surrounding whitespace from every text field.
func NormalizeDraft(d model.OrderDraft) model.OrderDraft {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.PhoneNumber = strings.TrimSpace(d.PhoneNumber)
	d.PackageName = strings.TrimSpace(d.PackageName)
	d.PackageCode = strings.TrimSpace(d.PackageCode)
	d.PackageSize = strings.TrimSpace(d.PackageSize)
	d.PickupAddress = strings.TrimSpace(d.PickupAddress)
	d.DeliveryAddress = strings.TrimSpace(d.DeliveryAddress)
	d.DeliveryTime = strings.TrimSpace(d.DeliveryTime)
	d.Notes = strings.TrimSpace(d.Notes)
	return d
}

// ValidateDraft checks the fields every order must carry.
func ValidateDraft(d model.OrderDraft) error {
	required := []struct {
		field string
		value string
	}{
		{"firstName", d.FirstName},
		{"lastName", d.LastName},
		{"phoneNumber", d.PhoneNumber},
		{"packageName", d.PackageName},
		{"pickupAddress", d.PickupAddress},
		{"deliveryAddress", d.DeliveryAddress},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s is required", domainErrors.ErrInvalidOrder, r.field)
		}
	}
	return validateDistance(d.Distance)
}

func validateDistance(distance float64) error {
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return fmt.Errorf("%w: distance must be a finite number", domainErrors.ErrInvalidOrder)
	}
	if distance < 0 {
		return fmt.Errorf("%w: distance must not be negative", domainErrors.ErrInvalidOrder)
	}
	return nil
}
