package model

import (
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/courierdesk/internal/domain/errors"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"new", OrderStatusNew, "new"},
		{"accepted", OrderStatusAccepted, "accepted"},
		{"in transit", OrderStatusInTransit, "in_transit"},
		{"delivered", OrderStatusDelivered, "delivered"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %s to be valid", tc.got)
			}
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, status := range OrderStatuses {
		got, err := ParseOrderStatus(" " + string(status) + " ")
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", status, err)
		}
		if got != status {
			t.Fatalf("expected %s, got %s", status, got)
		}
	}

	for _, raw := range []string{"", "NEW", "cancelled", "in transit"} {
		if _, err := ParseOrderStatus(raw); !errors.Is(err, domainErrors.ErrInvalidStatus) {
			t.Fatalf("expected invalid status error for %q, got %v", raw, err)
		}
	}
}

func TestOrderStatsActive(t *testing.T) {
	stats := OrderStats{
		ByStatus: map[OrderStatus]int64{OrderStatusNew: 2, OrderStatusDelivered: 3},
		Total:    5,
	}
	if got := stats.Active(); got != 2 {
		t.Fatalf("expected 2 active orders, got %d", got)
	}
	if got := (OrderStats{}).Active(); got != 0 {
		t.Fatalf("expected 0 active orders for empty stats, got %d", got)
	}
}

func TestCallerAuthenticated(t *testing.T) {
	if Anonymous.Authenticated() {
		t.Fatal("anonymous caller must not be authenticated")
	}
	if !(Caller{Subject: "admin", Admin: true}).Authenticated() {
		t.Fatal("expected caller with subject to be authenticated")
	}
}
