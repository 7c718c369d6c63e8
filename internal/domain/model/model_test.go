package model

import "testing"

func TestCanAdvanceForwardPath(t *testing.T) {
	allowed := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPendingPayment, OrderStatusPaidOnline},
		{OrderStatusPaidOnline, OrderStatusInPreparation},
		{OrderStatusReceived, OrderStatusInPreparation},
		{OrderStatusInPreparation, OrderStatusOutForDelivery},
		{OrderStatusOutForDelivery, OrderStatusDelivered},
		{OrderStatusReceived, OrderStatusDelivered},
	}
	for _, tc := range allowed {
		if !CanAdvance(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}
}

func TestCanAdvanceRejectsBackwardAndNoop(t *testing.T) {
	rejected := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPaidOnline, OrderStatusPendingPayment},
		{OrderStatusInPreparation, OrderStatusInPreparation},
		{OrderStatusOutForDelivery, OrderStatusInPreparation},
		{OrderStatusDelivered, OrderStatusInPreparation},
		{OrderStatusDelivered, OrderStatusOutForDelivery},
		{OrderStatusReceived, OrderStatusPaidOnline},
		{OrderStatusPendingPayment, OrderStatusInPreparation},
		{OrderStatusPendingPayment, OrderStatusReceived},
	}
	for _, tc := range rejected {
		if CanAdvance(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestCanAdvanceUnknownStatus(t *testing.T) {
	if CanAdvance("BOGUS", OrderStatusDelivered) {
		t.Error("unknown source status must not advance")
	}
	if CanAdvance(OrderStatusReceived, "BOGUS") {
		t.Error("unknown target status must not be reachable")
	}
}

func TestDeliveredIsAbsorbing(t *testing.T) {
	for status := range statusRank {
		if CanAdvance(OrderStatusDelivered, status) {
			t.Errorf("DELIVERED must not transition to %s", status)
		}
	}
	if !OrderStatusDelivered.Terminal() {
		t.Error("DELIVERED must be terminal")
	}
}

func TestAdminTargets(t *testing.T) {
	wantTargets := map[OrderStatus]bool{
		OrderStatusInPreparation:  true,
		OrderStatusOutForDelivery: true,
		OrderStatusDelivered:      true,
	}
	for status := range statusRank {
		if got, want := status.IsAdminTarget(), wantTargets[status]; got != want {
			t.Errorf("IsAdminTarget(%s) = %v, want %v", status, got, want)
		}
	}
	if OrderStatus("BOGUS").IsAdminTarget() {
		t.Error("unknown status must not be an admin target")
	}
}

func TestLineTotal(t *testing.T) {
	item := OrderItem{Name: "Mitraillette", UnitPrice: 800, Quantity: 3}
	if got := item.LineTotal(); got != 2400 {
		t.Fatalf("expected line total 2400, got %d", got)
	}
}
