package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/domain/model"
)

func TestValidateCart(t *testing.T) {
	cases := []struct {
		name      string
		items     []model.OrderItem
		maxItems  int
		wantCode  string
		wantField string
		wantIndex int
	}{
		{
			name:      "empty cart",
			items:     nil,
			maxItems:  30,
			wantCode:  "empty_cart",
			wantField: "items",
			wantIndex: -1,
		},
		{
			name: "too many items",
			items: []model.OrderItem{
				{Name: "Frites", UnitPrice: 350, Quantity: 1},
				{Name: "Fricadelle", UnitPrice: 300, Quantity: 1},
			},
			maxItems:  1,
			wantCode:  "cart_too_large",
			wantField: "items",
			wantIndex: -1,
		},
		{
			name: "blank name",
			items: []model.OrderItem{
				{Name: "Frites", UnitPrice: 350, Quantity: 1},
				{Name: "   ", UnitPrice: 300, Quantity: 1},
			},
			maxItems:  30,
			wantCode:  "invalid_item",
			wantField: "name",
			wantIndex: 1,
		},
		{
			name:      "zero price",
			items:     []model.OrderItem{{Name: "Frites", UnitPrice: 0, Quantity: 1}},
			maxItems:  30,
			wantCode:  "invalid_item",
			wantField: "price",
			wantIndex: 0,
		},
		{
			name:      "negative price",
			items:     []model.OrderItem{{Name: "Frites", UnitPrice: -100, Quantity: 1}},
			maxItems:  30,
			wantCode:  "invalid_item",
			wantField: "price",
			wantIndex: 0,
		},
		{
			name:      "zero quantity",
			items:     []model.OrderItem{{Name: "Frites", UnitPrice: 350, Quantity: 0}},
			maxItems:  30,
			wantCode:  "invalid_item",
			wantField: "quantity",
			wantIndex: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCart(tc.items, tc.maxItems)
			var vErr *domainErrors.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if vErr.Code != tc.wantCode || vErr.Field != tc.wantField || vErr.ItemIndex != tc.wantIndex {
				t.Fatalf("got code=%q field=%q index=%d, want code=%q field=%q index=%d",
					vErr.Code, vErr.Field, vErr.ItemIndex, tc.wantCode, tc.wantField, tc.wantIndex)
			}
		})
	}

	if err := ValidateCart([]model.OrderItem{{Name: "Frites", UnitPrice: 350, Quantity: 2}}, 30); err != nil {
		t.Fatalf("valid cart rejected: %v", err)
	}
}

func TestValidateCustomer(t *testing.T) {
	full := model.Customer{
		Name:       "Amelie",
		Phone:      "+32470000000",
		Address:    "Rue des Fritures 12",
		PostalCode: "7500",
		City:       "Tournai",
	}

	if err := ValidateCustomer(full, model.DeliveryModeDelivery); err != nil {
		t.Fatalf("complete delivery customer rejected: %v", err)
	}
	if err := ValidateCustomer(model.Customer{Name: "Jules", Phone: "+32471111111"}, model.DeliveryModePickup); err != nil {
		t.Fatalf("pickup with name and phone rejected: %v", err)
	}

	cases := []struct {
		name      string
		customer  model.Customer
		mode      model.DeliveryMode
		wantField string
	}{
		{"missing name", model.Customer{Phone: "+32470000000"}, model.DeliveryModePickup, "customer.name"},
		{"missing phone", model.Customer{Name: "Jules"}, model.DeliveryModePickup, "customer.phone"},
		{"delivery without address", model.Customer{Name: "Jules", Phone: "+32470000000"}, model.DeliveryModeDelivery, "customer.address"},
		{"delivery without postal code", model.Customer{Name: "Jules", Phone: "+32470000000", Address: "Rue Haute 1"}, model.DeliveryModeDelivery, "customer.postalCode"},
		{"delivery without city", model.Customer{Name: "Jules", Phone: "+32470000000", Address: "Rue Haute 1", PostalCode: "7500"}, model.DeliveryModeDelivery, "customer.city"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCustomer(tc.customer, tc.mode)
			var vErr *domainErrors.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if vErr.Field != tc.wantField {
				t.Fatalf("got field %q, want %q", vErr.Field, tc.wantField)
			}
		})
	}

	if err := ValidateCustomer(full, model.DeliveryMode("drone")); err == nil {
		t.Fatal("unknown delivery mode accepted")
	}
}
