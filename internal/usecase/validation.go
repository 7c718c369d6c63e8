package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/domain/model"
)

// ValidateCart checks cart shape: non-empty, bounded size, each line with a
// name, positive minor-unit price and quantity of at least one. The first
// invalid line aborts validation with its index.
func ValidateCart(items []model.OrderItem, maxItems int) error {
	if len(items) == 0 {
		return domainErrors.NewValidationError("empty_cart", "items", "cart must contain at least one item")
	}
	if maxItems > 0 && len(items) > maxItems {
		return domainErrors.NewValidationError("cart_too_large", "items",
			fmt.Sprintf("cart exceeds %d items", maxItems))
	}

	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return domainErrors.NewItemValidationError("invalid_item", "name", i, "name must not be empty")
		}
		if item.UnitPrice <= 0 {
			return domainErrors.NewItemValidationError("invalid_item", "price", i, "price must be a positive amount in minor units")
		}
		if item.Quantity < 1 {
			return domainErrors.NewItemValidationError("invalid_item", "quantity", i, "quantity must be at least 1")
		}
	}

	return nil
}

// ValidateCustomer checks contact details. Delivery requires a full address;
// pickup only needs a name and phone to call out the order.
func ValidateCustomer(c model.Customer, mode model.DeliveryMode) error {
	if mode != model.DeliveryModeDelivery && mode != model.DeliveryModePickup {
		return domainErrors.NewValidationError("invalid_delivery_mode", "deliveryMode", "delivery mode must be delivery or pickup")
	}
	if strings.TrimSpace(c.Name) == "" {
		return domainErrors.NewValidationError("missing_customer_field", "customer.name", "name is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return domainErrors.NewValidationError("missing_customer_field", "customer.phone", "phone is required")
	}
	if mode == model.DeliveryModePickup {
		return nil
	}
	if strings.TrimSpace(c.Address) == "" {
		return domainErrors.NewValidationError("missing_customer_field", "customer.address", "address is required for delivery")
	}
	if strings.TrimSpace(c.PostalCode) == "" {
		return domainErrors.NewValidationError("missing_customer_field", "customer.postalCode", "postal code is required for delivery")
	}
	if strings.TrimSpace(c.City) == "" {
		return domainErrors.NewValidationError("missing_customer_field", "customer.city", "city is required for delivery")
	}
	return nil
}
