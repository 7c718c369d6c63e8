package model

import "time"

// OrderStatus describes order fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusReceived       OrderStatus = "RECEIVED"
	OrderStatusPaidOnline     OrderStatus = "PAID_ONLINE"
	OrderStatusInPreparation  OrderStatus = "IN_PREPARATION"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
)

// statusRank orders statuses along the forward-only lifecycle.
// PENDING_PAYMENT and RECEIVED share the entry rank: an order begins in one
// or the other depending on payment method and the two never follow each other.
var statusRank = map[OrderStatus]int{
	OrderStatusPendingPayment: 0,
	OrderStatusReceived:       0,
	OrderStatusPaidOnline:     1,
	OrderStatusInPreparation:  2,
	OrderStatusOutForDelivery: 3,
	OrderStatusDelivered:      4,
}

// adminTargets lists the statuses an operator may select from the dashboard.
var adminTargets = map[OrderStatus]bool{
	OrderStatusInPreparation:  true,
	OrderStatusOutForDelivery: true,
	OrderStatusDelivered:      true,
}

// IsValid reports whether s is a known lifecycle status.
func (s OrderStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank returns lifecycle position of s, -1 for unknown statuses.
func (s OrderStatus) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// Terminal reports whether s is absorbing.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered
}

// IsAdminTarget reports whether an operator may request transition into s.
func (s OrderStatus) IsAdminTarget() bool {
	return adminTargets[s]
}

// CanAdvance reports whether moving from current to target keeps the
// lifecycle strictly forward. PENDING_PAYMENT may only leave via payment.
func CanAdvance(current, target OrderStatus) bool {
	if !current.IsValid() || !target.IsValid() {
		return false
	}
	if current.Terminal() {
		return false
	}
	if current == OrderStatusPendingPayment && target != OrderStatusPaidOnline {
		return false
	}
	return target.Rank() > current.Rank()
}

// PaymentMethod fixes how an order is settled. Set at creation, immutable.
type PaymentMethod string

const (
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCash   PaymentMethod = "cash"
)

// DeliveryMode selects between courier delivery and pickup at the counter.
type DeliveryMode string

const (
	DeliveryModeDelivery DeliveryMode = "delivery"
	DeliveryModePickup   DeliveryMode = "pickup"
)

// OrderItem is a single priced line of an order. UnitPrice is in integer
// minor currency units (cents); money never passes through floating point.
type OrderItem struct {
	Name      string
	UnitPrice int64
	Quantity  int64
}

// LineTotal returns UnitPrice multiplied by Quantity.
func (i OrderItem) LineTotal() int64 {
	return i.UnitPrice * i.Quantity
}

// Customer carries contact and delivery details for an order.
type Customer struct {
	Name       string
	Phone      string
	Address    string
	PostalCode string
	City       string
}

// Order is a placed customer order with pricing, delivery and status.
type Order struct {
	ID               string
	Items            []OrderItem
	Subtotal         int64
	DeliveryFee      int64
	Total            int64
	Customer         Customer
	DeliveryMode     DeliveryMode
	PaymentMethod    PaymentMethod
	PaymentSessionID string
	Status           OrderStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
