package usecase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/lafrite/friterie/internal/adapter/payment"
	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/domain/model"
	"github.com/lafrite/friterie/internal/domain/repository"
)

// Pricing carries checkout policy knobs.
type Pricing struct {
	Currency      string
	DeliveryFee   int64
	MinOrderTotal int64
	MaxCartItems  int
}

// CheckoutUseCase validates carts, prices them in integer minor units and
// opens hosted payment sessions.
type CheckoutUseCase struct {
	orders       repository.OrderRepository
	provider     payment.Provider
	pricing      Pricing
	publicOrigin string
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(orders repository.OrderRepository, provider payment.Provider, pricing Pricing, publicOrigin string) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, provider: provider, pricing: pricing, publicOrigin: publicOrigin}
}

func (u *CheckoutUseCase) validateAndPrice(items []model.OrderItem, customer model.Customer, mode model.DeliveryMode) (subtotal, fee, total int64, err error) {
	if err := ValidateCart(items, u.pricing.MaxCartItems); err != nil {
		return 0, 0, 0, err
	}
	if err := ValidateCustomer(customer, mode); err != nil {
		return 0, 0, 0, err
	}

	for _, item := range items {
		subtotal += item.LineTotal()
	}
	if mode == model.DeliveryModeDelivery {
		fee = u.pricing.DeliveryFee
	}
	total = subtotal + fee

	if total < u.pricing.MinOrderTotal {
		return 0, 0, 0, domainErrors.NewValidationError("below_minimum", "items",
			fmt.Sprintf("order total %d is below the minimum of %d", total, u.pricing.MinOrderTotal))
	}
	return subtotal, fee, total, nil
}

// CreateOnlineOrder opens a hosted checkout session and persists the order
// in PENDING_PAYMENT. Session creation comes first: a provider failure must
// leave no record behind.
func (u *CheckoutUseCase) CreateOnlineOrder(ctx context.Context, items []model.OrderItem, customer model.Customer, mode model.DeliveryMode) (*model.Order, *model.CheckoutSession, error) {
	subtotal, fee, total, err := u.validateAndPrice(items, customer, mode)
	if err != nil {
		return nil, nil, err
	}

	orderID := uuid.NewString()

	session, err := u.provider.CreateSession(ctx, payment.SessionRequest{
		Items:      items,
		Total:      total,
		Currency:   u.pricing.Currency,
		OrderRef:   orderID,
		SuccessURL: u.redirectURL("/order/confirmed", orderID),
		CancelURL:  u.redirectURL("/order/cancelled", orderID),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create checkout session: %w", err)
	}

	order := &model.Order{
		ID:               orderID,
		Items:            items,
		Subtotal:         subtotal,
		DeliveryFee:      fee,
		Total:            total,
		Customer:         customer,
		DeliveryMode:     mode,
		PaymentMethod:    model.PaymentMethodOnline,
		PaymentSessionID: session.ID,
		Status:           model.OrderStatusPendingPayment,
	}

	stored, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, nil, fmt.Errorf("persist order: %w", err)
	}
	return stored, session, nil
}

// CreateCashOrder persists a cash-on-delivery order directly in RECEIVED.
// No payment session is ever attached to it.
func (u *CheckoutUseCase) CreateCashOrder(ctx context.Context, items []model.OrderItem, customer model.Customer, mode model.DeliveryMode) (*model.Order, error) {
	subtotal, fee, total, err := u.validateAndPrice(items, customer, mode)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:            uuid.NewString(),
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		Total:         total,
		Customer:      customer,
		DeliveryMode:  mode,
		PaymentMethod: model.PaymentMethodCash,
		Status:        model.OrderStatusReceived,
	}

	stored, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	return stored, nil
}

// redirectURL scopes redirect targets to the configured public origin.
// Attacker-supplied URLs never reach the provider.
func (u *CheckoutUseCase) redirectURL(p, orderID string) string {
	q := url.Values{"orderId": {orderID}}
	return u.publicOrigin + p + "?" + q.Encode()
}
