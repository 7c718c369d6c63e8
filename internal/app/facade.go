package app

import (
	"context"
	"errors"
	"time"

	"github.com/lafrite/friterie/internal/adapter/payment"
	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/domain/model"
	"github.com/lafrite/friterie/internal/notify"
	"github.com/lafrite/friterie/internal/server/ws"
	"github.com/lafrite/friterie/internal/usecase"
)

// StorefrontFacade aggregates the full set of operations used across
// handlers and the reconciliation worker.
type StorefrontFacade struct {
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
	admin    *usecase.AdminAuthUseCase
	provider payment.Provider
	notifier notify.Notifier
	hub      *ws.Hub
}

// NewStorefrontFacade constructs the facade.
func NewStorefrontFacade(
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
	admin *usecase.AdminAuthUseCase,
	provider payment.Provider,
	notifier notify.Notifier,
	hub *ws.Hub,
) *StorefrontFacade {
	return &StorefrontFacade{
		checkout: checkout,
		orders:   orders,
		admin:    admin,
		provider: provider,
		notifier: notifier,
		hub:      hub,
	}
}

// CreateCheckout opens a hosted payment session and records the order.
func (f *StorefrontFacade) CreateCheckout(ctx context.Context, items []model.OrderItem, customer model.Customer, mode model.DeliveryMode) (*model.Order, *model.CheckoutSession, error) {
	return f.checkout.CreateOnlineOrder(ctx, items, customer, mode)
}

// CreateCashOrder records a cash-on-delivery order.
func (f *StorefrontFacade) CreateCashOrder(ctx context.Context, items []model.OrderItem, customer model.Customer, mode model.DeliveryMode) (*model.Order, error) {
	return f.checkout.CreateCashOrder(ctx, items, customer, mode)
}

// HandlePaymentEvent applies a verified provider event. Foreign event types
// and unknown sessions are acknowledged as no-ops, and duplicate deliveries
// are absorbed by the paid transition's compare-and-set; only infrastructure
// failures surface as errors. The event id lands in the ledger only after
// settlement succeeds, so a redelivery following a transient failure is
// processed rather than treated as a duplicate.
func (f *StorefrontFacade) HandlePaymentEvent(ctx context.Context, event *model.PaymentEvent) error {
	if event.Type != model.EventCheckoutCompleted || event.SessionID == "" {
		return nil
	}

	if _, err := f.SettleSession(ctx, event.SessionID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil
		}
		return err
	}

	if _, err := f.orders.RecordEvent(ctx, event.ID, event.Type); err != nil {
		return err
	}
	return nil
}

// SettleSession marks the session's order paid through the idempotent CAS
// path and fires the paid notification exactly when the transition happened
// in this call. Shared by the webhook and the reconciliation worker.
func (f *StorefrontFacade) SettleSession(ctx context.Context, sessionID string) (bool, error) {
	order, transitioned, err := f.orders.MarkSessionPaid(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if transitioned {
		_ = f.notifier.OrderPaid(ctx, order)
	}
	return transitioned, nil
}

// OrderByID returns an order for the status page or dashboard.
func (f *StorefrontFacade) OrderByID(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.GetByID(ctx, id)
}

// OrderBySessionID returns the order linked to a payment session.
func (f *StorefrontFacade) OrderBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	return f.orders.GetBySessionID(ctx, sessionID)
}

// Orders lists recent orders for the dashboard.
func (f *StorefrontFacade) Orders(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	return f.orders.ListRecent(ctx, status, limit)
}

// AdvanceOrder moves an order into an operator-selected status and
// publishes the transition on the admin feed.
func (f *StorefrontFacade) AdvanceOrder(ctx context.Context, orderID string, target model.OrderStatus) (*model.Order, error) {
	updated, err := f.orders.Advance(ctx, orderID, target)
	if err != nil {
		return nil, err
	}
	f.hub.BroadcastOrderStatus(updated)
	return updated, nil
}

// AdminLogin validates the operator credential and issues a bearer token.
func (f *StorefrontFacade) AdminLogin(password string) (string, error) {
	return f.admin.Login(password)
}

// ParseAdminToken validates an operator bearer token.
func (f *StorefrontFacade) ParseAdminToken(token string) error {
	return f.admin.ParseToken(token)
}

// StalePendingOrders returns pending orders due for reconciliation.
func (f *StorefrontFacade) StalePendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return f.orders.SelectStalePending(ctx, olderThan, limit)
}

// SessionState queries the provider for a session's current state.
func (f *StorefrontFacade) SessionState(ctx context.Context, sessionID string) (model.SessionState, error) {
	return f.provider.GetSessionState(ctx, sessionID)
}
