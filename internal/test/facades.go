package test

import (
	"context"
	"sync"

	"github.com/lafrite/friterie/internal/adapter/payment"
	"github.com/lafrite/friterie/internal/domain/model"
)

// CheckoutFacadeStub provides controllable behaviour for checkout endpoints.
type CheckoutFacadeStub struct {
	CreateCheckoutFn  func(context.Context, []model.OrderItem, model.Customer, model.DeliveryMode) (*model.Order, *model.CheckoutSession, error)
	CreateCashOrderFn func(context.Context, []model.OrderItem, model.Customer, model.DeliveryMode) (*model.Order, error)
}

// CreateCheckout delegates to the provided function or returns a default session.
func (s CheckoutFacadeStub) CreateCheckout(ctx context.Context, items []model.OrderItem, customer model.Customer, mode model.DeliveryMode) (*model.Order, *model.CheckoutSession, error) {
	if s.CreateCheckoutFn != nil {
		return s.CreateCheckoutFn(ctx, items, customer, mode)
	}
	order := &model.Order{ID: "order-1", Items: items, Status: model.OrderStatusPendingPayment}
	return order, &model.CheckoutSession{ID: "sess-1", URL: "https://pay.example/s/sess-1"}, nil
}

// CreateCashOrder delegates to the provided function or returns a default order.
func (s CheckoutFacadeStub) CreateCashOrder(ctx context.Context, items []model.OrderItem, customer model.Customer, mode model.DeliveryMode) (*model.Order, error) {
	if s.CreateCashOrderFn != nil {
		return s.CreateCashOrderFn(ctx, items, customer, mode)
	}
	return &model.Order{ID: "order-1", Items: items, Status: model.OrderStatusReceived}, nil
}

// WebhookFacadeStub records payment events passed through the handler.
type WebhookFacadeStub struct {
	HandleFn func(context.Context, *model.PaymentEvent) error

	mu     sync.Mutex
	events []model.PaymentEvent
}

// HandlePaymentEvent captures the event and delegates when configured.
func (s *WebhookFacadeStub) HandlePaymentEvent(ctx context.Context, event *model.PaymentEvent) error {
	s.mu.Lock()
	s.events = append(s.events, *event)
	s.mu.Unlock()
	if s.HandleFn != nil {
		return s.HandleFn(ctx, event)
	}
	return nil
}

// Events returns a copy of captured events.
func (s *WebhookFacadeStub) Events() []model.PaymentEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.PaymentEvent(nil), s.events...)
}

// OrderReadFacadeStub simulates status reads.
type OrderReadFacadeStub struct {
	ByIDFn      func(context.Context, string) (*model.Order, error)
	BySessionFn func(context.Context, string) (*model.Order, error)
}

// OrderByID delegates or returns a default order.
func (s OrderReadFacadeStub) OrderByID(ctx context.Context, id string) (*model.Order, error) {
	if s.ByIDFn != nil {
		return s.ByIDFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPendingPayment}, nil
}

// OrderBySessionID delegates or returns a default order.
func (s OrderReadFacadeStub) OrderBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	if s.BySessionFn != nil {
		return s.BySessionFn(ctx, sessionID)
	}
	return &model.Order{ID: "order-1", PaymentSessionID: sessionID}, nil
}

// AdminFacadeStub simulates dashboard operations.
type AdminFacadeStub struct {
	LoginFn      func(string) (string, error)
	ParseTokenFn func(string) error
	OrdersFn     func(context.Context, model.OrderStatus, int) ([]model.Order, error)
	AdvanceFn    func(context.Context, string, model.OrderStatus) (*model.Order, error)
}

// AdminLogin delegates or returns a default token.
func (s AdminFacadeStub) AdminLogin(password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(password)
	}
	return "admin-token", nil
}

// ParseAdminToken delegates or accepts every token.
func (s AdminFacadeStub) ParseAdminToken(token string) error {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return nil
}

// Orders delegates or returns a single order.
func (s AdminFacadeStub) Orders(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, status, limit)
	}
	return []model.Order{{ID: "order-1"}}, nil
}

// AdvanceOrder delegates or echoes the requested transition.
func (s AdminFacadeStub) AdvanceOrder(ctx context.Context, orderID string, target model.OrderStatus) (*model.Order, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, orderID, target)
	}
	return &model.Order{ID: orderID, Status: target}, nil
}

// StorefrontFacadeStub combines all handler-facing stubs, mirroring the
// aggregate facade the router is wired with.
type StorefrontFacadeStub struct {
	CheckoutFacadeStub
	*WebhookFacadeStub
	OrderReadFacadeStub
	AdminFacadeStub
}

// NewStorefrontFacadeStub builds a stub with default behaviour everywhere.
func NewStorefrontFacadeStub() *StorefrontFacadeStub {
	return &StorefrontFacadeStub{WebhookFacadeStub: &WebhookFacadeStub{}}
}

// PaymentProviderStub simulates the hosted checkout provider.
type PaymentProviderStub struct {
	CreateSessionFn   func(context.Context, payment.SessionRequest) (*model.CheckoutSession, error)
	GetSessionStateFn func(context.Context, string) (model.SessionState, error)
}

// CreateSession delegates or returns a default session.
func (s PaymentProviderStub) CreateSession(ctx context.Context, req payment.SessionRequest) (*model.CheckoutSession, error) {
	if s.CreateSessionFn != nil {
		return s.CreateSessionFn(ctx, req)
	}
	return &model.CheckoutSession{ID: "sess-1", URL: "https://pay.example/s/sess-1"}, nil
}

// GetSessionState delegates or reports the session still open.
func (s PaymentProviderStub) GetSessionState(ctx context.Context, sessionID string) (model.SessionState, error) {
	if s.GetSessionStateFn != nil {
		return s.GetSessionStateFn(ctx, sessionID)
	}
	return model.SessionStateOpen, nil
}
