package handlers

import (
	"context"

	"github.com/lafrite/friterie/internal/domain/model"
)

// CheckoutFacade encapsulates order creation exposed via HTTP.
type CheckoutFacade interface {
	CreateCheckout(ctx context.Context, items []model.OrderItem, customer model.Customer, mode model.DeliveryMode) (*model.Order, *model.CheckoutSession, error)
	CreateCashOrder(ctx context.Context, items []model.OrderItem, customer model.Customer, mode model.DeliveryMode) (*model.Order, error)
}

// WebhookFacade applies verified payment events.
type WebhookFacade interface {
	HandlePaymentEvent(ctx context.Context, event *model.PaymentEvent) error
}

// OrderReadFacade provides order status reads.
type OrderReadFacade interface {
	OrderByID(ctx context.Context, id string) (*model.Order, error)
	OrderBySessionID(ctx context.Context, sessionID string) (*model.Order, error)
}

// AdminFacade provides dashboard operations.
type AdminFacade interface {
	AdminLogin(password string) (string, error)
	ParseAdminToken(token string) error
	Orders(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error)
	AdvanceOrder(ctx context.Context, orderID string, target model.OrderStatus) (*model.Order, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	CheckoutFacade
	WebhookFacade
	OrderReadFacade
	AdminFacade
}
