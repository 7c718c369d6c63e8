package repository

import (
	"context"
	"time"

	"github.com/lafrite/friterie/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// Status mutations are compare-and-set: the expected source status is part
// of the update predicate so a race between the payment webhook and an admin
// action can never lose or rewind a transition.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error)
	ListRecent(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error)
	// SelectStalePending returns PENDING_PAYMENT orders older than the given
	// age, for reconciliation against the payment provider.
	SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error)
	// MarkPaid transitions the order behind sessionID from PENDING_PAYMENT to
	// PAID_ONLINE. The boolean reports whether this call performed the
	// transition; an already-paid order yields (order, false, nil).
	MarkPaid(ctx context.Context, sessionID string) (*model.Order, bool, error)
	// AdvanceStatus moves an order from one status to another. The write
	// applies only when the current status still equals from; a miss is
	// reported as ErrInvalidTransition.
	AdvanceStatus(ctx context.Context, orderID string, from, to model.OrderStatus) (*model.Order, error)
}

// WebhookEventRepository records processed provider event ids so replayed
// deliveries are acknowledged without re-processing.
type WebhookEventRepository interface {
	// Record stores the event id and reports whether it was seen first here.
	Record(ctx context.Context, eventID, eventType string) (bool, error)
}
