package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/domain/model"
	"github.com/lafrite/friterie/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders repository.OrderRepository
	events repository.WebhookEventRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, events repository.WebhookEventRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, events: events}
}

// GetByID returns the order or ErrNotFound.
func (u *OrderUseCase) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// GetBySessionID returns the order linked to a payment session.
func (u *OrderUseCase) GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	return u.orders.GetBySessionID(ctx, sessionID)
}

// ListRecent returns latest orders, optionally filtered by status.
func (u *OrderUseCase) ListRecent(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	if status != "" && !status.IsValid() {
		return nil, domainErrors.NewValidationError("invalid_status", "status",
			fmt.Sprintf("unknown status %q", status))
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return u.orders.ListRecent(ctx, status, limit)
}

// RecordEvent stores a webhook event id, reporting whether it is new.
func (u *OrderUseCase) RecordEvent(ctx context.Context, eventID, eventType string) (bool, error) {
	return u.events.Record(ctx, eventID, eventType)
}

// MarkSessionPaid reconciles a completed payment session onto its order.
// The transition is idempotent: a repeated call for the same session reports
// transitioned=false and performs no side effect. An unknown session yields
// ErrNotFound, which webhook callers acknowledge without mutation.
func (u *OrderUseCase) MarkSessionPaid(ctx context.Context, sessionID string) (*model.Order, bool, error) {
	return u.orders.MarkPaid(ctx, sessionID)
}

// Advance moves an order into an operator-selected fulfillment status.
// Unlike webhook reconciliation, a backward or no-op request is a usage
// error and is rejected rather than silently accepted.
func (u *OrderUseCase) Advance(ctx context.Context, orderID string, target model.OrderStatus) (*model.Order, error) {
	if !target.IsAdminTarget() {
		return nil, domainErrors.NewValidationError("invalid_status", "status",
			fmt.Sprintf("status %q is not a selectable fulfillment status", target))
	}

	current, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !model.CanAdvance(current.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", domainErrors.ErrInvalidTransition, current.Status, target)
	}

	updated, err := u.orders.AdvanceStatus(ctx, orderID, current.Status, target)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SelectStalePending returns pending-payment orders old enough to reconcile
// against the provider.
func (u *OrderUseCase) SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return u.orders.SelectStalePending(ctx, olderThan, limit)
}
