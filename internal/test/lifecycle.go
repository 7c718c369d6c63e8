package test

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/lafrite/friterie/internal/domain/model"
)

// LifecycleRecorder captures lifecycle hooks appended during tests.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append stores hook for later invocation.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub records shutdown invocations.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown notifies tests about graceful termination.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}

// ReconcilerFacadeStub mimics the reconciliation surface of the application.
type ReconcilerFacadeStub struct {
	StaleFn  func(context.Context, time.Duration, int) ([]model.Order, error)
	StateFn  func(context.Context, string) (model.SessionState, error)
	SettleFn func(context.Context, string) (bool, error)
}

// StalePendingOrders delegates or returns nothing to process.
func (s *ReconcilerFacadeStub) StalePendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, olderThan, limit)
	}
	return nil, nil
}

// SessionState delegates or reports the session still open.
func (s *ReconcilerFacadeStub) SessionState(ctx context.Context, sessionID string) (model.SessionState, error) {
	if s.StateFn != nil {
		return s.StateFn(ctx, sessionID)
	}
	return model.SessionStateOpen, nil
}

// SettleSession delegates or reports a successful settlement.
func (s *ReconcilerFacadeStub) SettleSession(ctx context.Context, sessionID string) (bool, error) {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, sessionID)
	}
	return true, nil
}
