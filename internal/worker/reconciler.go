package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lafrite/friterie/internal/adapter/payment"
	"github.com/lafrite/friterie/internal/domain/model"
)

// StorefrontFacade exposes the subset of application functionality required
// by the reconciler.
type StorefrontFacade interface {
	StalePendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error)
	SessionState(ctx context.Context, sessionID string) (model.SessionState, error)
	SettleSession(ctx context.Context, sessionID string) (bool, error)
}

// Reconciler sweeps PENDING_PAYMENT orders whose webhook may have been lost
// and settles them against the provider's view of the session. Settlement
// goes through the same compare-and-set path as the webhook, so a webhook
// arriving mid-sweep is harmless.
type Reconciler struct {
	facade       StorefrontFacade
	pollInterval time.Duration
	minAge       time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconciliation worker pool.
func NewReconciler(facade StorefrontFacade, pollInterval, minAge time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:       facade,
		pollInterval: pollInterval,
		minAge:       minAge,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := r.facade.StalePendingOrders(ctx, r.minAge, r.batchSize)
	if err != nil {
		r.logger.Error("fetch stale pending orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- order:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-r.jobs:
			if !ok {
				return
			}
			r.reconcile(ctx, order)
		}
	}
}

// maxPause bounds how long a worker honors a provider Retry-After.
const maxPause = 30 * time.Second

// pause blocks for at most d, returning early when ctx is cancelled.
func (r *Reconciler) pause(ctx context.Context, d time.Duration) {
	if d > maxPause {
		d = maxPause
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (r *Reconciler) reconcile(ctx context.Context, order model.Order) {
	state, err := r.facade.SessionState(ctx, order.PaymentSessionID)
	if err != nil {
		var tooMany payment.TooManyRequestsError
		switch {
		case errors.As(err, &tooMany):
			r.logger.Warn("provider rate limited", slog.Duration("retry_after", tooMany.RetryAfter))
			r.pause(ctx, tooMany.RetryAfter)
		case errors.Is(err, payment.ErrSessionNotFound):
			r.logger.Warn("provider lost session", slog.String("order", order.ID), slog.String("session", order.PaymentSessionID))
		default:
			r.logger.Error("session state fetch failed", slog.String("order", order.ID), slog.String("error", err.Error()))
		}
		return
	}

	switch state {
	case model.SessionStateCompleted:
		settled, err := r.facade.SettleSession(ctx, order.PaymentSessionID)
		if err != nil {
			r.logger.Error("settle session failed", slog.String("order", order.ID), slog.String("error", err.Error()))
			return
		}
		if settled {
			r.logger.Info("order settled by reconciler", slog.String("order", order.ID))
		}
	case model.SessionStateExpired:
		// Order stays pending: the customer can retry checkout, and the
		// lifecycle never moves backward.
		r.logger.Info("session expired, order left pending", slog.String("order", order.ID))
	}
}
