package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/domain/model"
)

// OrderRepositoryStub is an in-memory OrderRepository for use case tests.
type OrderRepositoryStub struct {
	CreateFn        func(context.Context, *model.Order) (*model.Order, error)
	MarkPaidFn      func(context.Context, string) (*model.Order, bool, error)
	AdvanceFn       func(context.Context, string, model.OrderStatus, model.OrderStatus) (*model.Order, error)
	StalePendingFn  func(context.Context, time.Duration, int) ([]model.Order, error)
	ListRecentFn    func(context.Context, model.OrderStatus, int) ([]model.Order, error)

	mu     sync.Mutex
	orders map[string]*model.Order
}

func (s *OrderRepositoryStub) store() map[string]*model.Order {
	if s.orders == nil {
		s.orders = make(map[string]*model.Order)
	}
	return s.orders
}

// Seed places an order into the stub store.
func (s *OrderRepositoryStub) Seed(order *model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *order
	s.store()[order.ID] = &clone
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.store()[order.ID]; ok {
		return nil, domainErrors.ErrAlreadyExists
	}
	clone := *order
	s.store()[order.ID] = &clone
	result := clone
	return &result, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.store()[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (s *OrderRepositoryStub) GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.store() {
		if order.PaymentSessionID == sessionID {
			clone := *order
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListRecent(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	if s.ListRecentFn != nil {
		return s.ListRecentFn(ctx, status, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, order := range s.store() {
		if status != "" && order.Status != status {
			continue
		}
		result = append(result, *order)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (s *OrderRepositoryStub) SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	if s.StalePendingFn != nil {
		return s.StalePendingFn(ctx, olderThan, limit)
	}
	return nil, nil
}

func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, sessionID string) (*model.Order, bool, error) {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, sessionID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.store() {
		if order.PaymentSessionID != sessionID {
			continue
		}
		if order.Status != model.OrderStatusPendingPayment {
			clone := *order
			return &clone, false, nil
		}
		order.Status = model.OrderStatusPaidOnline
		order.UpdatedAt = time.Now()
		clone := *order
		return &clone, true, nil
	}
	return nil, false, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) AdvanceStatus(ctx context.Context, orderID string, from, to model.OrderStatus) (*model.Order, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, orderID, from, to)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.store()[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if order.Status != from {
		return nil, domainErrors.ErrInvalidTransition
	}
	order.Status = to
	order.UpdatedAt = time.Now()
	clone := *order
	return &clone, nil
}

// WebhookEventRepositoryStub tracks recorded provider event ids.
type WebhookEventRepositoryStub struct {
	RecordFn func(context.Context, string, string) (bool, error)

	mu   sync.Mutex
	seen map[string]bool
}

func (s *WebhookEventRepositoryStub) Record(ctx context.Context, eventID, eventType string) (bool, error) {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, eventID, eventType)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[eventID] {
		return false, nil
	}
	s.seen[eventID] = true
	return true, nil
}
