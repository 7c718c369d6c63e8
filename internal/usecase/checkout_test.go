package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lafrite/friterie/internal/adapter/payment"
	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/domain/model"
	"github.com/lafrite/friterie/internal/test"
)

type stubProvider struct {
	createFn func(context.Context, payment.SessionRequest) (*model.CheckoutSession, error)
	stateFn  func(context.Context, string) (model.SessionState, error)
}

func (s stubProvider) CreateSession(ctx context.Context, req payment.SessionRequest) (*model.CheckoutSession, error) {
	return s.createFn(ctx, req)
}

func (s stubProvider) GetSessionState(ctx context.Context, sessionID string) (model.SessionState, error) {
	if s.stateFn != nil {
		return s.stateFn(ctx, sessionID)
	}
	panic("not implemented")
}

func testPricing() Pricing {
	return Pricing{Currency: "eur", DeliveryFee: 250, MinOrderTotal: 500, MaxCartItems: 30}
}

func deliveryCustomer() model.Customer {
	return model.Customer{
		Name:       "Amelie",
		Phone:      "+32470000000",
		Address:    "Rue des Fritures 12",
		PostalCode: "7500",
		City:       "Tournai",
	}
}

func TestCreateOnlineOrderPricesCartWithDeliveryFee(t *testing.T) {
	repo := &test.OrderRepositoryStub{}
	var captured payment.SessionRequest
	provider := stubProvider{createFn: func(_ context.Context, req payment.SessionRequest) (*model.CheckoutSession, error) {
		captured = req
		return &model.CheckoutSession{ID: "cs_123", URL: "https://pay.example/cs_123"}, nil
	}}

	uc := NewCheckoutUseCase(repo, provider, testPricing(), "https://friterie.example")

	items := []model.OrderItem{{Name: "Mitraillette", UnitPrice: 800, Quantity: 1}}
	order, session, err := uc.CreateOnlineOrder(context.Background(), items, deliveryCustomer(), model.DeliveryModeDelivery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Subtotal != 800 || order.DeliveryFee != 250 || order.Total != 1050 {
		t.Fatalf("unexpected pricing: subtotal=%d fee=%d total=%d", order.Subtotal, order.DeliveryFee, order.Total)
	}
	if order.Status != model.OrderStatusPendingPayment {
		t.Fatalf("expected pending payment status, got %s", order.Status)
	}
	if order.PaymentSessionID != "cs_123" {
		t.Fatalf("expected session id on order, got %q", order.PaymentSessionID)
	}
	if session.URL != "https://pay.example/cs_123" {
		t.Fatalf("unexpected session url %q", session.URL)
	}
	if captured.Total != 1050 || captured.Currency != "eur" {
		t.Fatalf("unexpected provider request: %+v", captured)
	}
	if !strings.HasPrefix(captured.SuccessURL, "https://friterie.example/order/confirmed?orderId=") {
		t.Fatalf("success url not scoped to public origin: %q", captured.SuccessURL)
	}

	stored, err := repo.GetByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("order was not persisted: %v", err)
	}
	if stored.PaymentSessionID != "cs_123" {
		t.Fatalf("persisted order lost session id: %q", stored.PaymentSessionID)
	}
}

func TestCreateOnlineOrderPickupSkipsDeliveryFee(t *testing.T) {
	repo := &test.OrderRepositoryStub{}
	provider := stubProvider{createFn: func(context.Context, payment.SessionRequest) (*model.CheckoutSession, error) {
		return &model.CheckoutSession{ID: "cs_9", URL: "https://pay.example/cs_9"}, nil
	}}
	uc := NewCheckoutUseCase(repo, provider, testPricing(), "https://friterie.example")

	customer := model.Customer{Name: "Jules", Phone: "+32471111111"}
	items := []model.OrderItem{{Name: "Fricadelle", UnitPrice: 300, Quantity: 2}}
	order, _, err := uc.CreateOnlineOrder(context.Background(), items, customer, model.DeliveryModePickup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.DeliveryFee != 0 || order.Total != 600 {
		t.Fatalf("unexpected pickup pricing: fee=%d total=%d", order.DeliveryFee, order.Total)
	}
}

func TestCreateOnlineOrderRejectsCartBelowMinimum(t *testing.T) {
	repo := &test.OrderRepositoryStub{CreateFn: func(context.Context, *model.Order) (*model.Order, error) {
		t.Fatal("create should not be called for an underpriced cart")
		return nil, nil
	}}
	provider := stubProvider{createFn: func(context.Context, payment.SessionRequest) (*model.CheckoutSession, error) {
		t.Fatal("provider should not be called for an underpriced cart")
		return nil, nil
	}}
	uc := NewCheckoutUseCase(repo, provider, testPricing(), "https://friterie.example")

	items := []model.OrderItem{{Name: "Sauce andalouse", UnitPrice: 100, Quantity: 1}}
	_, _, err := uc.CreateOnlineOrder(context.Background(), items, deliveryCustomer(), model.DeliveryModeDelivery)
	var vErr *domainErrors.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vErr.Code != "below_minimum" {
		t.Fatalf("unexpected code %q", vErr.Code)
	}
}

func TestCreateOnlineOrderProviderFailureLeavesNoRecord(t *testing.T) {
	repo := &test.OrderRepositoryStub{CreateFn: func(context.Context, *model.Order) (*model.Order, error) {
		t.Fatal("order must not be persisted when session creation fails")
		return nil, nil
	}}
	provider := stubProvider{createFn: func(context.Context, payment.SessionRequest) (*model.CheckoutSession, error) {
		return nil, payment.ErrSessionRejected
	}}
	uc := NewCheckoutUseCase(repo, provider, testPricing(), "https://friterie.example")

	items := []model.OrderItem{{Name: "Mitraillette", UnitPrice: 800, Quantity: 1}}
	_, _, err := uc.CreateOnlineOrder(context.Background(), items, deliveryCustomer(), model.DeliveryModeDelivery)
	if !errors.Is(err, payment.ErrSessionRejected) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestCreateCashOrderStartsReceivedWithoutSession(t *testing.T) {
	repo := &test.OrderRepositoryStub{}
	provider := stubProvider{createFn: func(context.Context, payment.SessionRequest) (*model.CheckoutSession, error) {
		t.Fatal("cash orders must never open a payment session")
		return nil, nil
	}}
	uc := NewCheckoutUseCase(repo, provider, testPricing(), "https://friterie.example")

	items := []model.OrderItem{{Name: "Mitraillette", UnitPrice: 800, Quantity: 1}}
	order, err := uc.CreateCashOrder(context.Background(), items, deliveryCustomer(), model.DeliveryModeDelivery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusReceived {
		t.Fatalf("expected received status, got %s", order.Status)
	}
	if order.PaymentSessionID != "" {
		t.Fatalf("cash order must not carry a session id, got %q", order.PaymentSessionID)
	}
	if order.PaymentMethod != model.PaymentMethodCash {
		t.Fatalf("unexpected payment method %s", order.PaymentMethod)
	}
}
