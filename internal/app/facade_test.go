package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lafrite/friterie/internal/adapter/payment"
	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/domain/model"
	pkgAuth "github.com/lafrite/friterie/internal/pkg/auth"
	"github.com/lafrite/friterie/internal/server/ws"
	"github.com/lafrite/friterie/internal/test"
	"github.com/lafrite/friterie/internal/usecase"
)

type providerStub struct {
	createFn func(context.Context, payment.SessionRequest) (*model.CheckoutSession, error)
	stateFn  func(context.Context, string) (model.SessionState, error)
}

func (s providerStub) CreateSession(ctx context.Context, req payment.SessionRequest) (*model.CheckoutSession, error) {
	if s.createFn != nil {
		return s.createFn(ctx, req)
	}
	return &model.CheckoutSession{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil
}

func (s providerStub) GetSessionState(ctx context.Context, sessionID string) (model.SessionState, error) {
	if s.stateFn != nil {
		return s.stateFn(ctx, sessionID)
	}
	return model.SessionStateOpen, nil
}

type countingNotifier struct {
	mu    sync.Mutex
	calls int
}

func (n *countingNotifier) OrderPaid(context.Context, *model.Order) error {
	n.mu.Lock()
	n.calls++
	n.mu.Unlock()
	return nil
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

type facadeFixture struct {
	facade   *StorefrontFacade
	repo     *test.OrderRepositoryStub
	notifier *countingNotifier
}

func newFacadeFixture(t *testing.T, provider providerStub) *facadeFixture {
	t.Helper()
	repo := &test.OrderRepositoryStub{}
	events := &test.WebhookEventRepositoryStub{}
	notifier := &countingNotifier{}

	pricing := usecase.Pricing{Currency: "eur", DeliveryFee: 250, MinOrderTotal: 0, MaxCartItems: 30}
	checkout := usecase.NewCheckoutUseCase(repo, provider, pricing, "https://friterie.example")
	orders := usecase.NewOrderUseCase(repo, events)

	hasher := pkgAuth.NewBcryptHasher(4)
	hash, err := hasher.Hash("frietsaus")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admin := usecase.NewAdminAuthUseCase(hash, hasher, pkgAuth.NewJWTStrategy("test-secret", pkgAuth.Options{}))

	facade := NewStorefrontFacade(checkout, orders, admin, provider, notifier, ws.NewHub())
	return &facadeFixture{facade: facade, repo: repo, notifier: notifier}
}

func completedEvent(id, sessionID string) *model.PaymentEvent {
	return &model.PaymentEvent{ID: id, Type: model.EventCheckoutCompleted, SessionID: sessionID}
}

func TestFacadeDuplicateWebhookNotifiesOnce(t *testing.T) {
	fx := newFacadeFixture(t, providerStub{})
	fx.repo.Seed(&model.Order{ID: "o1", PaymentSessionID: "cs_1", Status: model.OrderStatusPendingPayment})

	if err := fx.facade.HandlePaymentEvent(context.Background(), completedEvent("evt_1", "cs_1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.facade.HandlePaymentEvent(context.Background(), completedEvent("evt_1", "cs_1")); err != nil {
		t.Fatalf("unexpected error on redelivery: %v", err)
	}

	order, err := fx.repo.GetByID(context.Background(), "o1")
	if err != nil {
		t.Fatalf("load order: %v", err)
	}
	if order.Status != model.OrderStatusPaidOnline {
		t.Fatalf("expected PAID_ONLINE, got %s", order.Status)
	}
	if fx.notifier.count() != 1 {
		t.Fatalf("expected exactly one notification, got %d", fx.notifier.count())
	}
}

func TestFacadeDistinctEventsForSameSessionSettleOnce(t *testing.T) {
	fx := newFacadeFixture(t, providerStub{})
	fx.repo.Seed(&model.Order{ID: "o1", PaymentSessionID: "cs_1", Status: model.OrderStatusPendingPayment})

	if err := fx.facade.HandlePaymentEvent(context.Background(), completedEvent("evt_1", "cs_1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fx.facade.HandlePaymentEvent(context.Background(), completedEvent("evt_2", "cs_1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fx.notifier.count() != 1 {
		t.Fatalf("expected one notification across both events, got %d", fx.notifier.count())
	}
}

func TestFacadeIgnoresForeignEventTypes(t *testing.T) {
	fx := newFacadeFixture(t, providerStub{})
	fx.repo.Seed(&model.Order{ID: "o1", PaymentSessionID: "cs_1", Status: model.OrderStatusPendingPayment})

	event := &model.PaymentEvent{ID: "evt_1", Type: "checkout.session.expired", SessionID: "cs_1"}
	if err := fx.facade.HandlePaymentEvent(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, _ := fx.repo.GetByID(context.Background(), "o1")
	if order.Status != model.OrderStatusPendingPayment {
		t.Fatalf("foreign event mutated the order: %s", order.Status)
	}
	if fx.notifier.count() != 0 {
		t.Fatal("foreign event triggered a notification")
	}
}

func TestFacadeAcknowledgesUnknownSession(t *testing.T) {
	fx := newFacadeFixture(t, providerStub{})

	if err := fx.facade.HandlePaymentEvent(context.Background(), completedEvent("evt_1", "cs_unknown")); err != nil {
		t.Fatalf("unknown session must be acknowledged, got %v", err)
	}
	if fx.notifier.count() != 0 {
		t.Fatal("unknown session triggered a notification")
	}
}

func TestFacadeWebhookNeverTouchesCashOrders(t *testing.T) {
	fx := newFacadeFixture(t, providerStub{})

	items := []model.OrderItem{{Name: "Mitraillette", UnitPrice: 800, Quantity: 1}}
	customer := model.Customer{Name: "Jules", Phone: "+32471111111"}
	order, err := fx.facade.CreateCashOrder(context.Background(), items, customer, model.DeliveryModePickup)
	if err != nil {
		t.Fatalf("create cash order: %v", err)
	}

	if err := fx.facade.HandlePaymentEvent(context.Background(), completedEvent("evt_1", "cs_ghost")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded, err := fx.facade.OrderByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("load order: %v", err)
	}
	if reloaded.Status != model.OrderStatusReceived {
		t.Fatalf("cash order moved to %s", reloaded.Status)
	}
}

func TestFacadeSurfacesEventLedgerFailure(t *testing.T) {
	fx := newFacadeFixture(t, providerStub{})
	facade := fx.facade
	fx.repo.Seed(&model.Order{ID: "o1", PaymentSessionID: "cs_1", Status: model.OrderStatusPendingPayment})

	repoErr := errors.New("db down")
	eventRepo := &test.WebhookEventRepositoryStub{RecordFn: func(context.Context, string, string) (bool, error) {
		return false, repoErr
	}}
	facade.orders = usecase.NewOrderUseCase(fx.repo, eventRepo)

	if err := facade.HandlePaymentEvent(context.Background(), completedEvent("evt_1", "cs_1")); !errors.Is(err, repoErr) {
		t.Fatalf("expected ledger failure to surface, got %v", err)
	}

	// Settlement happened before the ledger write, so the order is paid and
	// the provider's retry is a harmless no-op.
	order, err := fx.repo.GetByID(context.Background(), "o1")
	if err != nil {
		t.Fatalf("load order: %v", err)
	}
	if order.Status != model.OrderStatusPaidOnline {
		t.Fatalf("expected PAID_ONLINE before ledger write, got %s", order.Status)
	}
}

func TestFacadeRedeliveryAfterTransientFailureSettles(t *testing.T) {
	fx := newFacadeFixture(t, providerStub{})
	fx.repo.Seed(&model.Order{ID: "o1", PaymentSessionID: "cs_1", Status: model.OrderStatusPendingPayment})

	dbErr := errors.New("connection reset")
	fx.repo.MarkPaidFn = func(context.Context, string) (*model.Order, bool, error) {
		return nil, false, dbErr
	}

	if err := fx.facade.HandlePaymentEvent(context.Background(), completedEvent("evt_1", "cs_1")); !errors.Is(err, dbErr) {
		t.Fatalf("expected transient failure to surface, got %v", err)
	}
	if fx.notifier.count() != 0 {
		t.Fatal("failed settlement must not notify")
	}

	fx.repo.MarkPaidFn = nil
	if err := fx.facade.HandlePaymentEvent(context.Background(), completedEvent("evt_1", "cs_1")); err != nil {
		t.Fatalf("redelivery after transient failure: %v", err)
	}

	order, err := fx.repo.GetByID(context.Background(), "o1")
	if err != nil {
		t.Fatalf("load order: %v", err)
	}
	if order.Status != model.OrderStatusPaidOnline {
		t.Fatalf("order stuck in %s after provider retry", order.Status)
	}
	if fx.notifier.count() != 1 {
		t.Fatalf("expected exactly one notification, got %d", fx.notifier.count())
	}
}

func TestFacadeCheckoutRoundTrip(t *testing.T) {
	fx := newFacadeFixture(t, providerStub{})

	items := []model.OrderItem{{Name: "Mitraillette", UnitPrice: 800, Quantity: 1}}
	customer := model.Customer{
		Name: "Amelie", Phone: "+32470000000",
		Address: "Rue des Fritures 12", PostalCode: "7500", City: "Tournai",
	}

	order, session, err := fx.facade.CreateCheckout(context.Background(), items, customer, model.DeliveryModeDelivery)
	if err != nil {
		t.Fatalf("create checkout: %v", err)
	}
	if session.ID != "cs_1" || order.Total != 1050 {
		t.Fatalf("unexpected checkout result: session=%+v total=%d", session, order.Total)
	}

	bySession, err := fx.facade.OrderBySessionID(context.Background(), "cs_1")
	if err != nil {
		t.Fatalf("lookup by session: %v", err)
	}
	if bySession.ID != order.ID {
		t.Fatalf("session lookup returned %s, want %s", bySession.ID, order.ID)
	}
}

func TestFacadeAdvanceOrder(t *testing.T) {
	fx := newFacadeFixture(t, providerStub{})
	fx.repo.Seed(&model.Order{ID: "o1", Status: model.OrderStatusPaidOnline})

	order, err := fx.facade.AdvanceOrder(context.Background(), "o1", model.OrderStatusInPreparation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusInPreparation {
		t.Fatalf("unexpected status %s", order.Status)
	}

	if _, err := fx.facade.AdvanceOrder(context.Background(), "o1", model.OrderStatusPaidOnline); err == nil {
		t.Fatal("backward transition accepted")
	}
}

func TestFacadeAdminLoginAndToken(t *testing.T) {
	fx := newFacadeFixture(t, providerStub{})

	token, err := fx.facade.AdminLogin("frietsaus")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := fx.facade.ParseAdminToken(token); err != nil {
		t.Fatalf("token rejected: %v", err)
	}
	if _, err := fx.facade.AdminLogin("wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestFacadeSessionStateDelegatesToProvider(t *testing.T) {
	fx := newFacadeFixture(t, providerStub{stateFn: func(_ context.Context, sessionID string) (model.SessionState, error) {
		if sessionID != "cs_1" {
			return "", payment.ErrSessionNotFound
		}
		return model.SessionStateCompleted, nil
	}})

	state, err := fx.facade.SessionState(context.Background(), "cs_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != model.SessionStateCompleted {
		t.Fatalf("unexpected state %s", state)
	}
}
