package usecase

import (
	"go.uber.org/fx"

	"github.com/lafrite/friterie/internal/adapter/payment"
	"github.com/lafrite/friterie/internal/config"
	"github.com/lafrite/friterie/internal/domain/repository"
	pkgAuth "github.com/lafrite/friterie/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newCheckoutUseCase,
	NewOrderUseCase,
	newAdminAuthUseCase,
)

type checkoutParams struct {
	fx.In

	Orders   repository.OrderRepository
	Provider payment.Provider
	Config   *config.Config
}

func newCheckoutUseCase(p checkoutParams) *CheckoutUseCase {
	pricing := Pricing{
		Currency:      p.Config.Currency,
		DeliveryFee:   p.Config.DeliveryFee,
		MinOrderTotal: p.Config.MinOrderTotal,
		MaxCartItems:  p.Config.MaxCartItems,
	}
	return NewCheckoutUseCase(p.Orders, p.Provider, pricing, p.Config.PublicOrigin)
}

type adminAuthParams struct {
	fx.In

	Config *config.Config
	Hasher pkgAuth.PasswordHasher
	Tokens pkgAuth.Strategy
}

func newAdminAuthUseCase(p adminAuthParams) *AdminAuthUseCase {
	return NewAdminAuthUseCase(p.Config.AdminPasswordHash, p.Hasher, p.Tokens)
}
