package di

import (
	"go.uber.org/fx"

	"github.com/lafrite/friterie/internal/adapter/payment"
	"github.com/lafrite/friterie/internal/app"
	"github.com/lafrite/friterie/internal/config"
	"github.com/lafrite/friterie/internal/logger"
	"github.com/lafrite/friterie/internal/notify"
	"github.com/lafrite/friterie/internal/pkg/auth"
	"github.com/lafrite/friterie/internal/server/http/handlers"
	"github.com/lafrite/friterie/internal/server/http/router"
	"github.com/lafrite/friterie/internal/server/ws"
	"github.com/lafrite/friterie/internal/storage/postgres"
	"github.com/lafrite/friterie/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		ws.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
