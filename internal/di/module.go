package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/courierdesk/internal/adapter/events"
	"github.com/polkiloo/courierdesk/internal/app"
	"github.com/polkiloo/courierdesk/internal/config"
	"github.com/polkiloo/courierdesk/internal/logger"
	"github.com/polkiloo/courierdesk/internal/pkg/auth"
	"github.com/polkiloo/courierdesk/internal/server/http/handlers"
	"github.com/polkiloo/courierdesk/internal/server/http/router"
	"github.com/polkiloo/courierdesk/internal/storage"
	"github.com/polkiloo/courierdesk/internal/usecase"
	"github.com/polkiloo/courierdesk/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(p events.Publisher) worker.Publisher { return p }),
		fx.Provide(func(d *worker.EventDispatcher) usecase.EventSink { return d }),
		fx.Provide(func(f *app.CourierFacade) handlers.CourierFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
