package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/courierdesk/internal/config"
)

// Module exposes the events publisher to the fx graph.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

var dial = func(url, exchange string, logger *slog.Logger) (Publisher, error) {
	return DialAMQP(url, exchange, logger)
}

func newPublisher(p publisherParams) (Publisher, error) {
	if p.Config.RabbitURL == "" {
		p.Logger.Info("events disabled, RABBIT_URL is empty")
		return NopPublisher{Logger: p.Logger}, nil
	}

	pub, err := dial(p.Config.RabbitURL, p.Config.EventsExchange, p.Logger)
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}
