// Package storage selects and wires the order store backend.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/fx"

	"github.com/polkiloo/courierdesk/internal/config"
	"github.com/polkiloo/courierdesk/internal/domain/repository"
	"github.com/polkiloo/courierdesk/internal/storage/memory"
	"github.com/polkiloo/courierdesk/internal/storage/mongodb"
	"github.com/polkiloo/courierdesk/internal/storage/postgres"
)

// Backend names the kind of order store.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendMongo    Backend = "mongodb"
	BackendPostgres Backend = "postgres"
)

// Module wires the configured storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.OrderSequence { return f.Sequence() },
	),
	fx.Invoke(registerLifecycle),
)

// DetectBackend maps a connection URI to a backend by its scheme.
func DetectBackend(uri string) (Backend, error) {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "":
		return BackendMemory, nil
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		return BackendMongo, nil
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return BackendPostgres, nil
	}
	return "", fmt.Errorf("unsupported database uri scheme: %q", schemeOf(uri))
}

func schemeOf(uri string) string {
	if i := strings.Index(uri, "://"); i >= 0 {
		return uri[:i]
	}
	return uri
}

var (
	openMongo = func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Factory, error) {
		return mongodb.New(ctx, cfg.DatabaseURI, cfg.DatabaseName, logger)
	}
	openPostgres = func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Factory, error) {
		return postgres.New(ctx, cfg.DatabaseURI, logger)
	}
)

// Open connects the backend selected by cfg.DatabaseURI.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Factory, error) {
	backend, err := DetectBackend(cfg.DatabaseURI)
	if err != nil {
		return nil, err
	}

	var factory repository.Factory
	switch backend {
	case BackendMongo:
		factory, err = openMongo(ctx, cfg, logger)
	case BackendPostgres:
		factory, err = openPostgres(ctx, cfg, logger)
	default:
		factory = memory.New()
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", backend, err)
	}

	logger.Info("storage ready", slog.String("backend", string(backend)))
	return factory, nil
}

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newFactory(p factoryParams) (repository.Factory, error) {
	return Open(p.Ctx, p.Config, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return factory.Close(ctx)
		},
	})
}
