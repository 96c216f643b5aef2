package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/courierdesk/internal/config"
)

// Module provides the admin password hasher and the token strategy.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
)

func newPasswordHasher(cfg *config.Config) PasswordHasher {
	return NewBcryptHasher(cfg.BcryptCost)
}

func newTokenStrategy(cfg *config.Config) Strategy {
	return NewHMACStrategy(cfg.AuthSecret, Options{TTL: cfg.TokenTTL})
}
