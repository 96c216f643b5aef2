package config

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module loads configuration once and warns about unsafe defaults at startup.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(warnInsecureDefaults),
)

// UsesDefaultSecret reports whether tokens are signed with the built-in secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.AuthSecret == defaultAuthSecret
}

func warnInsecureDefaults(cfg *Config, logger *slog.Logger) {
	if cfg.UsesDefaultSecret() {
		logger.Warn("auth tokens are signed with the default secret, set AUTH_SECRET or AUTH_SECRET_FILE")
	}
}
