package usecase

import (
	"fmt"

	"github.com/polkiloo/courierdesk/internal/config"
	pkgAuth "github.com/polkiloo/courierdesk/internal/pkg/auth"
	"go.uber.org/fx"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newAdminCredentials,
	NewAuthUseCase,
	NewOrderUseCase,
)

// newAdminCredentials prefers a configured bcrypt hash and hashes the plain
// password once at startup otherwise.
func newAdminCredentials(cfg *config.Config, hasher pkgAuth.PasswordHasher) (AdminCredentials, error) {
	creds := AdminCredentials{Login: cfg.AdminLogin, PasswordHash: cfg.AdminPasswordHash}
	if creds.PasswordHash != "" {
		return creds, nil
	}
	hash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return AdminCredentials{}, fmt.Errorf("hash admin password: %w", err)
	}
	creds.PasswordHash = hash
	return creds, nil
}
