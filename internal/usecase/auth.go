package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/courierdesk/internal/domain/errors"
	"github.com/polkiloo/courierdesk/internal/domain/model"
	pkgAuth "github.com/polkiloo/courierdesk/internal/pkg/auth"
)

// AdminCredentials hold the single configured administrator account.
type AdminCredentials struct {
	Login        string
	PasswordHash string
}

// AuthUseCase handles admin login and token verification.
type AuthUseCase struct {
	admin  AdminCredentials
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(admin AdminCredentials, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{admin: admin, hasher: hasher, tokens: strategy}
}

// Authenticate validates admin credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}

	if login != u.admin.Login {
		return "", domainErrors.ErrInvalidCredentials
	}

	if err := u.hasher.Compare(u.admin.PasswordHash, password); err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordMismatch) {
			return "", domainErrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("verify admin password: %w", err)
	}

	return u.tokens.IssueToken(pkgAuth.Claims{Subject: login, Role: pkgAuth.RoleAdmin})
}

// ParseToken resolves the caller behind a token.
func (u *AuthUseCase) ParseToken(token string) (model.Caller, error) {
	if token == "" {
		return model.Anonymous, pkgAuth.ErrInvalidToken
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return model.Anonymous, err
	}
	return model.Caller{
		Subject: claims.Subject,
		Admin:   claims.Role == pkgAuth.RoleAdmin && claims.Subject == u.admin.Login,
	}, nil
}
