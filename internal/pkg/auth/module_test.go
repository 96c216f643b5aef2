package auth

import (
	"context"
	"testing"
	"time"

	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"

	"github.com/polkiloo/courierdesk/internal/config"
)

func TestNewPasswordHasherUsesConfiguredCost(t *testing.T) {
	cases := []struct {
		name string
		cost int
		want int
	}{
		{"configured", bcrypt.MinCost, bcrypt.MinCost},
		{"unset", 0, bcrypt.DefaultCost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hasher, ok := newPasswordHasher(&config.Config{BcryptCost: tc.cost}).(*BcryptHasher)
			if !ok {
				t.Fatal("expected *BcryptHasher")
			}
			if hasher.cost != tc.want {
				t.Fatalf("cost = %d, want %d", hasher.cost, tc.want)
			}
		})
	}
}

func TestNewTokenStrategy(t *testing.T) {
	strategy := newTokenStrategy(&config.Config{AuthSecret: "courier-secret", TokenTTL: time.Hour})
	hmacStrategy, ok := strategy.(*HMACStrategy)
	if !ok {
		t.Fatalf("expected *HMACStrategy, got %T", strategy)
	}
	if string(hmacStrategy.secret) != "courier-secret" {
		t.Fatalf("unexpected secret: %q", string(hmacStrategy.secret))
	}
	if hmacStrategy.ttl != time.Hour {
		t.Fatalf("unexpected ttl: %s", hmacStrategy.ttl)
	}
}

func TestModuleIssuesVerifiableTokens(t *testing.T) {
	var (
		hasher   PasswordHasher
		strategy Strategy
	)
	app := fx.New(
		fx.NopLogger,
		fx.Supply(&config.Config{AuthSecret: "k", TokenTTL: time.Minute, BcryptCost: bcrypt.MinCost}),
		Module,
		fx.Populate(&hasher, &strategy),
	)
	if err := app.Err(); err != nil {
		t.Fatalf("fx app failed: %v", err)
	}
	t.Cleanup(func() { _ = app.Stop(context.Background()) })

	token, err := strategy.IssueToken(Claims{Subject: "dispatcher", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := strategy.ParseToken(token)
	if err != nil || claims.Subject != "dispatcher" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims %+v, err %v", claims, err)
	}
	if hasher == nil {
		t.Fatal("expected hasher")
	}
}
