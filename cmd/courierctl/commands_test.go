package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/polkiloo/courierdesk/internal/app"
	pkgAuth "github.com/polkiloo/courierdesk/internal/pkg/auth"
	"github.com/polkiloo/courierdesk/internal/server/http/router"
	"github.com/polkiloo/courierdesk/internal/storage/memory"
	"github.com/polkiloo/courierdesk/internal/usecase"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	authUC := usecase.NewAuthUseCase(
		usecase.AdminCredentials{Login: "admin", PasswordHash: string(hash)},
		pkgAuth.NewBcryptHasher(bcrypt.MinCost),
		pkgAuth.NewHMACStrategy("cli-test", pkgAuth.Options{}),
	)
	store := memory.New()
	orders := usecase.NewOrderUseCase(store.Orders(), store.Sequence(), nil)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := router.Setup(app.NewCourierFacade(authUC, orders, store), logger)
	gin.SetMode(gin.TestMode)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)
	return server
}

func runCLI(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	getenv := func(key string) string { return env[key] }
	err := run(context.Background(), args, &out, io.Discard, getenv)
	return out.String(), err
}

func TestRunUsage(t *testing.T) {
	if _, err := runCLI(t, nil); err == nil || !strings.Contains(err.Error(), "usage") {
		t.Fatalf("expected usage error, got %v", err)
	}
	if _, err := runCLI(t, nil, "launch"); err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if _, err := runCLI(t, nil, "-server", "localhost", "ranges"); err == nil {
		t.Fatal("expected error for relative server url")
	}
}

func TestRunWorkflow(t *testing.T) {
	server := newServer(t)
	env := map[string]string{"COURIER_API": server.URL}

	out, err := runCLI(t, env, "quote", "-distance", "7.5", "-urgent")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !strings.Contains(out, "price 11.00") || !strings.Contains(out, "5-10 km") {
		t.Fatalf("unexpected quote output %q", out)
	}

	out, err = runCLI(t, env, "ranges")
	if err != nil {
		t.Fatalf("ranges: %v", err)
	}
	if !strings.Contains(out, "over 10 km") {
		t.Fatalf("unexpected ranges output %q", out)
	}

	if _, err := runCLI(t, env, "submit", "-first-name", "Ivan"); err == nil {
		t.Fatal("expected submit without distance to fail")
	}
	out, err = runCLI(t, env, "submit",
		"-first-name", "Ivan", "-last-name", "Petrov", "-phone", "+79000000000",
		"-package", "Documents", "-pickup", "Lenina 1", "-delivery", "Mira 10",
		"-distance", "7.5", "-urgent")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.Contains(out, "order AZS0001 created, price 11.00") {
		t.Fatalf("unexpected submit output %q", out)
	}

	out, err = runCLI(t, env, "track", "AZS0001")
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if !strings.Contains(out, "AZS0001") || !strings.Contains(out, "New") {
		t.Fatalf("unexpected track output %q", out)
	}
	if _, err := runCLI(t, env, "track", "AZS0999"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}

	if _, err := runCLI(t, env, "list"); err == nil {
		t.Fatal("expected list without token to fail")
	}

	token, err := runCLI(t, env, "login", "-password", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	env["COURIER_TOKEN"] = strings.TrimSpace(token)

	out, err = runCLI(t, env, "set-status", "AZS0001", "delivered")
	if err != nil {
		t.Fatalf("set-status: %v", err)
	}
	if !strings.Contains(out, "is now Delivered") {
		t.Fatalf("unexpected set-status output %q", out)
	}
	if _, err := runCLI(t, env, "set-status", "AZS0001", "lost"); err == nil {
		t.Fatal("expected invalid status to fail")
	}

	out, err = runCLI(t, env, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "AZS0001") || !strings.Contains(out, "Delivered") {
		t.Fatalf("unexpected list output %q", out)
	}

	out, err = runCLI(t, env, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "delivered") || !strings.Contains(out, "total") {
		t.Fatalf("unexpected stats output %q", out)
	}
}

func TestFormatting(t *testing.T) {
	if got := statusLabel("in_transit"); got != "In transit" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := statusLabel("unknown"); got != "unknown" {
		t.Fatalf("expected passthrough, got %q", got)
	}
	if got := formatMoney(8); got != "8.00" {
		t.Fatalf("unexpected money %q", got)
	}
}
