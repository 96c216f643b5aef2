package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	DatabaseName      string
	RabbitURL         string
	EventsExchange    string
	EventWorkers      int
	EventBuffer       int
	AdminLogin        string
	AdminPassword     string
	AdminPasswordHash string
	BcryptCost        int
	AuthSecret        string
	TokenTTL          time.Duration
	ShutdownTimeout   time.Duration
	LogLevel          string
}

const (
	defaultRunAddress      = ":8080"
	defaultDatabaseName    = "courier"
	defaultEventsExchange  = "courier.orders"
	defaultEventWorkers    = 2
	defaultEventBuffer     = 64
	defaultAdminLogin      = "admin"
	defaultBcryptCost      = 10
	defaultAuthSecret      = "change-me-in-production"
	defaultTokenTTL        = 12 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultEnvFile         = ".env"
)

// Load parses configuration from flags, environment variables and an optional dotenv file.
func Load() (*Config, error) {
	lookup, err := withDotEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

type envLookup func(string) (string, bool)

// withDotEnv layers values from the dotenv file below the process environment.
func withDotEnv(lookup envLookup) (envLookup, error) {
	path := defaultEnvFile
	explicit := false
	if v, ok := lookup("ENV_FILE"); ok && v != "" {
		path = v
		explicit = true
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return lookup, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		DatabaseName:      getString(lookup, "DATABASE_NAME", defaultDatabaseName),
		RabbitURL:         getString(lookup, "RABBIT_URL", ""),
		EventsExchange:    getString(lookup, "EVENTS_EXCHANGE", defaultEventsExchange),
		EventWorkers:      getInt(lookup, "EVENT_WORKERS", defaultEventWorkers),
		EventBuffer:       getInt(lookup, "EVENT_BUFFER", defaultEventBuffer),
		AdminLogin:        getString(lookup, "ADMIN_LOGIN", defaultAdminLogin),
		AdminPassword:     getString(lookup, "ADMIN_PASSWORD", ""),
		AdminPasswordHash: getString(lookup, "ADMIN_PASSWORD_HASH", ""),
		BcryptCost:        getInt(lookup, "BCRYPT_COST", defaultBcryptCost),
		AuthSecret:        getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		TokenTTL:          getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:          getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	// the secret file is part of the env layer, so -auth-secret still wins
	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = strings.TrimSpace(string(content))
	}

	flags := flag.NewFlagSet("courierdesk", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "MongoDB or PostgreSQL URI, empty for in-memory storage")
	flags.StringVar(&cfg.DatabaseName, "db-name", cfg.DatabaseName, "MongoDB database name")
	flags.StringVar(&cfg.RabbitURL, "q", cfg.RabbitURL, "RabbitMQ URL, empty disables events")
	flags.StringVar(&cfg.EventsExchange, "exchange", cfg.EventsExchange, "Fanout exchange for order events")
	flags.IntVar(&cfg.EventWorkers, "event-workers", cfg.EventWorkers, "Number of concurrent event publishers")
	flags.IntVar(&cfg.EventBuffer, "event-buffer", cfg.EventBuffer, "Pending events buffer size")
	flags.StringVar(&cfg.AdminLogin, "admin-login", cfg.AdminLogin, "Admin login")
	flags.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "bcrypt cost for hashing a plain admin password")
	flags.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	flags.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Auth token lifetime")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.EventWorkers <= 0 {
		cfg.EventWorkers = defaultEventWorkers
	}

	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = defaultEventBuffer
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("unsupported log level %q", cfg.LogLevel)
	}

	if cfg.AdminLogin == "" {
		return nil, fmt.Errorf("admin login must be provided")
	}

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("admin password or password hash must be provided")
	}

	if cfg.AuthSecret == "" {
		return nil, fmt.Errorf("auth secret must not be empty")
	}

	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, fmt.Errorf("bcrypt cost %d out of range [4, 31]", cfg.BcryptCost)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
