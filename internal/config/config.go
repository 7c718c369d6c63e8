package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	PaymentAPIURL     string
	PaymentSecretKey  string
	WebhookSecret     string
	PublicOrigin      string
	AdminPasswordHash string
	JWTSecret         string
	Currency          string
	DeliveryFee       int64
	MinOrderTotal     int64
	MaxCartItems      int
	ProviderTimeout   time.Duration
	ReconcileInterval time.Duration
	ReconcileBatch    int
	PendingMinAge     time.Duration
	WorkerPoolSize    int
	ShutdownTimeout   time.Duration
	TelegramBotToken  string
	TelegramChatID    int64
}

const (
	defaultRunAddress        = ":8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultCurrency          = "eur"
	defaultDeliveryFee       = 250
	defaultMinOrderTotal     = 0
	defaultMaxCartItems      = 50
	defaultProviderTimeout   = 15 * time.Second
	defaultReconcileInterval = time.Minute
	defaultReconcileBatch    = 32
	defaultPendingMinAge     = 2 * time.Minute
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		PaymentAPIURL:     getString(lookup, "PAYMENT_API_URL", ""),
		PaymentSecretKey:  getString(lookup, "PAYMENT_SECRET_KEY", ""),
		WebhookSecret:     getString(lookup, "PAYMENT_WEBHOOK_SECRET", ""),
		PublicOrigin:      getString(lookup, "PUBLIC_ORIGIN", ""),
		AdminPasswordHash: getString(lookup, "ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getString(lookup, "JWT_SECRET", defaultJWTSecret),
		Currency:          getString(lookup, "CURRENCY", defaultCurrency),
		DeliveryFee:       getInt64(lookup, "DELIVERY_FEE", defaultDeliveryFee),
		MinOrderTotal:     getInt64(lookup, "MIN_ORDER_TOTAL", defaultMinOrderTotal),
		MaxCartItems:      getInt(lookup, "MAX_CART_ITEMS", defaultMaxCartItems),
		ProviderTimeout:   getDuration(lookup, "PROVIDER_TIMEOUT", defaultProviderTimeout),
		ReconcileInterval: getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		ReconcileBatch:    getInt(lookup, "RECONCILE_BATCH_SIZE", defaultReconcileBatch),
		PendingMinAge:     getDuration(lookup, "PENDING_MIN_AGE", defaultPendingMinAge),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		TelegramBotToken:  getString(lookup, "TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:    getInt64(lookup, "TELEGRAM_CHAT_ID", 0),
	}

	fs := flag.NewFlagSet("friterie", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		providerTimeoutStr   = cfg.ProviderTimeout.String()
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PaymentAPIURL, "p", cfg.PaymentAPIURL, "Payment provider base URL")
	fs.StringVar(&cfg.PublicOrigin, "origin", cfg.PublicOrigin, "Public site origin for redirect URLs")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing admin tokens")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconciliation workers")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum orders per reconciliation batch")
	fs.StringVar(&providerTimeoutStr, "provider-timeout", providerTimeoutStr, "Payment provider request timeout")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between reconciliation polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ProviderTimeout, err = time.ParseDuration(providerTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid provider timeout: %w", err)
	}

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.PendingMinAge <= 0 {
		cfg.PendingMinAge = defaultPendingMinAge
	}

	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = defaultProviderTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.MaxCartItems <= 0 {
		cfg.MaxCartItems = defaultMaxCartItems
	}

	if cfg.DeliveryFee < 0 {
		return nil, fmt.Errorf("delivery fee must not be negative")
	}

	if cfg.MinOrderTotal < 0 {
		return nil, fmt.Errorf("minimum order total must not be negative")
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PaymentAPIURL == "" {
		return nil, fmt.Errorf("payment provider address must be provided")
	}

	if cfg.PaymentSecretKey == "" {
		return nil, fmt.Errorf("payment secret key must be provided")
	}

	if cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("webhook signing secret must be provided")
	}

	if cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("admin password hash must be provided")
	}

	if cfg.PublicOrigin == "" {
		return nil, fmt.Errorf("public origin must be provided")
	}
	origin, err := url.Parse(cfg.PublicOrigin)
	if err != nil || !origin.IsAbs() || origin.Host == "" {
		return nil, fmt.Errorf("public origin must be an absolute URL")
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

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
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
