// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the server.
// It is populated by merging defaults, environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application identity and logging settings.
	App App `envPrefix:"APP_"`

	// Auth holds the authentication provider settings: secrets, token and
	// session lifetimes, cookie and abuse protection parameters.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for the persistence backends.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Docs holds the API documentation plugin settings.
	Docs Docs `envPrefix:"DOCS_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// Name is used as the logger role and the documentation title.
	// Env: APP_NAME
	Name string `env:"NAME"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Auth holds the authentication provider configuration.
type Auth struct {
	// SecretKey signs session cookies and JWTs. Must be kept confidential.
	// Env: AUTH_SECRET
	SecretKey string `env:"SECRET"`

	// TokenIssuer is the "iss" claim of issued JWTs.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of JWTs issued by /api/auth/token.
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// SessionDuration is the lifetime of a login session.
	// Env: AUTH_SESSION_DURATION
	SessionDuration time.Duration `env:"SESSION_DURATION"`

	// CookieName is the name of the session cookie.
	// Env: AUTH_COOKIE_NAME
	CookieName string `env:"COOKIE_NAME"`

	// CookieSecure marks the session cookie Secure (HTTPS only).
	// Env: AUTH_COOKIE_SECURE
	CookieSecure bool `env:"COOKIE_SECURE"`

	// MinPasswordLength is the shortest password accepted at sign-up.
	// Env: AUTH_MIN_PASSWORD_LENGTH
	MinPasswordLength int `env:"MIN_PASSWORD_LENGTH"`

	// RateLimitPerMinute limits /api/auth requests per client IP.
	// Env: AUTH_RATE_LIMIT_PER_MINUTE
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE"`

	// TrustedProxies lists the proxies, as IPs or CIDRs, whose
	// X-Forwarded-For and X-Real-IP headers name the client. Headers from
	// any other peer are ignored.
	// Env: AUTH_TRUSTED_PROXIES (comma separated)
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// BreakerFailures is the number of consecutive provider failures that
	// open the circuit breaker.
	// Env: AUTH_BREAKER_FAILURES
	BreakerFailures uint32 `env:"BREAKER_FAILURES"`

	// BreakerTimeout is how long the breaker stays open.
	// Env: AUTH_BREAKER_TIMEOUT
	BreakerTimeout time.Duration `env:"BREAKER_TIMEOUT"`
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Redis holds the optional session secondary storage settings.
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver by its form: "postgres://" or "postgresql://"
	// open PostgreSQL through pgx, anything else is a SQLite file or
	// "file:...?mode=memory" DSN.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Redis holds connection settings for the session secondary storage.
// Sessions are kept in the relational database when Address is empty.
type Redis struct {
	// Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`
	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`
	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on,
	// in "host:port" format (e.g. ":3000", "0.0.0.0:3000").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds reading and writing a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Docs holds the API documentation plugin settings.
type Docs struct {
	// Path is the prefix the documentation is served under.
	// Env: DOCS_PATH
	Path string `env:"PATH"`

	// Disabled turns the documentation plugin off.
	// Env: DOCS_DISABLED
	Disabled bool `env:"DISABLED"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SessionCleanupInterval is how often expired sessions are purged.
	// Env: WORKERS_SESSION_CLEANUP_INTERVAL
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL"`
}

// Default returns the configuration every other source is merged on top of.
func Default() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Name:     "hello-auth",
			LogLevel: "info",
		},
		Auth: Auth{
			TokenIssuer:        "hello-auth",
			TokenDuration:      15 * time.Minute,
			SessionDuration:    7 * 24 * time.Hour,
			CookieName:         "hello_auth.session_token",
			MinPasswordLength:  8,
			RateLimitPerMinute: 100,
			BreakerFailures:    5,
			BreakerTimeout:     30 * time.Second,
		},
		Server: Server{
			HTTPAddress:     ":3000",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Docs: Docs{
			Path: "/openapi",
		},
		Workers: Workers{
			SessionCleanupInterval: time.Hour,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (later non-zero
// fields win):
//  1. Defaults
//  2. Environment variables
//  3. Command-line flags (args, usually os.Args[1:])
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
