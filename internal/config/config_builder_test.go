// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// validConfig returns defaults completed with the fields that have none.
func validConfig() *StructuredConfig {
	cfg := Default()
	cfg.Auth.SecretKey = "secret"
	cfg.Storage.DB.DSN = "file::memory:"
	return cfg
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesOverride verifies that non-zero fields of later
// configs override earlier ones while zero fields keep earlier values.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		validConfig(),
		&StructuredConfig{Server: Server{HTTPAddress: "localhost:8080"}},
		&StructuredConfig{Auth: Auth{SecretKey: "override"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "override", cfg.Auth.SecretKey)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "hello_auth.session_token", cfg.Auth.CookieName)
}

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{"valid", func(cfg *StructuredConfig) {}, nil},
		{"no address", func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" }, ErrInvalidServerConfigs},
		{"negative timeout", func(cfg *StructuredConfig) { cfg.Server.RequestTimeout = -time.Second }, ErrInvalidServerConfigs},
		{"no dsn", func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" }, ErrInvalidStorageConfigs},
		{"no secret", func(cfg *StructuredConfig) { cfg.Auth.SecretKey = "" }, ErrInvalidAuthConfigs},
		{"no issuer", func(cfg *StructuredConfig) { cfg.Auth.TokenIssuer = "" }, ErrInvalidAuthConfigs},
		{"no cookie", func(cfg *StructuredConfig) { cfg.Auth.CookieName = "" }, ErrInvalidAuthConfigs},
		{"trusted proxy cidr", func(cfg *StructuredConfig) { cfg.Auth.TrustedProxies = []string{"10.0.0.0/8", "192.0.2.1"} }, nil},
		{"bad trusted proxy", func(cfg *StructuredConfig) { cfg.Auth.TrustedProxies = []string{"not-an-ip"} }, ErrInvalidAuthConfigs},
		{"relative docs path", func(cfg *StructuredConfig) { cfg.Docs.Path = "openapi" }, ErrInvalidDocsConfigs},
		{"docs disabled ignores path", func(cfg *StructuredConfig) { cfg.Docs.Path = ""; cfg.Docs.Disabled = true }, nil},
		{"no cleanup interval", func(cfg *StructuredConfig) { cfg.Workers.SessionCleanupInterval = 0 }, ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validConfig())

	b.withJSON()

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_LoadsFileFromEarlierSource(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{"http_address": "localhost:9999"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, validConfig(), &StructuredConfig{JSONFilePath: path})

	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "localhost:9999", cfg.Server.HTTPAddress)
}

func TestWithJSON_MissingFileRecordsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/definitely/missing.json"})

	b.withJSON()

	assert.Error(t, b.err)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_EnvFlagsAndDefaults(t *testing.T) {
	setEnvVars(t, map[string]string{
		"AUTH_SECRET":             "env-secret",
		"STORAGE_DB_DATABASE_URI": "file:env.db",
		"SERVER_ADDRESS":          "localhost:7000",
	})

	cfg, err := GetStructuredConfig([]string{"-a", "localhost:7001"})
	require.NoError(t, err)

	assert.Equal(t, "localhost:7001", cfg.Server.HTTPAddress, "flags override env")
	assert.Equal(t, "env-secret", cfg.Auth.SecretKey)
	assert.Equal(t, "file:env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/openapi", cfg.Docs.Path, "defaults fill the rest")
}

func TestGetStructuredConfig_JSONOverridesFlags(t *testing.T) {
	setEnvVars(t, map[string]string{
		"AUTH_SECRET":             "env-secret",
		"STORAGE_DB_DATABASE_URI": "file:env.db",
	})
	path := writeTempJSONConfig(t, map[string]any{
		"auth": map[string]any{"secret": "json-secret"},
	})

	cfg, err := GetStructuredConfig([]string{"-secret", "flag-secret", "-c", path})
	require.NoError(t, err)

	assert.Equal(t, "json-secret", cfg.Auth.SecretKey)
}

func TestGetStructuredConfig_MissingSecret(t *testing.T) {
	setEnvVars(t, map[string]string{
		"STORAGE_DB_DATABASE_URI": "file:env.db",
	})

	_, err := GetStructuredConfig(nil)
	assert.ErrorIs(t, err, ErrInvalidAuthConfigs)
}
