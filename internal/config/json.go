// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		Name     string `json:"name"`
		LogLevel string `json:"log_level"`
	} `json:"app,omitempty"`

	Auth struct {
		SecretKey          string   `json:"secret"`
		TokenIssuer        string   `json:"token_issuer"`
		TokenDuration      Duration `json:"token_duration"`
		SessionDuration    Duration `json:"session_duration"`
		CookieName         string   `json:"cookie_name"`
		CookieSecure       bool     `json:"cookie_secure"`
		MinPasswordLength  int      `json:"min_password_length"`
		RateLimitPerMinute int      `json:"rate_limit_per_minute"`
		TrustedProxies     []string `json:"trusted_proxies"`
		BreakerFailures    uint32   `json:"breaker_failures"`
		BreakerTimeout     Duration `json:"breaker_timeout"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Docs struct {
		Path     string `json:"path"`
		Disabled bool   `json:"disabled"`
	} `json:"docs,omitempty"`

	Workers struct {
		SessionCleanupInterval Duration `json:"session_cleanup_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:     jsonCfg.App.Name,
			LogLevel: jsonCfg.App.LogLevel,
		},
		Auth: Auth{
			SecretKey:          jsonCfg.Auth.SecretKey,
			TokenIssuer:        jsonCfg.Auth.TokenIssuer,
			TokenDuration:      time.Duration(jsonCfg.Auth.TokenDuration),
			SessionDuration:    time.Duration(jsonCfg.Auth.SessionDuration),
			CookieName:         jsonCfg.Auth.CookieName,
			CookieSecure:       jsonCfg.Auth.CookieSecure,
			MinPasswordLength:  jsonCfg.Auth.MinPasswordLength,
			RateLimitPerMinute: jsonCfg.Auth.RateLimitPerMinute,
			TrustedProxies:     jsonCfg.Auth.TrustedProxies,
			BreakerFailures:    jsonCfg.Auth.BreakerFailures,
			BreakerTimeout:     time.Duration(jsonCfg.Auth.BreakerTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Docs: Docs{
			Path:     jsonCfg.Docs.Path,
			Disabled: jsonCfg.Docs.Disabled,
		},
		Workers: Workers{
			SessionCleanupInterval: time.Duration(jsonCfg.Workers.SessionCleanupInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
