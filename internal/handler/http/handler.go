// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/netip"

	"github.com/MKhiriev/hello-auth/internal/config"
	"github.com/MKhiriev/hello-auth/internal/logger"
	"github.com/MKhiriev/hello-auth/internal/service"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

type Handler struct {
	services *service.Services
	auth     config.Auth
	proxies  []netip.Prefix

	limiter *ipRateLimiter
	metrics *httpMetrics

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Auth, logger *logger.Logger) *Handler {
	proxies, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		logger.Err(err).Msg("ignoring trusted proxies")
		proxies = nil
	}

	logger.Info().Int("trusted_proxies", len(proxies)).Msg("http handler created")
	return &Handler{
		services: services,
		auth:     cfg,
		proxies:  proxies,
		limiter:  newIPRateLimiter(float64(cfg.RateLimitPerMinute)),
		metrics:  newHTTPMetrics(),
		logger:   logger,
	}
}
