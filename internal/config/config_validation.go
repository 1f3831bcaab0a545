// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/netip"
	"strings"
)

// validate checks that the final merged [StructuredConfig] can be used at
// startup. Every violation is a configuration error and aborts the process.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.ShutdownTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.SecretKey == "" {
		return fmt.Errorf("%w: secret key is required", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.TokenIssuer == "" || cfg.Auth.TokenDuration <= 0 || cfg.Auth.SessionDuration <= 0 {
		return fmt.Errorf("%w: token issuer and lifetimes are required", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.CookieName == "" || cfg.Auth.MinPasswordLength < 1 {
		return fmt.Errorf("%w: cookie name and password policy are required", ErrInvalidAuthConfigs)
	}

	if _, err := cfg.Auth.TrustedProxyPrefixes(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAuthConfigs, err)
	}

	if !cfg.Docs.Disabled && !strings.HasPrefix(cfg.Docs.Path, "/") {
		return ErrInvalidDocsConfigs
	}

	if cfg.Workers.SessionCleanupInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// TrustedProxyPrefixes parses TrustedProxies. A bare address is a single
// host prefix.
func (a Auth) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(a.TrustedProxies))
	for _, raw := range a.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}
