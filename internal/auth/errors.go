// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import "errors"

var (
	// ErrNoCredentials means the provider found nothing to check. A [Chain]
	// moves on to its next provider.
	ErrNoCredentials = errors.New("no credentials presented")

	// ErrInvalidCredentials means a credential was presented and rejected:
	// bad signature, unknown or expired session, invalid JWT.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProviderUnavailable means the provider could not decide, e.g. the
	// circuit breaker is open.
	ErrProviderUnavailable = errors.New("authentication provider unavailable")
)
