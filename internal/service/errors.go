// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided    = errors.New("invalid data provided")
	ErrInvalidEmail           = errors.New("invalid email")
	ErrPasswordTooShort       = errors.New("password too short")
	ErrPasswordTooLong        = errors.New("password too long")
	ErrInvalidEmailOrPassword = errors.New("invalid email or password")

	ErrSessionExpiredOrInvalid = errors.New("session is expired or invalid")
	ErrSessionCreationFailed   = errors.New("session creation failed")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrServiceUnhealthy      = errors.New("service is unhealthy")
)
