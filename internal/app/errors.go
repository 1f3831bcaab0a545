// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import "errors"

// Configuration errors returned by [Builder.Build]. All of them are fatal at
// startup.
var (
	// ErrDuplicateRoute is returned when two routes share a method and path.
	ErrDuplicateRoute = errors.New("duplicate route")

	// ErrNoAuthGuard is returned when a route requires authentication but no
	// plugin installed an authentication guard.
	ErrNoAuthGuard = errors.New("route requires auth but no auth guard is installed")

	// ErrInvalidRoute is returned for an unknown method, a path not starting
	// with "/" or a nil handler.
	ErrInvalidRoute = errors.New("invalid route")

	// ErrGuardAlreadySet is returned when a second plugin tries to install
	// an authentication guard.
	ErrGuardAlreadySet = errors.New("auth guard is already set")

	// ErrAlreadyBuilt is returned when the builder is used after Build.
	ErrAlreadyBuilt = errors.New("builder is already built")
)
