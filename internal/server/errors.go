// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrListen is returned by Run when the configured address cannot be
	// bound, typically because the port is already in use.
	ErrListen = errors.New("error binding server address")

	// ErrShutdown is returned when in-flight requests do not finish within
	// the shutdown timeout.
	ErrShutdown = errors.New("error shutting down server")
)
