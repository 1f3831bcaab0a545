// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the application.
//
// [Handler] is an app plugin: it installs the global middleware chain
// (real IP, trace id, access log, metrics, panic recovery, compression) and
// registers the greeting route, the authentication provider endpoints under
// /api/auth and the operational routes.
package http
