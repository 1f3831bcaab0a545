// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP application built by [app.Builder].
//
// It owns the listening socket, prints the startup banner, runs the
// background workers next to the HTTP server and shuts both down gracefully
// on context cancellation or SIGINT, SIGTERM and SIGQUIT.
package server
